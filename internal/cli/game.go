package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Mini game commands",
	}

	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameArrangeCmd())
	cmd.AddCommand(newGameDuelCmd())
	cmd.AddCommand(newGamePracticeCmd())

	return cmd
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <number>",
		Short: "Submit a guess in the number guessing game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number: %s", args[0])
			}

			req := map[string]int{"number": number}

			envelope, err := client.Post("/api/v1/games/guess-number", req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return printOptionalUser(out, envelope)
		},
	}
}

func newGameArrangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arrange <n1,n2,n3,n4,n5>",
		Short: "Submit an arrangement in the number arranging game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.Split(args[0], ",")
			numbers := make([]int, 0, len(parts))
			for _, p := range parts {
				n, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return fmt.Errorf("invalid number: %s", p)
				}
				numbers = append(numbers, n)
			}

			req := map[string][]int{"numbers": numbers}

			envelope, err := client.Post("/api/v1/games/arrange-numbers", req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return printOptionalUser(out, envelope)
		},
	}
}

func newGameDuelCmd() *cobra.Command {
	var opponent string

	cmd := &cobra.Command{
		Use:   "duel <choice> <stake>",
		Short: "Play a rock-paper-scissors duel for points",
		Long: `Play a rock-paper-scissors duel against another user, staking points.

The loser transfers the stake to the winner. With --opponent the named
user is challenged; without it a random opponent who can cover the
stake is picked.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stake, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid stake: %s", args[1])
			}

			req := map[string]any{
				"choice": args[0],
				"stake":  stake,
			}
			if opponent != "" {
				req["opponentUsername"] = opponent
			}

			envelope, err := client.Post("/api/v1/games/rock-paper-scissors", req)
			if err != nil {
				return err
			}

			var result DuelResult
			if err := envelope.DecodeData(&result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			if cfg.Verbose {
				out.Print(result.User)
				out.Print(result.Opponent)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent username (random when omitted)")

	return cmd
}

func newGamePracticeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "practice <choice>",
		Short: "Play a practice rock-paper-scissors round (no stakes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"choice": args[0]}

			envelope, err := client.Post("/api/v1/games/rock-paper-scissors/practice", req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return nil
		},
	}
}

func printOptionalUser(out *Output, envelope *Envelope) error {
	if !cfg.Verbose || len(envelope.Data) == 0 {
		return nil
	}
	var user User
	if err := envelope.DecodeData(&user); err != nil {
		return err
	}
	out.Print(user)
	return nil
}
