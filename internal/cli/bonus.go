package cli

import (
	"github.com/spf13/cobra"
)

func newBonusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Bonus point commands",
	}

	cmd.AddCommand(newBonusClaimCmd())

	return cmd
}

func newBonusClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Claim your periodic bonus points",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := client.Post("/api/v1/bonus/claim", nil)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return printOptionalUser(out, envelope)
		},
	}
}
