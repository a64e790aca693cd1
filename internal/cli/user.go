package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account management commands",
	}

	cmd.AddCommand(newUserMeCmd())
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserSearchCmd())
	cmd.AddCommand(newUserSetNameCmd())
	cmd.AddCommand(newUserSetPasswordCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your own profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := client.Get("/api/v1/users/me")
			if err != nil {
				return err
			}

			var result User
			if err := envelope.DecodeData(&result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show another user's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := client.Get("/api/v1/users/" + url.PathEscape(args[0]))
			if err != nil {
				return err
			}

			var result User
			if err := envelope.DecodeData(&result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserSearchCmd() *cobra.Command {
	var (
		direction string
		keyword   string
		minScore  int64
		maxScore  int64
		page      int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search users by score range and username keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("sortDirection", direction)
			if keyword != "" {
				params.Set("usernameKeyword", keyword)
			}
			if cmd.Flags().Changed("min-score") {
				params.Set("minimumScore", strconv.FormatInt(minScore, 10))
			}
			if cmd.Flags().Changed("max-score") {
				params.Set("maximumScore", strconv.FormatInt(maxScore, 10))
			}
			if cmd.Flags().Changed("page") {
				params.Set("page", strconv.Itoa(page))
			}
			if cmd.Flags().Changed("limit") {
				params.Set("limit", strconv.Itoa(limit))
			}

			envelope, err := client.Get("/api/v1/users?" + params.Encode())
			if err != nil {
				return err
			}

			result, err := decodeList(envelope)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "sort", "desc", "Sort direction by score: asc, desc")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Username substring to match")
	cmd.Flags().Int64Var(&minScore, "min-score", 0, "Minimum score (inclusive)")
	cmd.Flags().Int64Var(&maxScore, "max-score", 0, "Maximum score (inclusive)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (requires --limit)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")

	return cmd
}

func newUserSetNameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "set-name",
		Short: "Change your display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"displayName": name}

			envelope, err := client.Patch("/api/v1/users/me/display-name", req)
			if err != nil {
				return err
			}

			var result User
			if err := envelope.DecodeData(&result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserSetPasswordCmd() *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"currentPassword": current,
				"newPassword":     next,
			}

			envelope, err := client.Patch("/api/v1/users/me/password", req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password (required)")
	cmd.Flags().StringVar(&next, "new", "", "New password (required)")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := client.Delete("/api/v1/users/me")
			if err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return nil
		},
	}
}

func decodeList(envelope *Envelope) (Leaderboard, error) {
	var result Leaderboard
	if err := envelope.DecodeData(&result.Users); err != nil {
		return result, err
	}
	if len(envelope.Metadata) > 0 {
		if err := envelope.DecodeMetadata(&result.Metadata); err != nil {
			return result, err
		}
	}
	return result, nil
}
