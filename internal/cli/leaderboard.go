package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the global leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if cmd.Flags().Changed("page") {
				params.Set("page", strconv.Itoa(page))
			}
			if cmd.Flags().Changed("limit") {
				params.Set("limit", strconv.Itoa(limit))
			}

			path := "/api/v1/leaderboard"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			envelope, err := client.Get(path)
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

	cmd.Flags().IntVar(&page, "page", 0, "Page number (requires --limit)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")

	return cmd
}
