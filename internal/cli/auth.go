package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var user, pass, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			if name != "" {
				req["displayName"] = name
			}

			envelope, err := client.Post("/api/v1/auth/register", req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to username)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}

			envelope, err := client.Post("/api/v1/auth/login", req)
			if err != nil {
				return err
			}

			var result AuthResult
			if err := envelope.DecodeData(&result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := client.Post("/api/v1/auth/logout", nil)
			if err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(envelope.Message)
			return nil
		},
	}
}
