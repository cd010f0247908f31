package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var account string
	cmd := &cobra.Command{
		Use:   "token <nick>",
		Short: "Issue a WebSocket token signed with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			svc := auth.NewService(cfg.Accounts, &auth.JWTConfig{
				Secret:   []byte(cfg.JWT.Secret),
				Issuer:   cfg.JWT.Issuer,
				Audience: cfg.JWT.Audience,
				TTL:      cfg.JWT.TTL,
			})
			token, err := svc.IssueToken(args[0], account)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account name to embed (empty for a guest token)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for the accounts section of the config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
