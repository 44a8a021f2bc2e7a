package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/auth"
	"github.com/vytor/questledger/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token <userId>",
	Short: "Issue a bearer token signed with JWT_SECRET, for local testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if len(cfg.JWTSecret) < 16 {
			return errors.New("JWT_SECRET must be set to at least 16 characters")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := auth.NewHMACVerifier(cfg.JWTSecret).Issue(args[0], ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
}
