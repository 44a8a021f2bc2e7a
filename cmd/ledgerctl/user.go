package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/repository/sqlstore"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage gamification accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <userId>",
	Short: "Create a zeroed account for an identity-provider user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		u, err := sqlstore.NewUserRepository(database).Create(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s: level=%d xp=%d coins=%d diamonds=%d\n",
			u.ID, u.Level, u.TotalXP, u.Wallet.Coins, u.Wallet.Diamonds)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd)
}
