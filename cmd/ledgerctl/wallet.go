package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/repository/sqlstore"
	"github.com/vytor/questledger/internal/services"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect wallets and their ledger",
}

var walletReconcileCmd = &cobra.Command{
	Use:   "reconcile <userId>",
	Short: "Compare a wallet balance with the sum of its ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := services.NewWalletService(sqlstore.NewUserRepository(database), sqlstore.NewWalletRepository(database))
		rec, err := svc.Reconcile(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user %s (%d ledger entries)\n", rec.UserID, rec.Entries)
		fmt.Fprintf(out, "  coins:    balance=%d ledger=%d\n", rec.Balance.Coins, rec.Ledger.Coins)
		fmt.Fprintf(out, "  diamonds: balance=%d ledger=%d\n", rec.Balance.Diamonds, rec.Ledger.Diamonds)
		if !rec.Consistent {
			return fmt.Errorf("wallet for %s does not match its ledger", rec.UserID)
		}
		fmt.Fprintln(out, "  consistent")
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletReconcileCmd)
}
