package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository/sqlstore"
	"github.com/vytor/questledger/internal/services"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print a weekly leaderboard straight from the rollups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		lbType, _ := cmd.Flags().GetString("type")
		week, _ := cmd.Flags().GetString("week")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := services.NewLeaderboardService(sqlstore.NewWeeklyStatsRepository(database))
		lb, err := svc.Leaderboard(ctx, models.LeaderboardQuery{
			Type:      models.LeaderboardType(lbType),
			WeekStart: week,
			Limit:     limit,
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(lb)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s leaderboard, week of %s\n", lb.Type, lb.WeekStart)
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tUSER\tSCORE\tLESSONS\tELIGIBLE XP\tACCURACY\tDAYS\tHARD PERFECT")
		for _, e := range lb.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.0f%%\t%d\t%d\n",
				e.Rank, e.UserID, e.Score, e.LessonsCompleted, e.EligibleXP, e.Accuracy*100, e.ActiveDays, e.HardPerfectCount)
		}
		return tw.Flush()
	},
}

func init() {
	leaderboardCmd.Flags().String("type", "growth", "growth or mastery")
	leaderboardCmd.Flags().String("week", "", "any day of the week (YYYY-MM-DD), defaults to the current week")
	leaderboardCmd.Flags().Int("limit", 0, "number of entries, defaults to the service default")
	leaderboardCmd.Flags().Bool("json", false, "print JSON instead of a table")
}
