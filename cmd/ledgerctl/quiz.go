package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository/sqlstore"
	"github.com/vytor/questledger/internal/services"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage versioned quizzes",
}

var quizImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Create a new quiz version from a JSON draft or array of drafts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		drafts, err := parseDrafts(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		publish, _ := cmd.Flags().GetBool("publish")

		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := services.NewQuizService(sqlstore.NewQuizRepository(database))
		for _, d := range drafts {
			if publish {
				d.Published = true
			}
			q, err := svc.CreateVersion(ctx, d)
			if err != nil {
				return fmt.Errorf("lesson %s: %w", d.LessonID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s v%d (%s, %d questions, published=%v)\n",
				q.LessonID, q.Version, q.Difficulty, len(q.Questions), q.Published)
		}
		return nil
	},
}

var quizPublishCmd = &cobra.Command{
	Use:   "publish <lessonId> <version>",
	Short: "Publish a quiz version so new attempts grade against it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		version, err := strconv.Atoi(args[1])
		if err != nil || version < 1 {
			return fmt.Errorf("version must be a positive integer, got %q", args[1])
		}
		unpublish, _ := cmd.Flags().GetBool("unpublish")

		database, err := openDB(ctx, cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := services.NewQuizService(sqlstore.NewQuizRepository(database))
		if unpublish {
			if err := svc.Unpublish(ctx, args[0], version); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unpublished %s v%d\n", args[0], version)
			return nil
		}
		if _, err := svc.Publish(ctx, args[0], version); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %s v%d\n", args[0], version)
		return nil
	},
}

// parseDrafts accepts a single draft object or an array of drafts.
func parseDrafts(raw []byte) ([]models.QuizDraft, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var drafts []models.QuizDraft
		if err := json.Unmarshal(trimmed, &drafts); err != nil {
			return nil, err
		}
		return drafts, nil
	}
	var d models.QuizDraft
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, err
	}
	return []models.QuizDraft{d}, nil
}

func init() {
	quizImportCmd.Flags().Bool("publish", false, "publish every imported version")
	quizPublishCmd.Flags().Bool("unpublish", false, "withdraw the version instead")
	quizCmd.AddCommand(quizImportCmd)
	quizCmd.AddCommand(quizPublishCmd)
}
