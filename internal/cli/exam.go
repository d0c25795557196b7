package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/studyplan/pkg/model"
	"github.com/spf13/cobra"
)

func newExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Manage exams",
	}
	cmd.AddCommand(
		newExamAddCmd(),
		newExamListCmd(),
		newExamRmCmd(),
	)
	return cmd
}

func newExamAddCmd() *cobra.Command {
	var (
		flagSubject string
		flagDate    string
		flagWeight  int
		flagTopics  []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", flagDate)
			if err != nil {
				return fmt.Errorf("parse --date (want YYYY-MM-DD): %w", err)
			}

			resp, err := client.Post("/api/v1/exams/", map[string]any{
				"title":   args[0],
				"subject": flagSubject,
				"date":    date.Format(time.RFC3339),
				"weight":  flagWeight,
				"topics":  flagTopics,
			})
			if err != nil {
				return fmt.Errorf("create exam: %w", err)
			}

			var exam model.Exam
			if err := json.Unmarshal(resp.Data, &exam); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Exam created: %s\n", exam.ID)
			fmt.Printf("  Title:   %s\n", exam.Title)
			fmt.Printf("  Date:    %s (%s)\n", exam.Date.Format("2006-01-02"), humanize.Time(exam.Date))
			fmt.Printf("  Weight:  %d\n", exam.Weight)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSubject, "subject", "General", "Subject of the exam")
	cmd.Flags().StringVar(&flagDate, "date", "", "Exam date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flagWeight, "weight", 0, "Relative importance, 0-100")
	cmd.Flags().StringSliceVar(&flagTopics, "topics", nil, "Comma-separated topic list")
	cmd.MarkFlagRequired("date")

	return cmd
}

func newExamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/exams/")
			if err != nil {
				return fmt.Errorf("list exams: %w", err)
			}

			var exams []*model.Exam
			if err := json.Unmarshal(resp.Data, &exams); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(exams) == 0 {
				fmt.Println("No exams found.")
				return nil
			}

			fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-6s  %s\n", "ID", "TITLE", "SUBJECT", "DATE", "WEIGHT", "WHEN")
			fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-6s  %s\n", "----", "-----", "-------", "----", "------", "----")
			for _, exam := range exams {
				fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-6d  %s\n",
					exam.ID, truncate(exam.Title, 28), truncate(exam.Subject, 14),
					exam.Date.Format("2006-01-02"), exam.Weight, humanize.Time(exam.Date))
			}
			return nil
		},
	}
}

func newExamRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <exam_id>",
		Short: "Delete an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/exams/" + args[0]); err != nil {
				return fmt.Errorf("delete exam: %w", err)
			}
			fmt.Printf("Deleted: %s\n", args[0])
			return nil
		},
	}
}
