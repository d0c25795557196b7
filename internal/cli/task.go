package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/studyplan/pkg/model"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage study tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskDoneCmd(),
		newTaskRmCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		flagSubject    string
		flagDifficulty string
		flagPriority   string
		flagMinutes    int
		flagDue        string
		flagExam       string
		flagNotes      string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a study task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := time.Parse("2006-01-02", flagDue)
			if err != nil {
				return fmt.Errorf("parse --due (want YYYY-MM-DD): %w", err)
			}

			resp, err := client.Post("/api/v1/tasks/", map[string]any{
				"title":             args[0],
				"subject":           flagSubject,
				"difficulty":        flagDifficulty,
				"priority":          flagPriority,
				"estimated_minutes": flagMinutes,
				"due_date":          due.Format(time.RFC3339),
				"related_exam_id":   flagExam,
				"notes":             flagNotes,
			})
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}

			var task model.StudyTask
			if err := json.Unmarshal(resp.Data, &task); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Task created: %s\n", task.ID)
			fmt.Printf("  Title:    %s\n", task.Title)
			fmt.Printf("  Subject:  %s\n", task.Subject)
			fmt.Printf("  Due:      %s (%s)\n", task.DueDate.Format("2006-01-02"), humanize.Time(task.DueDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSubject, "subject", "General", "Subject the task belongs to")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "medium", "Difficulty (easy, medium, hard)")
	cmd.Flags().StringVar(&flagPriority, "priority", "medium", "Priority (low, medium, high, urgent)")
	cmd.Flags().IntVar(&flagMinutes, "minutes", 60, "Estimated study minutes")
	cmd.Flags().StringVar(&flagDue, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagExam, "exam", "", "Related exam ID")
	cmd.Flags().StringVar(&flagNotes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("due")

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var flagStatus string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/tasks/?limit=100"
			if flagStatus != "" {
				path += "&status=" + flagStatus
			}
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}

			var tasks []*model.StudyTask
			if err := json.Unmarshal(resp.Data, &tasks); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-8s  %s\n", "ID", "TITLE", "SUBJECT", "STATUS", "PRIORITY", "DUE")
			fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-8s  %s\n", "----", "-----", "-------", "------", "--------", "---")
			for _, task := range tasks {
				fmt.Printf("%-42s  %-28s  %-14s  %-12s  %-8s  %s\n",
					task.ID, truncate(task.Title, 28), truncate(task.Subject, 14),
					task.Status, task.Priority, humanize.Time(task.DueDate))
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Printf("\n(%d of %d shown)\n", len(tasks), resp.Pagination.Total)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (pending, in_progress, completed, overdue)")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task_id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/tasks/"+args[0]+"/complete", nil)
			if err != nil {
				return fmt.Errorf("complete task: %w", err)
			}

			var task model.StudyTask
			if err := json.Unmarshal(resp.Data, &task); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			fmt.Printf("Completed: %s (%s)\n", task.Title, task.ID)
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task_id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/tasks/" + args[0]); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			fmt.Printf("Deleted: %s\n", args[0])
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
