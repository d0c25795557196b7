package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/me/studyplan/pkg/model"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect study plans",
	}
	cmd.AddCommand(
		newPlanGenerateCmd(),
		newPlanShowCmd(),
		newPlanListCmd(),
	)
	return cmd
}

func newPlanGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a new study plan from current tasks and availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/plans/generate", nil)
			if err != nil {
				return fmt.Errorf("generate plan: %w", err)
			}

			var plan model.StudyPlan
			if err := json.Unmarshal(resp.Data, &plan); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Plan generated: %s\n", plan.ID)
			printPlan(&plan)
			return nil
		},
	}
}

func newPlanShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [plan_id]",
		Short: "Show a plan (latest when no ID is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/plans/latest"
			if len(args) == 1 {
				path = "/api/v1/plans/" + args[0]
			}
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("get plan: %w", err)
			}

			var plan model.StudyPlan
			if err := json.Unmarshal(resp.Data, &plan); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Plan: %s\n", plan.ID)
			printPlan(&plan)
			return nil
		},
	}
}

func newPlanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/plans/")
			if err != nil {
				return fmt.Errorf("list plans: %w", err)
			}

			var plans []*model.StudyPlan
			if err := json.Unmarshal(resp.Data, &plans); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			fmt.Printf("%-42s  %-10s  %-8s  %-6s  %s\n", "ID", "SESSIONS", "HOURS", "TASKS", "GENERATED")
			fmt.Printf("%-42s  %-10s  %-8s  %-6s  %s\n", "----", "--------", "-----", "-----", "---------")
			for _, plan := range plans {
				fmt.Printf("%-42s  %-10d  %-8.1f  %-6d  %s\n",
					plan.ID, len(plan.Sessions), plan.TotalStudyHours, plan.TasksIncluded,
					humanize.Time(plan.GeneratedAt))
			}
			return nil
		},
	}
}

func printPlan(plan *model.StudyPlan) {
	fmt.Printf("  Generated: %s\n", plan.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Tasks:     %d\n", plan.TasksIncluded)
	fmt.Printf("  Hours:     %.1f\n", plan.TotalStudyHours)

	if len(plan.Sessions) == 0 {
		fmt.Println("  No sessions scheduled.")
		return
	}

	fmt.Println("  Sessions:")
	for _, sess := range plan.Sessions {
		title := sess.TaskID
		if sess.Task != nil {
			title = sess.Task.Title
		}
		fmt.Printf("    %s  %s-%s  %3d min  %s\n",
			sess.Date.Format("2006-01-02"), sess.StartTime, sess.EndTime, sess.DurationMinutes, title)
	}
}
