package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/me/studyplan/pkg/model"
	"github.com/spf13/cobra"
)

func newSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Manage weekly availability slots",
	}
	cmd.AddCommand(
		newSlotAddCmd(),
		newSlotListCmd(),
		newSlotRmCmd(),
	)
	return cmd
}

func newSlotAddCmd() *cobra.Command {
	var (
		flagDay   int
		flagStart int
		flagEnd   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weekly availability slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/slots/", map[string]any{
				"day_of_week": flagDay,
				"start_hour":  flagStart,
				"end_hour":    flagEnd,
			})
			if err != nil {
				return fmt.Errorf("create slot: %w", err)
			}

			var slot model.RecurringSlot
			if err := json.Unmarshal(resp.Data, &slot); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Slot created: %s\n", slot.ID)
			fmt.Printf("  %s %02d:00-%02d:00 (%d minutes/week)\n",
				time.Weekday(slot.DayOfWeek), slot.StartHour, slot.EndHour, slot.TotalMinutes())
			return nil
		},
	}

	cmd.Flags().IntVar(&flagDay, "day", 1, "Day of week (0=Sunday ... 6=Saturday)")
	cmd.Flags().IntVar(&flagStart, "start", 9, "Start hour (0-23)")
	cmd.Flags().IntVar(&flagEnd, "end", 11, "End hour (exclusive)")

	return cmd
}

func newSlotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List weekly availability slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/slots/")
			if err != nil {
				return fmt.Errorf("list slots: %w", err)
			}

			var slots []*model.RecurringSlot
			if err := json.Unmarshal(resp.Data, &slots); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(slots) == 0 {
				fmt.Println("No slots found.")
				return nil
			}

			fmt.Printf("%-42s  %-10s  %-12s  %s\n", "ID", "DAY", "WINDOW", "AVAILABLE")
			fmt.Printf("%-42s  %-10s  %-12s  %s\n", "----", "---", "------", "---------")
			for _, slot := range slots {
				fmt.Printf("%-42s  %-10s  %02d:00-%02d:00  %v\n",
					slot.ID, time.Weekday(slot.DayOfWeek), slot.StartHour, slot.EndHour, slot.Available)
			}
			return nil
		},
	}
}

func newSlotRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slot_id>",
		Short: "Delete a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/slots/" + args[0]); err != nil {
				return fmt.Errorf("delete slot: %w", err)
			}
			fmt.Printf("Deleted: %s\n", args[0])
			return nil
		},
	}
}
