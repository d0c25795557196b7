package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to the study assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Post("/api/v1/chat", map[string]any{
				"message": strings.Join(args, " "),
			})
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			var reply struct {
				Content    string `json:"content"`
				ActionType string `json:"action_type"`
			}
			if err := json.Unmarshal(resp.Data, &reply); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Println(reply.Content)
			return nil
		},
	}
}
