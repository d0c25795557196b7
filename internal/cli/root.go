package cli

import (
	"log/slog"
	"os"

	"github.com/me/studyplan/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking STUDYPLAN_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("STUDYPLAN_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the studyplan CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studyplan",
		Short: "studyplan — priority-based study scheduling",
		Long:  "studyplan manages study tasks, exams, and weekly availability, and generates optimized study schedules.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "studyplan server URL (or STUDYPLAN_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newTaskCmd(),
		newExamCmd(),
		newSlotCmd(),
		newPlanCmd(),
		newChatCmd(),
		newSeedCmd(),
	)

	return root
}
