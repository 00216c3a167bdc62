package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a new task",
	Long: `Add a new task.

Examples:
  daymark add "Book flights"
  daymark add "Hand over project" -d 2026-09-30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var addDue string

func init() {
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (e.g. 'tomorrow', '2026-09-30')")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	text := strings.Join(args, " ")

	var due *time.Time
	if addDue != "" {
		d, err := parseDateArg(addDue)
		if err != nil {
			return err
		}
		due = &d
	}

	task, err := a.AddTask(text, due)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	if task.DueDate != nil {
		fmt.Printf("✓ Added: \"%s\" (due %s)\n", task.Text, task.DueDate.Format("Jan 2"))
	} else {
		fmt.Printf("✓ Added: \"%s\"\n", task.Text)
	}
	return nil
}
