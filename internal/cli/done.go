package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/daymark/internal/model"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completed state",
	Long: `Toggle a task's completed state. A unique ID prefix is enough.

Examples:
  daymark done 3f2a
  daymark done 3f2a91cc-...`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	id, err := resolveTaskID(a.Data().Tasks, args[0])
	if err != nil {
		return err
	}

	if err := a.ToggleTask(id); err != nil {
		return err
	}

	data := a.Data()
	task := data.FindTask(id)
	if task != nil && task.Completed {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Text)
	} else if task != nil {
		fmt.Printf("↺ Reopened: \"%s\"\n", task.Text)
	}
	return nil
}

// resolveTaskID matches a full ID or a unique prefix
func resolveTaskID(tasks []model.Task, prefix string) (string, error) {
	var match string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous task ID prefix: %s", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task matches: %s", prefix)
	}
	return match, nil
}
