package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	data := a.Data()
	id, err := resolveTaskID(data.Tasks, args[0])
	if err != nil {
		return err
	}
	task := data.FindTask(id)

	if !deleteForce {
		fmt.Printf("Delete \"%s\"? (y/N): ", task.Text)
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.DeleteTask(id); err != nil {
		return err
	}

	fmt.Printf("✗ Deleted: \"%s\"\n", task.Text)
	return nil
}
