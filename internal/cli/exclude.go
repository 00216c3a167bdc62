package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var excludeCmd = &cobra.Command{
	Use:   "exclude [date]",
	Short: "Toggle a date's excluded (non-working) status",
	Long: `Toggle a date's excluded status. Excluded dates are skipped when
counting working days. Toggling an excluded date removes it again.

Examples:
  daymark exclude 2026-07-14
  daymark exclude 2026-07-14 -m "public holiday"
  daymark exclude 2026-07-14 --comment "vacation" --edit`,
	Args: cobra.ExactArgs(1),
	RunE: runExclude,
}

var (
	excludeComment string
	excludeEdit    bool
)

func init() {
	excludeCmd.Flags().StringVarP(&excludeComment, "comment", "m", "", "Comment for the excluded date")
	excludeCmd.Flags().BoolVar(&excludeEdit, "edit", false, "Update the comment on an existing exclusion instead of toggling")
}

func runExclude(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := parseDateArg(args[0])
	if err != nil {
		return err
	}

	if excludeEdit {
		if !a.Data().IsExcluded(date) {
			return fmt.Errorf("%s is not excluded", date.Format(time.DateOnly))
		}
		a.SetExcludedComment(date, excludeComment)
		fmt.Printf("✎ Updated comment for %s\n", date.Format(time.DateOnly))
		return nil
	}

	wasExcluded := a.Data().IsExcluded(date)
	a.ToggleExcluded(date, excludeComment)

	if wasExcluded {
		fmt.Printf("✓ %s is a working day again\n", date.Format(time.DateOnly))
	} else {
		fmt.Printf("✓ %s excluded from working days\n", date.Format(time.DateOnly))
	}
	printCounts(a)
	return nil
}
