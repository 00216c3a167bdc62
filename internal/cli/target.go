package cli

import (
	"fmt"
	"time"

	"github.com/existflow/daymark/internal/app"
	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target [date]",
	Short: "Show or set the countdown target date",
	Long: `Show or set the countdown target date.

Examples:
  daymark target
  daymark target 2026-12-31
  daymark target --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTarget,
}

var targetClear bool

func init() {
	targetCmd.Flags().BoolVar(&targetClear, "clear", false, "Remove the target date")
}

func runTarget(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if targetClear {
		a.ClearTarget()
		fmt.Println("Target date cleared.")
		return nil
	}

	if len(args) == 0 {
		data := a.Data()
		if data.TargetDate == nil {
			fmt.Println("No target date set. Set one with: daymark target 2026-12-31")
			return nil
		}
		fmt.Printf("Target: %s\n", data.TargetDate.Format("Mon Jan 2 2006"))
		printCounts(a)
		return nil
	}

	target, err := parseDateArg(args[0])
	if err != nil {
		return err
	}

	a.SetTarget(target)
	fmt.Printf("Target set to %s\n", target.Format("Mon Jan 2 2006"))
	printCounts(a)
	return nil
}

func printCounts(a *app.App) {
	counts := a.Countdown()
	fmt.Printf("  %d calendar days, %d working days remaining (from %s)\n",
		counts.CalendarDays, counts.WorkingDays,
		a.EffectiveToday().Format(time.DateOnly))
}
