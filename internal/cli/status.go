package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/daymark/internal/sync"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the countdown and sync status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	data := a.Data()
	counts := a.Countdown()

	fmt.Println()
	if data.TargetDate != nil {
		fmt.Printf("🎯 Target: %s\n", data.TargetDate.Format("Mon Jan 2 2006"))
	} else {
		fmt.Println("🎯 Target: not set")
	}
	fmt.Println(strings.Repeat("─", 44))
	fmt.Printf("  Calendar days remaining: %d\n", counts.CalendarDays)
	fmt.Printf("  Working days remaining:  %d\n", counts.WorkingDays)
	fmt.Printf("  Counting from:           %s\n", a.EffectiveToday().Format(time.DateOnly))
	fmt.Printf("  Excluded dates:          %d\n", len(data.ExcludedDates))

	pending := 0
	for _, t := range data.Tasks {
		if !t.Completed {
			pending++
		}
	}
	fmt.Printf("  Tasks:                   %d pending / %d total\n", pending, len(data.Tasks))

	client, err := sync.NewClient()
	if err == nil && client.IsLoggedIn() {
		server, userID, lastSync := client.GetStatus()
		fmt.Printf("  Sync:                    %s (user %s)\n", server, shortID(userID))
		if lastSync > 0 {
			fmt.Printf("  Last sync:               %s\n", time.Unix(lastSync, 0).Format("Jan 2 15:04"))
		}
	} else {
		fmt.Println("  Sync:                    local only")
	}
	fmt.Println()

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
