package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/daymark/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks and excluded dates",
	Long: `List tasks, optionally including completed ones.

Examples:
  daymark list
  daymark list --done
  daymark list --excluded`,
	RunE: runList,
}

var (
	listIncludeDone  bool
	listExcludedOnly bool
)

func init() {
	listCmd.Flags().BoolVar(&listIncludeDone, "done", false, "Include completed tasks")
	listCmd.Flags().BoolVar(&listExcludedOnly, "excluded", false, "List excluded dates instead of tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	data := a.Data()

	if listExcludedOnly {
		printExcluded(data.ExcludedDates)
		return nil
	}

	tasks := data.Tasks
	if !listIncludeDone {
		filtered := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found. Add one with: daymark add \"Your task\"")
		return nil
	}

	pending := 0
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
	}

	fmt.Printf("\n📋 Tasks (%d pending)\n", pending)
	fmt.Println(strings.Repeat("─", 60))
	today := a.EffectiveToday()
	for i, t := range tasks {
		printTask(i+1, t, today)
	}
	fmt.Println()

	return nil
}

func printExcluded(excluded []model.ExcludedDate) {
	if len(excluded) == 0 {
		fmt.Println("No excluded dates. Toggle one with: daymark exclude 2026-07-14")
		return
	}

	fmt.Printf("\n📅 Excluded dates (%d)\n", len(excluded))
	fmt.Println(strings.Repeat("─", 44))
	for _, e := range excluded {
		line := fmt.Sprintf("  %s  %s", e.Date.Format(time.DateOnly), e.Date.Format("Mon"))
		if e.Comment != "" {
			line += "  " + e.Comment
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printTask(num int, t model.Task, today time.Time) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue(today) {
			due += " (overdue)"
		}
	}

	text := t.Text
	if len(text) > 40 {
		text = text[:37] + "..."
	}

	fmt.Printf("  %s  %-8s  %-40s  %s\n", icon, shortID(t.ID), text, due)
}
