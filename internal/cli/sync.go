package cli

import (
	"fmt"

	"github.com/existflow/daymark/internal/sync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the server",
	Long: `Push the local state to the sync server, or pull the remote copy.

The remote document always wins or loses wholesale: there is no merging.

Examples:
  daymark sync
  daymark sync --pull
  daymark sync server https://daymark.example.com`,
	RunE: runSync,
}

var syncServerCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Show or set the sync server URL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSyncServer,
}

var syncPull bool

func init() {
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "Replace local state with the remote copy")
	syncCmd.AddCommand(syncServerCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}
	if !client.IsLoggedIn() {
		fmt.Println("Not logged in. Run: daymark auth login")
		return nil
	}

	a, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if syncPull {
		fmt.Println("🔄 Pulling remote state...")
		data, found, err := client.LoadState()
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		if !found {
			fmt.Println("Server has no document yet. Push with: daymark sync")
			return nil
		}
		a.Replace(data)
		_ = client.UpdateSyncTime()
		fmt.Printf("✓ Pulled (%d tasks, %d excluded dates)\n",
			len(data.Tasks), len(data.ExcludedDates))
		return nil
	}

	fmt.Println("🔄 Pushing local state...")
	if err := client.SaveState(a.Data()); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	_ = client.UpdateSyncTime()
	fmt.Println("✓ Pushed.")
	return nil
}

func runSyncServer(cmd *cobra.Command, args []string) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		server, _, _ := client.GetStatus()
		fmt.Printf("Sync server: %s\n", server)
		return nil
	}

	if err := client.SetServer(args[0]); err != nil {
		return err
	}
	fmt.Printf("Sync server set to %s\n", args[0])
	return nil
}
