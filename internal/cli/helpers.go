package cli

import (
	"fmt"
	"time"

	"github.com/existflow/daymark/internal/app"
	"github.com/existflow/daymark/internal/config"
	"github.com/existflow/daymark/internal/countdown"
	"github.com/existflow/daymark/internal/store"
	"github.com/existflow/daymark/internal/sync"
)

// openApp wires the application: local store, effective-today clock, and
// the remote auto-saver when a sync session exists. The returned cleanup
// flushes any pending remote save and closes the store.
func openApp() (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	st, err := store.OpenDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	clock := countdown.NewClock(cfg.CutoffHour)

	var remote *sync.AutoSaver
	client, err := sync.NewClient()
	if err == nil && client.IsLoggedIn() {
		remote = sync.NewAutoSaver(client)
	}

	var a *app.App
	if remote != nil {
		a = app.New(st, clock, remote)
	} else {
		a = app.New(st, clock, nil)
	}
	a.Load()

	cleanup := func() {
		if remote != nil {
			remote.Flush()
			remote.Stop()
		}
		_ = st.Close()
	}
	return a, cleanup, nil
}

// parseDateArg accepts YYYY-MM-DD plus the shorthands today and tomorrow
func parseDateArg(s string) (time.Time, error) {
	now := time.Now()
	switch s {
	case "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
