// Package store defines the persistence provider contract and its local
// SQLite implementation. Providers are injected into the application state
// holder; nothing in the core reaches for storage ambiently.
package store

import "github.com/existflow/daymark/internal/model"

// Provider persists the full application state. Load reports found=false
// when no state has been stored yet; callers fall back to defaults.
type Provider interface {
	Load() (data model.AppData, found bool, err error)
	Save(data model.AppData) error
	Reset() error
	Close() error
}
