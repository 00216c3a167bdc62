package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/daymark/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "daymark.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestLoad_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	data, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data.TargetDate)
	assert.Empty(t, data.ExcludedDates)
	assert.Empty(t, data.Tasks)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	data := model.NewAppData()
	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	data.TargetDate = &target
	data.ToggleExcluded(time.Date(2026, 7, 14, 0, 0, 0, 0, time.Local), "public holiday")
	task := model.NewTask("wrap up")
	data.Tasks = append(data.Tasks, task)

	require.NoError(t, s.Save(data))

	loaded, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)

	require.NotNil(t, loaded.TargetDate)
	assert.True(t, model.SameDate(target, *loaded.TargetDate))

	require.Len(t, loaded.ExcludedDates, 1)
	assert.Equal(t, "2026-07-14", loaded.ExcludedDates[0].Key())
	assert.Equal(t, "public holiday", loaded.ExcludedDates[0].Comment)

	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, task.ID, loaded.Tasks[0].ID)
	assert.Equal(t, "wrap up", loaded.Tasks[0].Text)
}

func TestSave_ClearsTargetWhenNil(t *testing.T) {
	s := openTestStore(t)

	data := model.NewAppData()
	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	data.TargetDate = &target
	require.NoError(t, s.Save(data))

	data.TargetDate = nil
	require.NoError(t, s.Save(data))

	loaded, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found) // excluded_dates and tasks entries still exist
	assert.Nil(t, loaded.TargetDate)
}

func TestSave_OverwritesPreviousState(t *testing.T) {
	s := openTestStore(t)

	data := model.NewAppData()
	data.Tasks = append(data.Tasks, model.NewTask("first"), model.NewTask("second"))
	require.NoError(t, s.Save(data))

	data.Tasks = data.Tasks[:1]
	require.NoError(t, s.Save(data))

	loaded, _, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, "first", loaded.Tasks[0].Text)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)

	data := model.NewAppData()
	data.Tasks = append(data.Tasks, model.NewTask("doomed"))
	require.NoError(t, s.Save(data))

	require.NoError(t, s.Reset())

	_, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoad_MigratesLegacyExcludedDates(t *testing.T) {
	s := openTestStore(t)

	// Older versions stored excluded dates as a bare string array
	tx, err := s.db.Begin()
	require.NoError(t, err)
	require.NoError(t, setTx(tx, keyExcludedDates, []byte(`["2026-07-14","2026-08-03"]`)))
	require.NoError(t, tx.Commit())

	loaded, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)

	require.Len(t, loaded.ExcludedDates, 2)
	assert.Equal(t, "2026-07-14", loaded.ExcludedDates[0].Key())
	assert.Equal(t, "", loaded.ExcludedDates[0].Comment)
	assert.Equal(t, "2026-08-03", loaded.ExcludedDates[1].Key())
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "daymark.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
