package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAppData_RoundTrip(t *testing.T) {
	data := NewAppData()
	target := day(2026, 12, 31)
	data.TargetDate = &target
	data.ToggleExcluded(day(2026, 7, 14), "public holiday")
	data.ToggleExcluded(day(2026, 8, 3), "")

	task := NewTask("hand over project")
	due := day(2026, 9, 30)
	task.DueDate = &due
	data.Tasks = append(data.Tasks, task)

	encoded, err := data.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalAppData(encoded)
	require.NoError(t, err)

	require.NotNil(t, decoded.TargetDate)
	assert.True(t, SameDate(*data.TargetDate, *decoded.TargetDate))

	require.Len(t, decoded.ExcludedDates, 2)
	assert.Equal(t, data.ExcludedDates[0].Key(), decoded.ExcludedDates[0].Key())
	assert.Equal(t, "public holiday", decoded.ExcludedDates[0].Comment)

	require.Len(t, decoded.Tasks, 1)
	assert.Equal(t, task.ID, decoded.Tasks[0].ID)
	assert.Equal(t, task.Text, decoded.Tasks[0].Text)
	assert.False(t, decoded.Tasks[0].Completed)
	require.NotNil(t, decoded.Tasks[0].DueDate)
	assert.True(t, SameDate(due, *decoded.Tasks[0].DueDate))
}

func TestUnmarshalAppData_Empty(t *testing.T) {
	data, err := UnmarshalAppData(nil)
	require.NoError(t, err)
	assert.Nil(t, data.TargetDate)
	assert.NotNil(t, data.ExcludedDates)
	assert.NotNil(t, data.Tasks)
}

func TestUnmarshalAppData_MissingFields(t *testing.T) {
	data, err := UnmarshalAppData([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, data.ExcludedDates)
	assert.Empty(t, data.Tasks)
}

func TestUnmarshalAppData_LegacyExcludedDates(t *testing.T) {
	// Older versions stored exclusions as a bare string array
	raw := []byte(`{"targetDate":"2026-12-31T00:00:00Z","excludedDates":["2026-07-14","2026-08-03"],"tasks":[]}`)

	data, err := UnmarshalAppData(raw)
	require.NoError(t, err)

	require.Len(t, data.ExcludedDates, 2)
	assert.Equal(t, "2026-07-14", data.ExcludedDates[0].Key())
	assert.Equal(t, "", data.ExcludedDates[0].Comment)
	assert.Equal(t, "2026-08-03", data.ExcludedDates[1].Key())
	require.NotNil(t, data.TargetDate)
}

func TestToggleExcluded_Idempotent(t *testing.T) {
	data := NewAppData()
	data.ToggleExcluded(day(2026, 7, 14), "")

	original := data.ExcludedKeys()

	data.ToggleExcluded(day(2026, 8, 3), "vacation")
	data.ToggleExcluded(day(2026, 8, 3), "vacation")

	assert.Equal(t, original, data.ExcludedKeys())
}

func TestToggleExcluded_OneEntryPerDate(t *testing.T) {
	data := NewAppData()
	data.ToggleExcluded(day(2026, 7, 14), "first")
	data.ToggleExcluded(time.Date(2026, 7, 14, 15, 30, 0, 0, time.Local), "second")

	// Same calendar date regardless of time-of-day: toggled off again
	assert.Empty(t, data.ExcludedDates)
}

func TestToggleExcluded_KeepsSorted(t *testing.T) {
	data := NewAppData()
	data.ToggleExcluded(day(2026, 9, 1), "")
	data.ToggleExcluded(day(2026, 7, 14), "")
	data.ToggleExcluded(day(2026, 8, 3), "")

	require.Len(t, data.ExcludedDates, 3)
	assert.Equal(t, "2026-07-14", data.ExcludedDates[0].Key())
	assert.Equal(t, "2026-08-03", data.ExcludedDates[1].Key())
	assert.Equal(t, "2026-09-01", data.ExcludedDates[2].Key())
}

func TestSetExcludedComment_NeverChangesDateKey(t *testing.T) {
	data := NewAppData()
	data.ToggleExcluded(day(2026, 7, 14), "old")

	data.SetExcludedComment(day(2026, 7, 14), "new")

	require.Len(t, data.ExcludedDates, 1)
	assert.Equal(t, "2026-07-14", data.ExcludedDates[0].Key())
	assert.Equal(t, "new", data.ExcludedDates[0].Comment)

	// Unknown dates are ignored
	data.SetExcludedComment(day(2026, 1, 1), "nope")
	require.Len(t, data.ExcludedDates, 1)
}

func TestFindAndRemoveTask(t *testing.T) {
	data := NewAppData()
	a := NewTask("first")
	b := NewTask("second")
	data.Tasks = append(data.Tasks, a, b)

	found := data.FindTask(b.ID)
	require.NotNil(t, found)
	assert.Equal(t, "second", found.Text)

	assert.True(t, data.RemoveTask(a.ID))
	assert.False(t, data.RemoveTask(a.ID))
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, b.ID, data.Tasks[0].ID)
}

func TestClone_IsDeep(t *testing.T) {
	data := NewAppData()
	target := day(2026, 12, 31)
	data.TargetDate = &target
	data.Tasks = append(data.Tasks, NewTask("task"))

	clone := data.Clone()
	clone.Tasks[0].Completed = true
	*clone.TargetDate = day(2027, 1, 1)

	assert.False(t, data.Tasks[0].Completed)
	assert.True(t, SameDate(day(2026, 12, 31), *data.TargetDate))
}

func TestTask_IsOverdue(t *testing.T) {
	today := day(2026, 6, 3)

	task := NewTask("no due date")
	assert.False(t, task.IsOverdue(today))

	due := day(2026, 6, 2)
	task.DueDate = &due
	assert.True(t, task.IsOverdue(today))

	task.Completed = true
	assert.False(t, task.IsOverdue(today))

	dueToday := day(2026, 6, 3)
	task.Completed = false
	task.DueDate = &dueToday
	assert.False(t, task.IsOverdue(today))
}
