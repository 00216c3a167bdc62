package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/existflow/daymark/internal/countdown"
	"github.com/existflow/daymark/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data    model.AppData
	found   bool
	loadErr error
	saveErr error

	saves  int
	resets int
}

func (f *fakeStore) Load() (model.AppData, bool, error) {
	return f.data.Clone(), f.found, f.loadErr
}

func (f *fakeStore) Save(data model.AppData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = data.Clone()
	f.found = true
	f.saves++
	return nil
}

func (f *fakeStore) Reset() error {
	f.data = model.NewAppData()
	f.found = false
	f.resets++
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeRemote struct {
	triggers []model.AppData
}

func (f *fakeRemote) TriggerSave(data model.AppData) {
	f.triggers = append(f.triggers, data)
}

func fixedAt(hour int) *countdown.Clock {
	c := countdown.NewClock(countdown.DefaultCutoffHour)
	c.Now = func() time.Time {
		return time.Date(2026, 6, 3, hour, 0, 0, 0, time.Local)
	}
	return c
}

func newTestApp(t *testing.T) (*App, *fakeStore, *fakeRemote) {
	t.Helper()
	st := &fakeStore{data: model.NewAppData()}
	remote := &fakeRemote{}
	return New(st, fixedAt(9), remote), st, remote
}

func TestLoad_UsesStoredState(t *testing.T) {
	st := &fakeStore{data: model.NewAppData(), found: true}
	st.data.Tasks = append(st.data.Tasks, model.NewTask("stored"))

	a := New(st, fixedAt(9), nil)
	a.Load()

	require.Len(t, a.Data().Tasks, 1)
	assert.Equal(t, "stored", a.Data().Tasks[0].Text)
}

func TestLoad_FailureKeepsInMemoryState(t *testing.T) {
	st := &fakeStore{loadErr: fmt.Errorf("disk on fire")}
	a := New(st, fixedAt(9), nil)

	task, err := a.AddTask("survives", nil)
	require.NoError(t, err)

	a.Load()

	data := a.Data()
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, task.ID, data.Tasks[0].ID)
}

func TestAddTask(t *testing.T) {
	a, st, remote := newTestApp(t)

	due := time.Date(2026, 6, 10, 14, 30, 0, 0, time.Local)
	task, err := a.AddTask("finish handover", &due)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, 0, task.DueDate.Hour()) // due dates are date-only

	assert.Equal(t, 1, st.saves)
	require.Len(t, remote.triggers, 1)
	require.Len(t, remote.triggers[0].Tasks, 1)
}

func TestAddTask_RejectsEmptyText(t *testing.T) {
	a, st, remote := newTestApp(t)

	_, err := a.AddTask("   ", nil)
	require.Error(t, err)
	assert.Equal(t, 0, st.saves)
	assert.Empty(t, remote.triggers)
}

func TestToggleTask(t *testing.T) {
	a, _, _ := newTestApp(t)

	task, err := a.AddTask("flip me", nil)
	require.NoError(t, err)

	require.NoError(t, a.ToggleTask(task.ID))
	assert.True(t, a.Data().Tasks[0].Completed)

	require.NoError(t, a.ToggleTask(task.ID))
	assert.False(t, a.Data().Tasks[0].Completed)
}

func TestToggleTask_UnknownID(t *testing.T) {
	a, st, _ := newTestApp(t)
	require.Error(t, a.ToggleTask("nope"))
	assert.Equal(t, 0, st.saves)
}

func TestDeleteTask(t *testing.T) {
	a, _, _ := newTestApp(t)

	task, err := a.AddTask("doomed", nil)
	require.NoError(t, err)

	require.NoError(t, a.DeleteTask(task.ID))
	assert.Empty(t, a.Data().Tasks)
	require.Error(t, a.DeleteTask(task.ID))
}

func TestSetAndClearTarget(t *testing.T) {
	a, st, remote := newTestApp(t)

	a.SetTarget(time.Date(2026, 12, 31, 15, 45, 0, 0, time.Local))
	data := a.Data()
	require.NotNil(t, data.TargetDate)
	assert.Equal(t, 0, data.TargetDate.Hour())

	a.ClearTarget()
	assert.Nil(t, a.Data().TargetDate)

	assert.Equal(t, 2, st.saves)
	assert.Len(t, remote.triggers, 2)
}

func TestCountdown_UsesEffectiveToday(t *testing.T) {
	st := &fakeStore{data: model.NewAppData()}

	// Before cutoff: today is June 3, target June 5 is 3 calendar days away
	a := New(st, fixedAt(9), nil)
	a.SetTarget(time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))
	assert.Equal(t, 3, a.Countdown().CalendarDays)

	// After cutoff the effective today advances and the count shrinks
	a = New(st, fixedAt(18), nil)
	a.Load()
	assert.Equal(t, 2, a.Countdown().CalendarDays)
}

func TestToggleExcluded_AffectsWorkingDays(t *testing.T) {
	a, _, _ := newTestApp(t)

	// June 3 2026 is a Wednesday; target Friday June 5
	a.SetTarget(time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))
	require.Equal(t, 3, a.Countdown().WorkingDays)

	a.ToggleExcluded(time.Date(2026, 6, 4, 0, 0, 0, 0, time.Local), "offsite")
	assert.Equal(t, 2, a.Countdown().WorkingDays)

	a.ToggleExcluded(time.Date(2026, 6, 4, 0, 0, 0, 0, time.Local), "")
	assert.Equal(t, 3, a.Countdown().WorkingDays)
}

func TestSetExcludedComment(t *testing.T) {
	a, _, _ := newTestApp(t)

	date := time.Date(2026, 6, 4, 0, 0, 0, 0, time.Local)
	a.ToggleExcluded(date, "old")
	a.SetExcludedComment(date, "new")

	data := a.Data()
	require.Len(t, data.ExcludedDates, 1)
	assert.Equal(t, "new", data.ExcludedDates[0].Comment)
}

func TestReset(t *testing.T) {
	a, st, remote := newTestApp(t)

	_, err := a.AddTask("gone soon", nil)
	require.NoError(t, err)
	a.SetTarget(time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local))

	require.NoError(t, a.Reset())

	data := a.Data()
	assert.Nil(t, data.TargetDate)
	assert.Empty(t, data.Tasks)
	assert.Equal(t, 1, st.resets)

	// The reset itself pushes an empty document to the remote
	last := remote.triggers[len(remote.triggers)-1]
	assert.Empty(t, last.Tasks)
	assert.Nil(t, last.TargetDate)
}

func TestSaveFailure_DoesNotBlockMutation(t *testing.T) {
	st := &fakeStore{saveErr: fmt.Errorf("readonly filesystem")}
	a := New(st, fixedAt(9), nil)

	task, err := a.AddTask("still here", nil)
	require.NoError(t, err)
	assert.Equal(t, task.ID, a.Data().Tasks[0].ID)
}

func TestReplace_PersistsWithoutRemoteEcho(t *testing.T) {
	a, st, remote := newTestApp(t)

	incoming := model.NewAppData()
	incoming.Tasks = append(incoming.Tasks, model.NewTask("from remote"))
	a.Replace(incoming)

	require.Len(t, a.Data().Tasks, 1)
	assert.Equal(t, 1, st.saves)
	// A pulled document must not be pushed straight back
	assert.Empty(t, remote.triggers)
}

func TestSyncStatus(t *testing.T) {
	st := &fakeStore{data: model.NewAppData()}

	a := New(st, fixedAt(9), nil)
	assert.Equal(t, "local only", a.SyncStatus())

	a = New(st, fixedAt(9), &fakeRemote{})
	assert.Equal(t, "local only", a.SyncStatus()) // fakeRemote has no Status()
}

func TestData_ReturnsCopy(t *testing.T) {
	a, _, _ := newTestApp(t)
	_, err := a.AddTask("original", nil)
	require.NoError(t, err)

	data := a.Data()
	data.Tasks[0].Text = "mutated"

	assert.Equal(t, "original", a.Data().Tasks[0].Text)
}
