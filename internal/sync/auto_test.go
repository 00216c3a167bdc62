package sync

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/existflow/daymark/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	mu    sync.Mutex
	saves []model.AppData
	err   error
}

func (f *fakeSaver) SaveState(data model.AppData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, data)
	return nil
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeSaver) last() model.AppData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func newTestAutoSaver(saver Saver) *AutoSaver {
	return &AutoSaver{saver: saver, debounce: 20 * time.Millisecond}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func docWithTask(text string) model.AppData {
	data := model.NewAppData()
	data.Tasks = append(data.Tasks, model.NewTask(text))
	return data
}

func TestTriggerSave_FiresAfterDebounce(t *testing.T) {
	saver := &fakeSaver{}
	auto := newTestAutoSaver(saver)
	defer auto.Stop()

	auto.TriggerSave(docWithTask("one"))
	assert.Equal(t, 0, saver.count())

	waitFor(t, func() bool { return saver.count() == 1 })
	assert.Equal(t, "one", saver.last().Tasks[0].Text)
}

func TestTriggerSave_CoalescesToLatest(t *testing.T) {
	saver := &fakeSaver{}
	auto := newTestAutoSaver(saver)
	defer auto.Stop()

	auto.TriggerSave(docWithTask("first"))
	auto.TriggerSave(docWithTask("second"))
	auto.TriggerSave(docWithTask("third"))

	waitFor(t, func() bool { return saver.count() >= 1 })
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 1, saver.count())
	assert.Equal(t, "third", saver.last().Tasks[0].Text)
}

func TestStop_CancelsPendingSave(t *testing.T) {
	saver := &fakeSaver{}
	auto := newTestAutoSaver(saver)

	auto.TriggerSave(docWithTask("never sent"))
	auto.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, saver.count())

	// Triggers after Stop are ignored
	auto.TriggerSave(docWithTask("also never"))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, saver.count())
}

func TestFlush_SendsPendingImmediately(t *testing.T) {
	saver := &fakeSaver{}
	auto := &AutoSaver{saver: saver, debounce: time.Hour}
	defer auto.Stop()

	auto.TriggerSave(docWithTask("flushed"))
	auto.Flush()

	require.Equal(t, 1, saver.count())
	assert.Equal(t, "flushed", saver.last().Tasks[0].Text)

	// Nothing pending, flush is a no-op
	auto.Flush()
	assert.Equal(t, 1, saver.count())
}

func TestStatus_Transitions(t *testing.T) {
	saver := &fakeSaver{}
	auto := newTestAutoSaver(saver)
	defer auto.Stop()

	assert.Equal(t, "", auto.Status())

	auto.TriggerSave(docWithTask("pending"))
	assert.Equal(t, "sync pending", auto.Status())

	waitFor(t, func() bool { return saver.count() == 1 })
	assert.Contains(t, auto.Status(), "synced ")
}

func TestStatus_ReportsFailure(t *testing.T) {
	saver := &fakeSaver{err: fmt.Errorf("server unreachable")}
	auto := newTestAutoSaver(saver)
	defer auto.Stop()

	auto.TriggerSave(docWithTask("doomed"))
	waitFor(t, func() bool { return auto.Status() == "sync failed" })
}

func TestTriggerSave_SnapshotsDocument(t *testing.T) {
	saver := &fakeSaver{}
	auto := &AutoSaver{saver: saver, debounce: time.Hour}
	defer auto.Stop()

	data := docWithTask("original")
	auto.TriggerSave(data)
	data.Tasks[0].Text = "mutated after trigger"

	auto.Flush()
	require.Equal(t, 1, saver.count())
	assert.Equal(t, "original", saver.last().Tasks[0].Text)
}
