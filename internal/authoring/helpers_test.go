package authoring

import (
	"context"
	"errors"
	"sort"
	"time"

	"bijbelquiz.app/backend/internal/kvstore"
)

type note struct {
	Message string
	Error   bool
}

type recordingNotifier struct {
	notes []note
}

func (r *recordingNotifier) Notify(message string, isError bool) {
	r.notes = append(r.notes, note{Message: message, Error: isError})
}

func (r *recordingNotifier) last() note {
	if len(r.notes) == 0 {
		return note{}
	}
	return r.notes[len(r.notes)-1]
}

type memoryExporter struct {
	files map[string][]byte
	err   error
}

func (m *memoryExporter) Export(filename string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[filename] = data
	return nil
}

// manualScheduler runs scheduled callbacks only when the test advances its clock.
type manualScheduler struct {
	now   time.Duration
	tasks []scheduledTask
}

type scheduledTask struct {
	at time.Duration
	fn func()
}

func (m *manualScheduler) Schedule(delay time.Duration, fn func()) {
	m.tasks = append(m.tasks, scheduledTask{at: m.now + delay, fn: fn})
}

func (m *manualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		sort.SliceStable(m.tasks, func(i, j int) bool { return m.tasks[i].at < m.tasks[j].at })
		if len(m.tasks) == 0 || m.tasks[0].at > target {
			break
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.now = task.at
		task.fn()
	}
	m.now = target
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, kvstore.ErrUnavailable
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}
