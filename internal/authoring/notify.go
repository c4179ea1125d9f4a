package authoring

import (
	"slices"
	"sync"
	"time"
)

// Notifier shows short feedback to the author. Notify never blocks.
type Notifier interface {
	Notify(message string, isError bool)
}

// Scheduler runs fn once after delay. Scheduled work is never cancelled.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) { time.AfterFunc(delay, fn) }

// Toast lifecycle timings.
const (
	ToastShowDelay = 10 * time.Millisecond
	ToastDisplay   = 2200 * time.Millisecond
	ToastFade      = 400 * time.Millisecond
)

type Toast struct {
	ID      int
	Message string
	Error   bool
	Visible bool
}

// Toaster keeps a stack of toasts. Each toast turns visible shortly after it
// is created, hides after ToastDisplay and is dropped after ToastFade.
// Timers fire on their own goroutines, hence the lock.
type Toaster struct {
	sched Scheduler

	mu       sync.Mutex
	toasts   []Toast
	nextID   int
	onChange func()
}

func NewToaster(sched Scheduler) *Toaster {
	return &Toaster{sched: sched}
}

// OnChange registers fn to be called after every change to the stack.
// fn runs outside the lock, possibly on a timer goroutine.
func (t *Toaster) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *Toaster) Notify(message string, isError bool) {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.toasts = append(t.toasts, Toast{ID: id, Message: message, Error: isError})
	t.mu.Unlock()
	t.changed()

	t.sched.Schedule(ToastShowDelay, func() {
		t.update(id, func(toast *Toast) { toast.Visible = true })
	})
	t.sched.Schedule(ToastDisplay, func() {
		t.update(id, func(toast *Toast) { toast.Visible = false })
		t.sched.Schedule(ToastFade, func() { t.remove(id) })
	})
}

// Toasts returns the current stack, oldest first.
func (t *Toaster) Toasts() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.toasts)
}

func (t *Toaster) update(id int, fn func(*Toast)) {
	t.mu.Lock()
	i := t.index(id)
	if i >= 0 {
		fn(&t.toasts[i])
	}
	t.mu.Unlock()
	if i >= 0 {
		t.changed()
	}
}

func (t *Toaster) remove(id int) {
	t.mu.Lock()
	i := t.index(id)
	if i >= 0 {
		t.toasts = slices.Delete(t.toasts, i, i+1)
	}
	t.mu.Unlock()
	if i >= 0 {
		t.changed()
	}
}

func (t *Toaster) index(id int) int {
	return slices.IndexFunc(t.toasts, func(toast Toast) bool { return toast.ID == id })
}

func (t *Toaster) changed() {
	t.mu.Lock()
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
