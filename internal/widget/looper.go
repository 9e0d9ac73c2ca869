package widget

import (
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Looper is the single logical UI queue. Tasks run on the UI goroutine in
// the order they were posted.
type Looper interface {
	Post(fn func())
	PostDelayed(d time.Duration, fn func())
}

// Task is the payload a ScreenLooper carries through tcell's event queue.
type Task func()

// ScreenLooper posts tasks onto a tcell screen's event queue as interrupt
// events. The event loop runs them with RunInterrupt.
type ScreenLooper struct {
	screen tcell.Screen
}

// NewScreenLooper returns a looper backed by s.
func NewScreenLooper(s tcell.Screen) *ScreenLooper {
	return &ScreenLooper{screen: s}
}

// Post enqueues fn behind every event already queued. A task that does not
// fit in a full event queue is dropped and logged.
func (l *ScreenLooper) Post(fn func()) {
	if err := l.screen.PostEvent(tcell.NewEventInterrupt(Task(fn))); err != nil {
		log.Printf("Dropped posted task: %v", err)
	}
}

// PostDelayed enqueues fn once d has elapsed.
func (l *ScreenLooper) PostDelayed(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// RunInterrupt runs the task carried by ev, if any, and reports whether ev
// was a looper task.
func RunInterrupt(ev tcell.Event) bool {
	in, ok := ev.(*tcell.EventInterrupt)
	if !ok {
		return false
	}
	task, ok := in.Data().(Task)
	if !ok {
		return false
	}
	task()
	return true
}

type queuedTask struct {
	due time.Time
	fn  func()
}

// Queue is an in-memory Looper drained explicitly with RunPending. It is
// what tests and headless hosts use.
type Queue struct {
	mu    sync.Mutex
	tasks []queuedTask
	now   func() time.Time
}

// NewQueue returns an empty queue using the wall clock.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// SetClock replaces the time source used for delayed tasks.
func (q *Queue) SetClock(now func() time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
}

func (q *Queue) Post(fn func()) {
	q.PostDelayed(0, fn)
}

func (q *Queue) PostDelayed(d time.Duration, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, queuedTask{due: q.now().Add(d), fn: fn})
}

// Len returns the number of queued tasks, due or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// RunPending runs every task that is due, in submission order, including
// tasks posted by those tasks if they are already due. It returns the number
// of tasks run.
func (q *Queue) RunPending() int {
	ran := 0
	for {
		fn := q.nextDue()
		if fn == nil {
			return ran
		}
		fn()
		ran++
	}
}

func (q *Queue) nextDue() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	for i, t := range q.tasks {
		if !t.due.After(now) {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return t.fn
		}
	}
	return nil
}
