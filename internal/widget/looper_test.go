package widget

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RunsInSubmissionOrder(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Post(func() { order = append(order, 1) })
	q.Post(func() {
		order = append(order, 2)
		q.Post(func() { order = append(order, 4) })
	})
	q.Post(func() { order = append(order, 3) })

	assert.Equal(t, 0, len(order), "posting must not run tasks synchronously")
	assert.Equal(t, 4, q.RunPending())
	assert.Equal(t, []int{1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DelayedTasksWaitForClock(t *testing.T) {
	now := time.Unix(1000, 0)
	q := NewQueue()
	q.SetClock(func() time.Time { return now })

	ran := false
	q.PostDelayed(500*time.Millisecond, func() { ran = true })
	assert.Equal(t, 0, q.RunPending())
	assert.False(t, ran)

	now = now.Add(500 * time.Millisecond)
	assert.Equal(t, 1, q.RunPending())
	assert.True(t, ran)
}

func TestRunInterrupt(t *testing.T) {
	ran := false
	ev := tcell.NewEventInterrupt(Task(func() { ran = true }))
	require.True(t, RunInterrupt(ev))
	assert.True(t, ran)

	assert.False(t, RunInterrupt(tcell.NewEventInterrupt("not a task")))
	assert.False(t, RunInterrupt(tcell.NewEventResize(10, 10)))
}

func TestBase_PostWithoutLooperRunsInline(t *testing.T) {
	b := NewBase(nil)
	ran := false
	b.Post(func() { ran = true })
	assert.True(t, ran)
}

func TestScreenLooper_LogsDroppedTasks(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)

	l := NewScreenLooper(s)
	ran := 0
	for i := 0; i < 11; i++ {
		l.Post(func() { ran++ })
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "Dropped posted task"))
	for s.HasPendingEvent() {
		RunInterrupt(s.PollEvent())
	}
	assert.Equal(t, 10, ran)
}
