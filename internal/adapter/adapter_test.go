package adapter

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	changed     int
	invalidated int
}

func (o *countingObserver) OnChanged()     { o.changed++ }
func (o *countingObserver) OnInvalidated() { o.invalidated++ }

func TestObservable_RegisterNotifyUnregister(t *testing.T) {
	var obs Observable
	a, b := &countingObserver{}, &countingObserver{}

	obs.Register(a)
	obs.Register(b)
	assert.Equal(t, 2, obs.Count())

	obs.NotifyChanged()
	obs.NotifyInvalidated()
	assert.Equal(t, 1, a.changed)
	assert.Equal(t, 1, b.invalidated)

	obs.Unregister(a)
	obs.NotifyChanged()
	assert.Equal(t, 1, a.changed)
	assert.Equal(t, 2, b.changed)
}

func TestObservable_Misuse(t *testing.T) {
	var obs Observable
	a := &countingObserver{}
	obs.Register(a)

	assert.Panics(t, func() { obs.Register(a) })
	assert.Panics(t, func() { obs.Register(nil) })
	assert.Panics(t, func() { obs.Unregister(&countingObserver{}) })
}

type selfRemoving struct {
	obs   *Observable
	calls int
}

func (s *selfRemoving) OnChanged() {
	s.calls++
	s.obs.Unregister(s)
}
func (s *selfRemoving) OnInvalidated() {}

func TestObservable_UnregisterDuringNotify(t *testing.T) {
	var obs Observable
	s := &selfRemoving{obs: &obs}
	other := &countingObserver{}
	obs.Register(s)
	obs.Register(other)

	obs.NotifyChanged()
	obs.NotifyChanged()

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 2, other.changed)
}

func TestStringAdapter(t *testing.T) {
	a := NewStringAdapter("one", "two")
	o := &countingObserver{}
	a.RegisterDataSetObserver(o)

	assert.Equal(t, 2, a.Count())
	assert.Equal(t, "two", a.Item(1))
	assert.Nil(t, a.Item(2))
	assert.Nil(t, a.Item(-1))

	a.Add("three")
	assert.True(t, a.Remove(0))
	assert.False(t, a.Remove(5))
	assert.Equal(t, []string{"two", "three"}, a.Items())
	assert.Equal(t, 2, o.changed)

	a.SetItems(nil)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 3, o.changed)
}

func TestGetView_ReusesConvertView(t *testing.T) {
	a := NewStringAdapter("alpha", "beta")

	first := a.View(0, nil, nil)
	label, ok := first.(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "alpha", label.Text)

	second := a.View(1, first, nil)
	assert.Same(t, first, second)
	assert.Equal(t, "beta", label.Text)
	assert.Equal(t, tcell.StyleDefault, label.Style)
}
