package adapter

// Base provides the defaults shared by most adapters: one view type, no
// stable ids, every row enabled. Embed it and add Count, Item, ItemID,
// IsEmpty, CreateView, BindView and View.
type Base struct {
	observable Observable
}

func (b *Base) ItemViewType(position int) int { return 0 }
func (b *Base) ViewTypeCount() int            { return 1 }
func (b *Base) HasStableIDs() bool            { return false }
func (b *Base) IsEnabled(position int) bool   { return true }

func (b *Base) RegisterDataSetObserver(o DataSetObserver)   { b.observable.Register(o) }
func (b *Base) UnregisterDataSetObserver(o DataSetObserver) { b.observable.Unregister(o) }

// ObserverCount returns how many observers are registered.
func (b *Base) ObserverCount() int { return b.observable.Count() }

// NotifyDataSetChanged tells every observer the rows changed.
func (b *Base) NotifyDataSetChanged() { b.observable.NotifyChanged() }

// NotifyDataSetInvalidated tells every observer the data is gone.
func (b *Base) NotifyDataSetInvalidated() { b.observable.NotifyInvalidated() }
