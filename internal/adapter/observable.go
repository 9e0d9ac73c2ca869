package adapter

import "fmt"

// Observable keeps the registered observers of an adapter.
type Observable struct {
	observers []DataSetObserver
}

// Register adds o. Registering nil or the same observer twice panics.
func (o *Observable) Register(observer DataSetObserver) {
	if observer == nil {
		panic("adapter: nil observer")
	}
	if o.indexOf(observer) >= 0 {
		panic(fmt.Sprintf("adapter: observer %T already registered", observer))
	}
	o.observers = append(o.observers, observer)
}

// Unregister removes o. Removing an observer that was never registered
// panics.
func (o *Observable) Unregister(observer DataSetObserver) {
	i := o.indexOf(observer)
	if i < 0 {
		panic(fmt.Sprintf("adapter: observer %T was not registered", observer))
	}
	o.observers = append(o.observers[:i], o.observers[i+1:]...)
}

// Count returns the number of registered observers.
func (o *Observable) Count() int {
	return len(o.observers)
}

func (o *Observable) NotifyChanged() {
	for _, observer := range o.snapshot() {
		observer.OnChanged()
	}
}

func (o *Observable) NotifyInvalidated() {
	for _, observer := range o.snapshot() {
		observer.OnInvalidated()
	}
}

func (o *Observable) indexOf(observer DataSetObserver) int {
	for i, existing := range o.observers {
		if existing == observer {
			return i
		}
	}
	return -1
}

// snapshot lets observers unregister themselves while being notified.
func (o *Observable) snapshot() []DataSetObserver {
	return append([]DataSetObserver(nil), o.observers...)
}
