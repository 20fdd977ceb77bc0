package form

import (
	"sort"

	"github.com/goliatone/go-regform/pkg/validation"
)

// EventKind identifies what changed in the form.
type EventKind string

const (
	EventValueChanged EventKind = "valueChanged"
	EventTouched      EventKind = "touched"
	EventRejected     EventKind = "rejected"
	EventSubmitted    EventKind = "submitted"
	EventReset        EventKind = "reset"
)

// Event is delivered to listeners after the form has been re-evaluated.
type Event struct {
	Kind EventKind
	// Field is the field the event originated from; empty for form wide
	// events.
	Field string
	// Affected lists the fields whose error sets may have changed.
	Affected []string
	// Errors is a snapshot of every field's error set after the change.
	Errors map[string]validation.Codes
	// FormErrors is a snapshot of the cross-field codes.
	FormErrors validation.Codes
	// Submitted mirrors the form level submitted flag.
	Submitted bool
	// Submission is set for EventSubmitted.
	Submission *Submission
}

// Listener receives form events synchronously, in subscription order.
type Listener func(Event)

// Subscribe registers a listener and returns a function that removes it.
func (f *Form) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	f.listenerID++
	id := f.listenerID
	f.listeners[id] = listener
	return func() {
		delete(f.listeners, id)
	}
}

func (f *Form) emit(event Event) {
	if len(f.listeners) == 0 {
		return
	}
	event.Errors = f.snapshotErrors()
	event.FormErrors = f.FormErrors()
	event.Submitted = f.submitted

	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if listener, ok := f.listeners[id]; ok {
			listener(event)
		}
	}
}
