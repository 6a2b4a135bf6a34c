package selection

import "github.com/google/uuid"

type observer[T any] struct {
	id     uuid.UUID
	notify func(value T)
}

// observers keeps registration order so that notifications are delivered deterministically.
type observers[T any] struct {
	entries []observer[T]
}

func (o *observers[T]) add(notify func(value T)) uuid.UUID {
	id := uuid.New()
	o.entries = append(o.entries, observer[T]{id: id, notify: notify})
	return id
}

func (o *observers[T]) remove(id uuid.UUID) {
	for i, entry := range o.entries {
		if entry.id == id {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return
		}
	}
}

func (o *observers[T]) notifyAll(value T) {
	for _, entry := range o.entries {
		entry.notify(value)
	}
}

func (o *observers[T]) len() int {
	return len(o.entries)
}
