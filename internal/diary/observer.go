// ABOUTME: Generic observer list used by the diary state holders.
// ABOUTME: Callbacks run synchronously in subscription order, outside the holder's lock.
package diary

import "sync"

type observer[T any] struct {
	id int
	fn func(T)
}

type observerList[T any] struct {
	mu     sync.Mutex
	nextID int
	items  []observer[T]
}

func (l *observerList[T]) add(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.items = append(l.items, observer[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *observerList[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, o := range l.items {
		if o.id == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *observerList[T]) notify(v T) {
	l.mu.Lock()
	snapshot := make([]observer[T], len(l.items))
	copy(snapshot, l.items)
	l.mu.Unlock()

	for _, o := range snapshot {
		o.fn(v)
	}
}
