package platform

import (
	"sync"
	"time"
)

// EventQueue is an unbounded FIFO fed by native callbacks. Producers never
// block, so it is safe to push from inside JS or GLFW callbacks.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
	notify chan struct{}
}

func NewEventQueue() *EventQueue {
	return &EventQueue{notify: make(chan struct{}, 1)}
}

func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *EventQueue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return e, true
}

// Wait pops the next event, blocking up to timeout. It returns TimeoutEvent
// when nothing arrived.
func (q *EventQueue) Wait(timeout time.Duration) Event {
	if e, ok := q.Pop(); ok {
		return e
	}
	if timeout <= 0 {
		return TimeoutEvent{}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.notify:
			if e, ok := q.Pop(); ok {
				return e
			}
		case <-timer.C:
			if e, ok := q.Pop(); ok {
				return e
			}
			return TimeoutEvent{}
		}
	}
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
