package gfx

type EventsConsumerStrategy interface {
	Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int
}

type DrainAllStrategy struct{}

func (DrainAllStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	event, ok := poll(timeoutMs)
	if !ok {
		return 0
	}
	handle(event)
	count := 1
	for {
		event, ok = poll(0)
		if !ok {
			return count
		}
		handle(event)
		count++
	}
}

type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	limit := max(s.Max, 1)
	event, ok := poll(timeoutMs)
	if !ok {
		return 0
	}
	handle(event)
	count := 1
	for count < limit {
		event, ok = poll(0)
		if !ok {
			return count
		}
		handle(event)
		count++
	}
	return count
}

// CoalesceStrategy drains like DrainAll but collapses runs of pointer moves
// and source edits to the most recent of each. Any other event flushes the
// pending ones first, so ordering relative to resizes and frames holds.
type CoalesceStrategy struct{}

func (CoalesceStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	var (
		motion    *MotionNotify
		edit      *SourceEdited
		delivered int
	)
	flush := func() {
		if edit != nil {
			handle(*edit)
			edit = nil
			delivered++
		}
		if motion != nil {
			handle(*motion)
			motion = nil
			delivered++
		}
	}

	wait := timeoutMs
	for {
		event, ok := poll(wait)
		if !ok {
			flush()
			return delivered
		}
		wait = 0
		switch e := event.(type) {
		case MotionNotify:
			motion = &e
		case SourceEdited:
			edit = &e
		default:
			flush()
			handle(event)
			delivered++
		}
	}
}

func DrainAll() EventsConsumerStrategy {
	return DrainAllStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	return DrainMaxStrategy{Max: max}
}

func CoalesceMotion() EventsConsumerStrategy {
	return CoalesceStrategy{}
}
