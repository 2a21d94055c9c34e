package gfx_test

import (
	"reflect"
	"testing"

	"github.com/kjkrol/shaderpad/pkg/gfx"
)

func scriptedPoll(events ...gfx.Event) func(int) (gfx.Event, bool) {
	return func(int) (gfx.Event, bool) {
		if len(events) == 0 {
			return nil, false
		}
		e := events[0]
		events = events[1:]
		return e, true
	}
}

func TestStrategies(t *testing.T) {
	input := []gfx.Event{
		gfx.MotionNotify{X: 1, Y: 1},
		gfx.MotionNotify{X: 2, Y: 2},
		gfx.SourceEdited{Text: "a"},
		gfx.SourceEdited{Text: "ab"},
		gfx.Resize{Width: 10, Height: 10, PixelRatio: 1},
		gfx.MotionNotify{X: 3, Y: 3},
	}
	tests := []struct {
		name     string
		strategy gfx.EventsConsumerStrategy
		want     []gfx.Event
	}{
		{
			name:     "drain all",
			strategy: gfx.DrainAll(),
			want:     input,
		},
		{
			name:     "drain max",
			strategy: gfx.DrainMax(2),
			want:     input[:2],
		},
		{
			name:     "drain max below one",
			strategy: gfx.DrainMax(0),
			want:     input[:1],
		},
		{
			name:     "coalesce",
			strategy: gfx.CoalesceMotion(),
			want: []gfx.Event{
				gfx.SourceEdited{Text: "ab"},
				gfx.MotionNotify{X: 2, Y: 2},
				gfx.Resize{Width: 10, Height: 10, PixelRatio: 1},
				gfx.MotionNotify{X: 3, Y: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []gfx.Event
			n := tt.strategy.Consume(scriptedPoll(input...), func(e gfx.Event) { got = append(got, e) }, 0)
			if n != len(tt.want) {
				t.Fatalf("Consume returned %d, want %d", n, len(tt.want))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("handled %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestStrategies_EmptyPoll(t *testing.T) {
	for _, s := range []gfx.EventsConsumerStrategy{gfx.DrainAll(), gfx.DrainMax(3), gfx.CoalesceMotion()} {
		if n := s.Consume(scriptedPoll(), func(gfx.Event) { t.Fatalf("handled an event") }, 10); n != 0 {
			t.Fatalf("%T consumed %d events from an empty source", s, n)
		}
	}
}
