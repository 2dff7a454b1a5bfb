package types

import "fmt"

//go:generate stringer -type=EventKind -trimprefix=Event
type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventInput
	EventTime
	EventStop
)

type Event struct {
	Input InputEvent
	Kind  EventKind
}

func (e *Event) String() string {
	inner := ""
	if e.Kind == EventInput {
		inner = fmt.Sprintf(" source=%s key=%v", e.Input.Source, e.Input.Key)
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}

type InputKey uint16

type InputEvent struct {
	Source string
	Key    InputKey
}

func (e *InputEvent) IsZero() bool { return e.Key == 0 }
