package recording

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// EventType is the top-level rrweb event type.
type EventType int

const (
	EventDomContentLoaded EventType = iota
	EventLoad
	EventFullSnapshot
	EventIncrementalSnapshot
	EventMeta
	EventCustom
	EventPlugin

	// EventUndecodable marks an event whose envelope could not be read.
	EventUndecodable EventType = -1
)

// IncrementalSource is the data.source of an incremental snapshot event.
type IncrementalSource int

const (
	SourceMutation IncrementalSource = iota
	SourceMouseMove
	SourceMouseInteraction
	SourceScroll
	SourceViewportResize
	SourceInput
	SourceTouchMove
	SourceMediaInteraction
	SourceStyleSheetRule
	SourceCanvasMutation
	SourceFont
	SourceLog
	SourceDrag
	SourceStyleDeclaration
	SourceSelection
	SourceAdoptedStyleSheet
)

// MouseInteraction is the data.type of a MouseInteraction event.
type MouseInteraction int

const (
	MouseUp MouseInteraction = iota
	MouseDown
	MouseClick
	MouseContextMenu
	MouseDblClick
	MouseFocus
	MouseBlur
	MouseTouchStart
	MouseTouchMove
	MouseTouchEnd
	MouseTouchCancel
)

// EventData is the subset of an event payload the analysis reads. Every
// field is optional.
type EventData struct {
	Source *IncrementalSource `json:"source,omitempty"`
	Type   *MouseInteraction  `json:"type,omitempty"`
	ID     any                `json:"id,omitempty"`
	Y      *float64           `json:"y,omitempty"`
}

// RawEvent is a single recorded event.
type RawEvent struct {
	Type      EventType  `json:"type"`
	Timestamp int64      `json:"timestamp"`
	Data      *EventData `json:"data,omitempty"`
}

// UnmarshalJSON decodes an event without ever failing: fields of the wrong
// shape are dropped, and a value that is not an object at all becomes an
// EventUndecodable event.
func (e *RawEvent) UnmarshalJSON(b []byte) error {
	var env struct {
		Type      *float64        `json:"type"`
		Timestamp *float64        `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
	}
	*e = RawEvent{Type: EventUndecodable}
	if err := json.Unmarshal(b, &env); err != nil && !isTypeError(err) {
		return nil
	}
	if env.Type != nil {
		e.Type = EventType(*env.Type)
	}
	if env.Timestamp != nil {
		e.Timestamp = int64(*env.Timestamp)
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var d EventData
		if err := json.Unmarshal(env.Data, &d); err == nil || isTypeError(err) {
			e.Data = &d
		}
	}
	return nil
}

// InteractionKind discriminates the Interaction variant.
type InteractionKind int

const (
	Unrecognized InteractionKind = iota
	Click
	Focus
	Input
	Scroll
	MouseMove
	Mutation
)

func (k InteractionKind) String() string {
	switch k {
	case Click:
		return "click"
	case Focus:
		return "focus"
	case Input:
		return "input"
	case Scroll:
		return "scroll"
	case MouseMove:
		return "mousemove"
	case Mutation:
		return "mutation"
	default:
		return "unrecognized"
	}
}

// Interaction is the classified form of a RawEvent. ElementID is set for
// Click; Y and HasY for Scroll.
type Interaction struct {
	Kind      InteractionKind
	Timestamp int64
	ElementID string
	Y         float64
	HasY      bool
}

// Interaction classifies the event. Only incremental snapshots with a known
// source are recognized; everything else maps to Unrecognized.
func (e RawEvent) Interaction() Interaction {
	in := Interaction{Kind: Unrecognized, Timestamp: e.Timestamp}
	if e.Type != EventIncrementalSnapshot || e.Data == nil || e.Data.Source == nil {
		return in
	}

	switch *e.Data.Source {
	case SourceMutation:
		in.Kind = Mutation
	case SourceMouseMove:
		in.Kind = MouseMove
	case SourceMouseInteraction:
		if e.Data.Type == nil {
			return in
		}
		switch *e.Data.Type {
		case MouseClick:
			in.Kind = Click
			in.ElementID = elementRef(e.Data.ID)
		case MouseFocus, MouseBlur:
			in.Kind = Focus
		}
	case SourceScroll:
		in.Kind = Scroll
		if e.Data.Y != nil {
			in.Y = *e.Data.Y
			in.HasY = true
		}
	case SourceInput:
		in.Kind = Input
	}
	return in
}

// elementRef renders a recorder node id for display, "unknown" when absent.
func elementRef(id any) string {
	switch v := id.(type) {
	case nil:
		return "unknown"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v == "" {
			return "unknown"
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isTypeError(err error) bool {
	var te *json.UnmarshalTypeError
	return errors.As(err, &te)
}
