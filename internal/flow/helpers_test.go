package flow

import "github.com/blackwell-systems/sessionflow/internal/recording"

func incremental(ts int64, src recording.IncrementalSource) recording.RawEvent {
	return recording.RawEvent{
		Type:      recording.EventIncrementalSnapshot,
		Timestamp: ts,
		Data:      &recording.EventData{Source: &src},
	}
}

func mouse(ts int64, kind recording.MouseInteraction, id any) recording.RawEvent {
	ev := incremental(ts, recording.SourceMouseInteraction)
	ev.Data.Type = &kind
	ev.Data.ID = id
	return ev
}

func click(ts int64, id any) recording.RawEvent {
	return mouse(ts, recording.MouseClick, id)
}

func input(ts int64) recording.RawEvent {
	return incremental(ts, recording.SourceInput)
}

func scroll(ts int64, y float64) recording.RawEvent {
	ev := incremental(ts, recording.SourceScroll)
	ev.Data.Y = &y
	return ev
}

func newRecording(start, end int64, events ...recording.RawEvent) *recording.Recording {
	return &recording.Recording{
		SessionID: "sess-001",
		Version:   "A",
		StartTime: start,
		EndTime:   end,
		Events:    events,
		Metadata: recording.Metadata{
			URL:       "https://site.com/pricing-page",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Viewport:  recording.Viewport{Width: 1280, Height: 720},
		},
	}
}
