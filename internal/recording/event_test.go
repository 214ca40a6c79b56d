package recording

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvents(t *testing.T, raw string) []RawEvent {
	t.Helper()
	var events []RawEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &events))
	return events
}

func TestRawEvent_DecodesClick(t *testing.T) {
	events := decodeEvents(t, `[{"type":3,"timestamp":1700000000123,"data":{"source":2,"type":2,"id":42,"x":10,"y":20}}]`)
	require.Len(t, events, 1)

	it := events[0].Interaction()
	assert.Equal(t, Click, it.Kind)
	assert.Equal(t, "42", it.ElementID)
	assert.Equal(t, int64(1700000000123), it.Timestamp)
}

func TestRawEvent_Interactions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want InteractionKind
	}{
		{"mutation", `{"type":3,"timestamp":1,"data":{"source":0}}`, Mutation},
		{"mouse move", `{"type":3,"timestamp":1,"data":{"source":1,"positions":[]}}`, MouseMove},
		{"focus", `{"type":3,"timestamp":1,"data":{"source":2,"type":5,"id":3}}`, Focus},
		{"blur", `{"type":3,"timestamp":1,"data":{"source":2,"type":6,"id":3}}`, Focus},
		{"mouse down", `{"type":3,"timestamp":1,"data":{"source":2,"type":1,"id":3}}`, Unrecognized},
		{"mouse interaction without type", `{"type":3,"timestamp":1,"data":{"source":2}}`, Unrecognized},
		{"scroll", `{"type":3,"timestamp":1,"data":{"source":3,"id":1,"x":0,"y":640}}`, Scroll},
		{"input", `{"type":3,"timestamp":1,"data":{"source":5,"text":"hi","isChecked":false}}`, Input},
		{"viewport resize", `{"type":3,"timestamp":1,"data":{"source":4,"width":800}}`, Unrecognized},
		{"unknown source", `{"type":3,"timestamp":1,"data":{"source":99}}`, Unrecognized},
		{"full snapshot", `{"type":2,"timestamp":1,"data":{"node":{}}}`, Unrecognized},
		{"meta", `{"type":4,"timestamp":1,"data":{"href":"https://x"}}`, Unrecognized},
		{"missing data", `{"type":3,"timestamp":1}`, Unrecognized},
		{"null data", `{"type":3,"timestamp":1,"data":null}`, Unrecognized},
		{"missing source", `{"type":3,"timestamp":1,"data":{}}`, Unrecognized},
		{"string source", `{"type":3,"timestamp":1,"data":{"source":"scroll"}}`, Unrecognized},
		{"data not an object", `{"type":3,"timestamp":1,"data":"oops"}`, Unrecognized},
		{"not an object", `"garbage"`, Unrecognized},
		{"null event", `null`, Unrecognized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := decodeEvents(t, "["+tc.raw+"]")
			require.Len(t, events, 1)
			assert.Equal(t, tc.want, events[0].Interaction().Kind)
		})
	}
}

func TestRawEvent_ScrollKeepsYAndSurvivesBadSiblings(t *testing.T) {
	events := decodeEvents(t, `[{"type":3,"timestamp":"late","data":{"source":3,"id":"bad","y":512.5}}]`)
	it := events[0].Interaction()
	assert.Equal(t, Scroll, it.Kind)
	assert.True(t, it.HasY)
	assert.Equal(t, 512.5, it.Y)
	assert.Zero(t, it.Timestamp)
}

func TestRawEvent_FloatTimestamp(t *testing.T) {
	events := decodeEvents(t, `[{"type":3,"timestamp":1500.7,"data":{"source":5}}]`)
	assert.Equal(t, int64(1500), events[0].Timestamp)
}

func TestElementRef(t *testing.T) {
	assert.Equal(t, "unknown", elementRef(nil))
	assert.Equal(t, "unknown", elementRef(""))
	assert.Equal(t, "17", elementRef(17.0))
	assert.Equal(t, "1.5", elementRef(1.5))
	assert.Equal(t, "submit", elementRef("submit"))
	assert.Equal(t, "true", elementRef(true))
}
