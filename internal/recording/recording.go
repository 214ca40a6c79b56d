package recording

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// UnmarshalJSON decodes a recording, tolerating fields of the wrong type and
// filling missing metadata with defaults. Only syntactically invalid JSON is
// an error.
func (r *Recording) UnmarshalJSON(b []byte) error {
	type plain Recording
	var p plain
	if err := json.Unmarshal(b, &p); err != nil && !isTypeError(err) {
		return err
	}
	*r = Recording(p)
	r.Metadata = r.Metadata.withDefaults()
	return nil
}

// UnmarshalJSON decodes metadata, dropping fields of the wrong shape.
func (m *Metadata) UnmarshalJSON(b []byte) error {
	type plain Metadata
	var p plain
	if err := json.Unmarshal(b, &p); err != nil && !isTypeError(err) {
		// Not an object: leave the zero value for withDefaults to fill.
		*m = Metadata{}
		return nil
	}
	*m = Metadata(p)
	return nil
}

func (m Metadata) withDefaults() Metadata {
	if strings.TrimSpace(m.URL) == "" {
		m.URL = UnknownValue
	}
	if strings.TrimSpace(m.UserAgent) == "" {
		m.UserAgent = UnknownValue
	}
	if m.Viewport.Width < 0 || m.Viewport.Height < 0 {
		m.Viewport = Viewport{}
	}
	return m
}

// Duration returns EndTime - StartTime in milliseconds.
func (r *Recording) Duration() int64 {
	return r.EndTime - r.StartTime
}

// Summary returns the listing view of the recording.
func (r *Recording) Summary() Summary {
	return Summary{
		SessionID:  r.SessionID,
		Version:    r.Version,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		EventCount: len(r.Events),
		URL:        r.Metadata.URL,
	}
}

// ParseFile reads a single recording file. A recording without a sessionId
// takes the file's base name.
func ParseFile(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Parse decodes a recording from JSON. fallbackID is used when the document
// carries no sessionId.
func Parse(data []byte, fallbackID string) (*Recording, error) {
	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.SessionID == "" {
		rec.SessionID = fallbackID
	}
	return &rec, nil
}
