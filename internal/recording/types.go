// Package recording provides types, decoders and sources for recorded
// browser sessions (rrweb-style event streams).
package recording

// Viewport is the browser viewport size at capture time.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata describes the page and browser a recording was captured on.
type Metadata struct {
	URL       string   `json:"url"`
	UserAgent string   `json:"userAgent"`
	Viewport  Viewport `json:"viewport"`
}

// Recording is one captured browser session as persisted by the capture
// pipeline. It is never mutated after decoding.
type Recording struct {
	SessionID string     `json:"sessionId"`
	Version   string     `json:"version"`
	StartTime int64      `json:"startTime"`
	EndTime   int64      `json:"endTime"`
	Events    []RawEvent `json:"events"`
	Metadata  Metadata   `json:"metadata"`
}

// Summary is the listing shape returned by a Source. It carries enough to
// select recordings without holding their event streams.
type Summary struct {
	SessionID  string `json:"sessionId"`
	Version    string `json:"version"`
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime"`
	EventCount int    `json:"eventCount"`
	URL        string `json:"url"`
}

// ClientInfo is the browser/device breakdown of a recording's user agent.
type ClientInfo struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion,omitempty"`
	OS             string `json:"os"`
	DeviceType     string `json:"deviceType"`
}

// UnknownValue is substituted for missing or malformed metadata strings.
const UnknownValue = "Unknown"
