package flow

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PageName turns a page URL into a display name: the last non-empty path
// segment, still percent-encoded, with hyphens as spaces and the first
// letter upper-cased. The root path is "Home"; anything without a scheme is
// "Unknown". A URL with an opaque path such as "mailto:x" uses the opaque
// part as its path, so it yields "X".
func PageName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" {
		return "Unknown"
	}

	path := u.EscapedPath()
	if u.Opaque != "" {
		path = u.Opaque
	}

	var last string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			last = seg
		}
	}
	if last == "" {
		return "Home"
	}

	return capitalize(strings.ReplaceAll(last, "-", " "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
