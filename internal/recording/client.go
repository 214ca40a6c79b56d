package recording

import "github.com/mssola/useragent"

// ParseClient breaks a user agent string down into browser, OS and device
// type. Missing or placeholder agents yield UnknownValue fields.
func ParseClient(userAgent string) ClientInfo {
	if userAgent == "" || userAgent == UnknownValue {
		return ClientInfo{
			Browser:    UnknownValue,
			OS:         UnknownValue,
			DeviceType: "unknown",
		}
	}

	ua := useragent.New(userAgent)
	info := ClientInfo{OS: ua.OS(), DeviceType: deviceType(ua)}
	info.Browser, info.BrowserVersion = ua.Browser()
	if info.Browser == "" {
		info.Browser = UnknownValue
	}
	if info.OS == "" {
		info.OS = UnknownValue
	}
	return info
}

func deviceType(ua *useragent.UserAgent) string {
	if ua.Mobile() {
		return "mobile"
	}
	if ua.Bot() {
		return "bot"
	}
	return "desktop"
}
