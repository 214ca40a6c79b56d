package flow

import "fmt"

// FormatDuration renders milliseconds as "M:SS", e.g. 150000 -> "2:30".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatFlowDuration renders milliseconds as "Xs" below one minute and
// "Mm Ss" otherwise, e.g. 90000 -> "1m 30s".
func FormatFlowDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// FormatMs renders milliseconds as seconds with one decimal, e.g. 1500 -> "1.5s".
func FormatMs(ms float64) string {
	return fmt.Sprintf("%.1fs", ms/1000)
}
