package insight

import (
	"fmt"

	"github.com/blackwell-systems/sessionflow/internal/flow"
)

// Thresholds, in milliseconds and pixels.
const (
	slowFirstClickMs      = 5000
	fastFirstClickMs      = 2000
	shallowScrollPx       = 200
	deepScrollPx          = 1000
	interestScrollPx      = 800
	skimSpeedPx           = 50
	frustrationClicks     = 5
	frustrationIntervalMs = 500
)

// FirstImpression flags a slow first click on a page the visitor barely
// scrolled, or praises a quick one.
func FirstImpression(m *Metrics) []UXInsight {
	switch {
	case m.TimeToFirstClick > slowFirstClickMs && m.MaxScrollDepth < shallowScrollPx:
		return []UXInsight{{
			Type:  TypeWarning,
			Title: "Slow Initial Engagement",
			Description: fmt.Sprintf(
				"Visitors waited %s before their first click and scrolled only %.0fpx. "+
					"The landing content is not prompting action.",
				flow.FormatMs(m.TimeToFirstClick), m.MaxScrollDepth),
			Impact: "Move the primary call to action above the fold.",
		}}
	case m.TimeToFirstClick < fastFirstClickMs:
		return []UXInsight{{
			Type:  TypeSuccess,
			Title: "Strong Hook",
			Description: fmt.Sprintf(
				"Visitors clicked within %s of landing.", flow.FormatMs(m.TimeToFirstClick)),
			Impact: "The opening content captures attention; keep it.",
		}}
	}
	return nil
}

// ScrollBehavior detects fast skimming through long pages, and deep reading
// that never turns into a click.
func ScrollBehavior(m *Metrics) []UXInsight {
	switch {
	case m.MaxScrollDepth > deepScrollPx && m.AvgScrollSpeed > skimSpeedPx:
		return []UXInsight{{
			Type:  TypeWarning,
			Title: "Skimming Detected",
			Description: fmt.Sprintf(
				"Visitors reached %.0fpx at %.0fpx per scroll sample without slowing down.",
				m.MaxScrollDepth, m.AvgScrollSpeed),
			Impact: "Break long sections up with headings and visual anchors.",
		}}
	case m.MaxScrollDepth > interestScrollPx && m.Clicks == 0:
		return []UXInsight{{
			Type:  TypeCritical,
			Title: "High Interest, No Action",
			Description: fmt.Sprintf(
				"Visitors scrolled to %.0fpx but never clicked.", m.MaxScrollDepth),
			Impact: "Add a call to action where readers stop scrolling.",
		}}
	}
	return nil
}

// FormAbandonment fires when a visitor started a form and then left.
func FormAbandonment(m *Metrics) []UXInsight {
	if m.Inputs > 0 && m.ExitType == flow.ExitAbandoned {
		return []UXInsight{{
			Type:        TypeCritical,
			Title:       "Form Abandonment",
			Description: "Visitors interacted with a form and left without completing it.",
			Impact:      "Shorten the form or reduce the number of required fields.",
		}}
	}
	return nil
}

// Frustration detects bursts of rapid clicking.
func Frustration(m *Metrics) []UXInsight {
	if m.Clicks > frustrationClicks && m.AvgTimeBetweenClicks > 0 && m.AvgTimeBetweenClicks < frustrationIntervalMs {
		return []UXInsight{{
			Type:  TypeWarning,
			Title: "Frustration Signals",
			Description: fmt.Sprintf(
				"%.0f clicks averaging %.0fms apart suggest rage clicking.",
				m.Clicks, m.AvgTimeBetweenClicks),
			Impact: "Check for unresponsive buttons or elements that look clickable but are not.",
		}}
	}
	return nil
}

// fallback is emitted when no rule produced anything.
func fallback(m *Metrics) UXInsight {
	if m.ExitType == flow.ExitCompleted {
		return UXInsight{
			Type:        TypeSuccess,
			Title:       "Smooth Journey",
			Description: "Visitors moved through the page and completed their visit without friction.",
			Impact:      "No changes needed for this flow.",
		}
	}
	return UXInsight{
		Type:        TypeWarning,
		Title:       "Passive Browsing",
		Description: "Visitors looked around without strong signals of intent or friction.",
		Impact:      "Give visitors a clearer next step.",
	}
}
