package flow

import (
	"fmt"

	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// formInteractionLabel is the label of every input step; fields are not
// distinguished.
const formInteractionLabel = "Form interaction"

// Classify walks the recording's events once and counts them by interaction
// kind. Unrecognized events are skipped.
func Classify(rec *recording.Recording) Ingest {
	var in Ingest

	for _, ev := range rec.Events {
		it := ev.Interaction()
		switch it.Kind {
		case recording.Click:
			in.Clicks++
			if !in.FirstClickSeen {
				in.FirstClick = it.Timestamp
				in.FirstClickSeen = true
			}
			in.ClickTimes = append(in.ClickTimes, it.Timestamp)
			in.Steps = append(in.Steps, FlowStep{
				Type:      StepClick,
				Label:     fmt.Sprintf("Clicked element %s", it.ElementID),
				Timestamp: it.Timestamp,
				Details:   it.ElementID,
			})

		case recording.Focus:
			in.FocusEvents++

		case recording.Input:
			in.Inputs++
			in.Steps = append(in.Steps, FlowStep{
				Type:      StepInput,
				Label:     formInteractionLabel,
				Timestamp: it.Timestamp,
			})

		case recording.Scroll:
			in.Scrolls++
			if !in.FirstScrollSeen {
				in.FirstScroll = it.Timestamp
				in.FirstScrollSeen = true
			}
			if it.HasY {
				in.ScrollPositions = append(in.ScrollPositions, it.Y)
			}

		case recording.MouseMove:
			in.MouseMoves++

		case recording.Mutation:
			in.Mutations++

		case recording.Unrecognized:
		}
	}

	return in
}
