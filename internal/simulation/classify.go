package simulation

import (
	"strings"

	"github.com/pitchlab/salestrainer/internal/textkit"
)

// classification is the per-utterance read the state machine acts on. All
// fields come from the textkit detectors; an empty utterance yields the zero
// value (no question, no objection, neutral sentiment).
type classification struct {
	HasQuestion       bool
	QuestionType      textkit.QuestionType
	OpenQuestion      bool
	ValueProp         bool
	ObjectionHandling bool
	HandlingSignals   []textkit.HandlingSignal
	ClosingAttempt    bool
	Sentiment         textkit.SentimentLabel
	Topics            []textkit.Topic
	Buzzwords         bool
	SmallTalk         bool
	Unprofessional    bool
	ROILanguage       bool
}

func classify(message string) classification {
	message = strings.TrimSpace(message)
	if message == "" {
		return classification{Sentiment: textkit.SentimentNeutral}
	}

	label, _, _ := textkit.Sentiment(message)
	return classification{
		HasQuestion:       textkit.HasQuestion(message),
		QuestionType:      textkit.ClassifyQuestion(message),
		OpenQuestion:      textkit.IsOpenQuestion(message),
		ValueProp:         textkit.IsValueProp(message),
		ObjectionHandling: textkit.IsObjectionHandling(message),
		HandlingSignals:   textkit.DetectHandlingSignals(message),
		ClosingAttempt:    textkit.IsClosingAttempt(message),
		Sentiment:         label,
		Topics:            textkit.Topics(message),
		Buzzwords:         textkit.HasBuzzwords(message),
		SmallTalk:         textkit.IsSmallTalk(message),
		Unprofessional:    textkit.IsUnprofessionalOpener(message),
		ROILanguage:       textkit.HasROILanguage(message),
	}
}

func (c classification) hasTopic(topic textkit.Topic) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// isDiscoveryQuestion reports a question that digs into the prospect's world
// rather than administrative chatter.
func (c classification) isDiscoveryQuestion() bool {
	switch c.QuestionType {
	case textkit.QuestionSituation, textkit.QuestionProblem, textkit.QuestionImplication, textkit.QuestionNeedPayoff:
		return true
	}
	return false
}

// isDeepProbe reports the kinds of questions that feel invasive before any
// rapport exists.
func (c classification) isDeepProbe() bool {
	return c.QuestionType == textkit.QuestionProblem || c.QuestionType == textkit.QuestionImplication
}
