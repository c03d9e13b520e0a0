package textkit

import "testing"

func TestSentiment(t *testing.T) {
	tests := []struct {
		message string
		want    SentimentLabel
	}{
		{"That sounds great, I really appreciate the detail", SentimentPositive},
		{"This is a waste of my time, I'm not interested", SentimentNegative},
		{"We have 40 drivers on staff", SentimentNeutral},
		{"", SentimentNeutral},
		{"I love it but it's too expensive", SentimentNeutral}, // one positive, one negative
	}
	for _, tt := range tests {
		got, _, _ := Sentiment(tt.message)
		if got != tt.want {
			t.Errorf("Sentiment(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

func TestSentimentCounts(t *testing.T) {
	_, pos, neg := Sentiment("great, excellent, but terrible")
	if pos != 2 {
		t.Errorf("pos = %d, want 2", pos)
	}
	if neg != 1 {
		t.Errorf("neg = %d, want 1", neg)
	}
}

func TestTopics(t *testing.T) {
	topics := Topics("What's your budget and timeline, and who makes the decision?")
	want := []Topic{TopicBudget, TopicTimeline, TopicDecisionProcess}
	if len(topics) != len(want) {
		t.Fatalf("Topics = %v, want %v", topics, want)
	}
	for i, topic := range want {
		if topics[i] != topic {
			t.Errorf("topics[%d] = %s, want %s", i, topics[i], topic)
		}
	}
}

func TestHasTopic(t *testing.T) {
	if !HasTopic("Our biggest pain is manual planning", TopicPainPoints) {
		t.Error("expected pain-points topic")
	}
	if HasTopic("Nice to meet you", TopicBudget) {
		t.Error("did not expect budget topic")
	}
}

func TestCountFillerWords(t *testing.T) {
	if got := CountFillerWords("Um, so basically we, you know, kind of help teams"); got < 3 {
		t.Errorf("expected at least 3 fillers, got %d", got)
	}
	if got := CountFillerWords("We help dispatch teams plan faster"); got != 0 {
		t.Errorf("expected 0 fillers, got %d", got)
	}
}

func TestCountHedges(t *testing.T) {
	if got := CountHedges("Maybe we could possibly help, I think"); got != 3 {
		t.Errorf("expected 3 hedges, got %d", got)
	}
}

func TestDepthDetectors(t *testing.T) {
	if !HasBusinessImpactLanguage("How does this hit your margin and retention?") {
		t.Error("expected business impact language")
	}
	if !HasPainExplorationLanguage("What's the biggest challenge with your current setup?") {
		t.Error("expected pain exploration language")
	}
	if !HasVisionBuildingLanguage("Imagine a world where dispatch runs itself") {
		t.Error("expected vision building language")
	}
	if HasVisionBuildingLanguage("We have 40 trucks") {
		t.Error("did not expect vision language")
	}
}
