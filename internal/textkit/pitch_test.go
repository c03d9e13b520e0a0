package textkit

import "testing"

func TestIsValueProp(t *testing.T) {
	positives := []string{
		"Our platform cuts planning time in half",
		"We provide route optimization for mid-size fleets",
		"It's designed to reduce empty miles",
		"RouteIQ automates the whole dispatch board",
	}
	for _, msg := range positives {
		if !IsValueProp(msg) {
			t.Errorf("expected value prop: %q", msg)
		}
	}
	negatives := []string{
		"How's your day going?",
		"What tools do you use?",
		"",
	}
	for _, msg := range negatives {
		if IsValueProp(msg) {
			t.Errorf("did not expect value prop: %q", msg)
		}
	}
}

func TestIsClosingAttempt(t *testing.T) {
	positives := []string{
		"Can we schedule a follow-up call next week?",
		"I'd love to book a demo with your team",
		"What are the next steps on your side?",
		"Does Tuesday work for a deeper dive?",
		"I'll send over the proposal tonight",
	}
	for _, msg := range positives {
		if !IsClosingAttempt(msg) {
			t.Errorf("expected closing attempt: %q", msg)
		}
	}
	if IsClosingAttempt("What challenges are you seeing?") {
		t.Error("discovery question is not a closing attempt")
	}
}

func TestHasBuzzwords(t *testing.T) {
	if !HasBuzzwords("Our cutting-edge, best-in-class platform will revolutionize your workflow") {
		t.Error("expected buzzwords")
	}
	if HasBuzzwords("We help dispatch teams plan routes faster") {
		t.Error("plain language flagged as buzzwords")
	}
}

func TestIsSmallTalk(t *testing.T) {
	if !IsSmallTalk("How's the weather over there?") {
		t.Error("expected small talk")
	}
	if !IsSmallTalk("Did you catch the game last night?") {
		t.Error("expected small talk")
	}
	if IsSmallTalk("How do you handle peak season?") {
		t.Error("business question flagged as small talk")
	}
}

func TestIsUnprofessionalOpener(t *testing.T) {
	if !IsUnprofessionalOpener("Hey buddy, got a minute?") {
		t.Error("expected unprofessional opener")
	}
	if !IsUnprofessionalOpener("yo, quick question") {
		t.Error("expected unprofessional opener")
	}
	if IsUnprofessionalOpener("Hi Dana, this is Alex from RouteIQ") {
		t.Error("professional opener flagged")
	}
}

func TestHasROILanguage(t *testing.T) {
	positives := []string{
		"Teams typically see a 15% reduction in cost",
		"That's $40k a year back in your budget",
		"The ROI shows up within one quarter",
		"It drives revenue directly",
	}
	for _, msg := range positives {
		if !HasROILanguage(msg) {
			t.Errorf("expected ROI language: %q", msg)
		}
	}
	if HasROILanguage("We make dispatching easier") {
		t.Error("did not expect ROI language")
	}
}
