package textkit

import "testing"

func TestExtractRevealedInfo(t *testing.T) {
	tests := []struct {
		name    string
		message string
		check   func(t *testing.T, info RevealedInfo)
	}{
		{
			name:    "budget figure",
			message: "We set aside $50k for tooling this year",
			check: func(t *testing.T, info RevealedInfo) {
				if info.Budget == "" {
					t.Error("expected budget")
				}
			},
		},
		{
			name:    "timeline",
			message: "We'd want something live by Q3 at the latest",
			check: func(t *testing.T, info RevealedInfo) {
				if info.Timeline == "" {
					t.Error("expected timeline")
				}
			},
		},
		{
			name:    "company size",
			message: "We run about 250 employees across three sites",
			check: func(t *testing.T, info RevealedInfo) {
				if info.CompanySize == "" {
					t.Error("expected company size")
				}
			},
		},
		{
			name:    "decision process",
			message: "Honestly my CFO signs off on anything over ten grand",
			check: func(t *testing.T, info RevealedInfo) {
				if info.DecisionProcess == "" {
					t.Error("expected decision process")
				}
			},
		},
		{
			name:    "nothing",
			message: "Sounds interesting, keep going",
			check: func(t *testing.T, info RevealedInfo) {
				if !info.Empty() {
					t.Errorf("expected empty info, got %+v", info)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ExtractRevealedInfo(tt.message))
		})
	}
}

func TestExtractRevealedInfoMultiple(t *testing.T) {
	info := ExtractRevealedInfo("We're 120 people, budget is around $200k, and we'd move next quarter")
	if info.CompanySize == "" || info.Budget == "" || info.Timeline == "" {
		t.Errorf("expected size+budget+timeline, got %+v", info)
	}
}
