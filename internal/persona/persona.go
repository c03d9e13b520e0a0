// Package persona holds the static tables that shape a simulated prospect:
// role levels, archetypes, call types, and difficulty tiers. Tables are built
// once at startup and passed by reference into the engine; they are never
// mutated afterwards.
package persona

import (
	"errors"
	"fmt"
	"strings"
)

// RoleLevel is the seniority tier of the simulated prospect. Levels are
// ordered: junior < manager < director < vp < c-level.
type RoleLevel string

const (
	RoleJunior   RoleLevel = "junior"
	RoleManager  RoleLevel = "manager"
	RoleDirector RoleLevel = "director"
	RoleVP       RoleLevel = "vp"
	RoleCLevel   RoleLevel = "c-level"
)

var roleOrder = map[RoleLevel]int{
	RoleJunior:   0,
	RoleManager:  1,
	RoleDirector: 2,
	RoleVP:       3,
	RoleCLevel:   4,
}

// Rank returns the ordinal position of the role level, junior being 0.
func (r RoleLevel) Rank() int {
	return roleOrder[r]
}

// Valid reports whether the role level is one of the known tiers.
func (r RoleLevel) Valid() bool {
	_, ok := roleOrder[r]
	return ok
}

// Archetype identifies a behavioral template for hangup triggers and
// personality modifiers. Trigger matching keys off this enum only, never off
// substrings of the free-text persona name.
type Archetype string

const (
	ArchetypeGeneric         Archetype = "generic"
	ArchetypeHostileCTO      Archetype = "hostile-cto"
	ArchetypeSkepticalCFO    Archetype = "skeptical-cfo"
	ArchetypeBusyExecutive   Archetype = "busy-executive"
	ArchetypeFriendlyManager Archetype = "friendly-manager"
)

var knownArchetypes = map[Archetype]bool{
	ArchetypeGeneric:         true,
	ArchetypeHostileCTO:      true,
	ArchetypeSkepticalCFO:    true,
	ArchetypeBusyExecutive:   true,
	ArchetypeFriendlyManager: true,
}

// Valid reports whether the archetype is known.
func (a Archetype) Valid() bool {
	return knownArchetypes[a]
}

// Config describes one simulated prospect. Immutable once a simulation starts.
type Config struct {
	Name           string    `json:"name"`
	Level          RoleLevel `json:"level"`
	Archetype      Archetype `json:"archetype"`
	Title          string    `json:"title,omitempty"`
	Department     string    `json:"department,omitempty"`
	Traits         []string  `json:"traits,omitempty"`
	CommStyle      string    `json:"comm_style,omitempty"`      // overrides the definition's communication style when set
	ObjectionStyle string    `json:"objection_style,omitempty"` // overrides the definition's objection posture when set
}

// Definition is the static per-role-level behavioral data. One definition per
// role level; looked up, never mutated.
type Definition struct {
	Level             RoleLevel
	Titles            []string
	Responsibilities  []string
	Priorities        []string
	CommStyle         string
	DecisionAuthority string
	CommonObjections  []string
	InfoSharing       string
	BudgetAuthority   string
	TypicalConcerns   []string
}

// ErrUnknownRoleLevel is returned when a session references a role level that
// has no definition. Session creation must fail rather than default.
var ErrUnknownRoleLevel = errors.New("persona: unknown role level")

// ErrUnknownArchetype is returned for archetypes outside the known set.
var ErrUnknownArchetype = errors.New("persona: unknown archetype")

// Registry is the immutable lookup surface handed to the engine. Substituting
// a registry in tests swaps the entire behavioral table set.
type Registry struct {
	definitions  map[RoleLevel]Definition
	callTypes    map[CallType]CallTypeConfig
	difficulties map[DifficultyLevel]DifficultyModifier
}

// NewRegistry builds the default static tables.
func NewRegistry() *Registry {
	return &Registry{
		definitions:  defaultDefinitions(),
		callTypes:    defaultCallTypes(),
		difficulties: defaultDifficulties(),
	}
}

// Definition looks up the static data for a role level.
func (r *Registry) Definition(level RoleLevel) (Definition, error) {
	def, ok := r.definitions[level]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownRoleLevel, level)
	}
	return def, nil
}

// ValidateConfig checks that a persona config references known tables.
func (r *Registry) ValidateConfig(cfg Config) error {
	if _, ok := r.definitions[cfg.Level]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoleLevel, cfg.Level)
	}
	if cfg.Archetype != "" && !cfg.Archetype.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownArchetype, cfg.Archetype)
	}
	return nil
}

// EffectiveArchetype returns the configured archetype, defaulting to generic.
func (c Config) EffectiveArchetype() Archetype {
	if c.Archetype == "" {
		return ArchetypeGeneric
	}
	return c.Archetype
}

// DisplayTitle returns the configured title or the first canonical title for
// the level.
func (c Config) DisplayTitle(def Definition) string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	if len(def.Titles) > 0 {
		return def.Titles[0]
	}
	return string(c.Level)
}

func defaultDefinitions() map[RoleLevel]Definition {
	return map[RoleLevel]Definition{
		RoleJunior: {
			Level:             RoleJunior,
			Titles:            []string{"Analyst", "Coordinator", "Specialist"},
			Responsibilities:  []string{"day-to-day execution", "reporting", "supporting senior staff"},
			Priorities:        []string{"making their job easier", "looking good to their manager"},
			CommStyle:         "casual and open, happy to chat",
			DecisionAuthority: "no purchasing authority; can champion internally",
			CommonObjections: []string{
				"I'd have to run this by my manager",
				"I don't think we have budget for this",
				"We already have something like this",
			},
			InfoSharing:     "shares freely, including internal details a senior person would hold back",
			BudgetAuthority: "none",
			TypicalConcerns: []string{"learning curve", "extra work on their plate"},
		},
		RoleManager: {
			Level:             RoleManager,
			Titles:            []string{"Operations Manager", "Team Lead", "Department Manager"},
			Responsibilities:  []string{"team output", "process improvement", "budget stewardship for their team"},
			Priorities:        []string{"team productivity", "hitting quarterly targets"},
			CommStyle:         "friendly but time-aware, wants practical details",
			DecisionAuthority: "can approve small purchases; larger spend needs director sign-off",
			CommonObjections: []string{
				"How is this different from what we use today?",
				"My team doesn't have bandwidth for a rollout",
				"I'd need to see this work for a team our size",
			},
			InfoSharing:     "shares operational pain freely, guards budget numbers",
			BudgetAuthority: "up to ~$10k annually",
			TypicalConcerns: []string{"implementation effort", "team adoption", "support quality"},
		},
		RoleDirector: {
			Level:             RoleDirector,
			Titles:            []string{"Director of Operations", "Senior Director", "Head of Department"},
			Responsibilities:  []string{"departmental strategy", "cross-team initiatives", "vendor selection"},
			Priorities:        []string{"department KPIs", "headcount efficiency", "risk management"},
			CommStyle:         "professional and measured, expects the rep to have done homework",
			DecisionAuthority: "owns departmental vendor decisions within budget",
			CommonObjections: []string{
				"We evaluated tools like this last year and passed",
				"What does implementation actually look like?",
				"I need to see ROI before I bring this to my VP",
			},
			InfoSharing:     "answers direct questions, volunteers little",
			BudgetAuthority: "up to ~$100k annually",
			TypicalConcerns: []string{"integration risk", "vendor stability", "measurable ROI"},
		},
		RoleVP: {
			Level:             RoleVP,
			Titles:            []string{"VP of Operations", "VP of Sales", "VP of Engineering"},
			Responsibilities:  []string{"org-level strategy", "exec reporting", "major vendor relationships"},
			Priorities:        []string{"strategic alignment", "competitive position", "board-visible metrics"},
			CommStyle:         "direct and brief, intolerant of rambling",
			DecisionAuthority: "signs off on significant spend; delegates evaluation",
			CommonObjections: []string{
				"This feels like a point solution, we think in platforms",
				"Why would I switch from our current vendor?",
				"Send me something my team can evaluate",
			},
			InfoSharing:     "guards strategy, shares only what advances their agenda",
			BudgetAuthority: "up to ~$500k annually",
			TypicalConcerns: []string{"strategic fit", "switching cost", "executive time"},
		},
		RoleCLevel: {
			Level:             RoleCLevel,
			Titles:            []string{"CEO", "CFO", "CTO", "COO"},
			Responsibilities:  []string{"company direction", "P&L ownership", "final authority on major spend"},
			Priorities:        []string{"revenue growth", "margin", "market position"},
			CommStyle:         "blunt, expects business impact in the first sentence",
			DecisionAuthority: "final authority, but delegates anything not strategic",
			CommonObjections: []string{
				"Why is this a CEO conversation and not a procurement one?",
				"What's the impact on revenue or cost, in numbers?",
				"We have bigger priorities this quarter",
			},
			InfoSharing:     "reveals almost nothing unprompted; trust must be earned",
			BudgetAuthority: "unconstrained within fiduciary duty",
			TypicalConcerns: []string{"opportunity cost", "time wasted", "strategic distraction"},
		},
	}
}
