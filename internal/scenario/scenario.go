// Package scenario composes the read-only session context: who the prospect
// is, what their company looks like, and what the rep is selling.
package scenario

import (
	"fmt"
	"strings"

	"github.com/pitchlab/salestrainer/internal/persona"
)

// BusinessContext holds the operator-supplied facts about the prospect's
// company. Derived once per session and held read-only.
type BusinessContext struct {
	CompanyName       string   `json:"company_name"`
	Industry          string   `json:"industry"`
	CompanySize       string   `json:"company_size,omitempty"`
	Challenges        []string `json:"challenges,omitempty"`
	ExistingSolutions []string `json:"existing_solutions,omitempty"`
	BudgetHint        string   `json:"budget_hint,omitempty"`
	TimelineHint      string   `json:"timeline_hint,omitempty"`
}

// ProductContext describes what the rep is selling.
type ProductContext struct {
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	ValueProps       []string `json:"value_props,omitempty"`
	Features         []string `json:"features,omitempty"`
	CompetitiveEdges []string `json:"competitive_edges,omitempty"`
}

// Context is the full immutable composition created once per simulation.
type Context struct {
	Persona    persona.Config
	Definition persona.Definition
	Business   BusinessContext
	Product    ProductContext
	CallType   persona.CallTypeConfig
	Difficulty persona.DifficultyModifier

	// Derived at creation from the static tables plus scenario facts.
	Objections     []string
	HiddenNeeds    []string
	SuccessMetrics []string
}

// New validates the persona/call-type/difficulty tuple against the registry
// and assembles the session context. Unknown table references are fatal;
// simulations never start with defaulted configuration.
func New(reg *persona.Registry, cfg persona.Config, biz BusinessContext, product ProductContext, callType persona.CallType, difficulty persona.DifficultyLevel) (*Context, error) {
	if err := reg.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	def, err := reg.Definition(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	ctCfg, err := reg.CallTypeConfig(callType)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	mod, err := reg.Difficulty(difficulty)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	sc := &Context{
		Persona:    cfg,
		Definition: def,
		Business:   biz,
		Product:    product,
		CallType:   ctCfg,
		Difficulty: mod,
	}
	sc.Objections = deriveObjections(def, biz)
	sc.HiddenNeeds = deriveHiddenNeeds(biz)
	sc.SuccessMetrics = append([]string(nil), ctCfg.SuccessCriteria...)
	return sc, nil
}

// deriveObjections merges role-level objections with challenge-specific ones.
// The result feeds the directive's objection menu.
func deriveObjections(def persona.Definition, biz BusinessContext) []string {
	objections := append([]string(nil), def.CommonObjections...)
	for _, existing := range biz.ExistingSolutions {
		if strings.TrimSpace(existing) == "" {
			continue
		}
		objections = append(objections, fmt.Sprintf("We already use %s, why would we switch?", existing))
	}
	if strings.TrimSpace(biz.BudgetHint) != "" {
		objections = append(objections, "Our budget situation makes any new spend hard right now")
	}
	return objections
}

// deriveHiddenNeeds turns stated challenges into needs the rep must uncover.
// The prospect will not volunteer these; good discovery questions surface them.
func deriveHiddenNeeds(biz BusinessContext) []string {
	needs := make([]string, 0, len(biz.Challenges))
	for _, challenge := range biz.Challenges {
		challenge = strings.TrimSpace(challenge)
		if challenge == "" {
			continue
		}
		needs = append(needs, challenge)
	}
	return needs
}
