package simulation

import (
	"fmt"
	"strings"

	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
)

// CompileDirective composes the behavioral instruction sent to the text
// generator from the persona, call type, difficulty, objection menu, and
// personality modifier blocks plus fixed conversational rules. Pure string
// composition: identical inputs always produce identical output.
func CompileDirective(sc *scenario.Context, state State) string {
	var b strings.Builder

	b.WriteString(personaBlock(sc))
	b.WriteString("\n\n")
	b.WriteString(callTypeBlock(sc))
	b.WriteString("\n\n")
	b.WriteString(difficultyBlock(sc))
	b.WriteString("\n\n")
	b.WriteString(objectionMenuBlock(sc, state))
	b.WriteString("\n\n")
	b.WriteString(personalityBlock(sc))
	b.WriteString("\n\n")
	b.WriteString(conversationRules(sc, state))

	return b.String()
}

// CompileHangupDirective produces the terminal instruction after a hangup
// trigger fires: one curt exit line, then nothing.
func CompileHangupDirective(sc *scenario.Context, state State) string {
	title := sc.Persona.DisplayTitle(sc.Definition)
	return fmt.Sprintf(
		"You are %s, %s at %s. You have decided to end this call (%s). Deliver one short, believable exit line — annoyed but professional — and end the conversation. Do not respond to anything further.",
		sc.Persona.Name, title, sc.Business.CompanyName, state.HangupReason,
	)
}

func personaBlock(sc *scenario.Context) string {
	def := sc.Definition
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s at %s (%s, %s).\n", sc.Persona.Name, sc.Persona.DisplayTitle(def), sc.Business.CompanyName, sc.Business.Industry, sc.Business.CompanySize)
	fmt.Fprintf(&b, "Your responsibilities: %s.\n", strings.Join(def.Responsibilities, "; "))
	fmt.Fprintf(&b, "What you care about: %s.\n", strings.Join(def.Priorities, "; "))

	commStyle := def.CommStyle
	if strings.TrimSpace(sc.Persona.CommStyle) != "" {
		commStyle = sc.Persona.CommStyle
	}
	fmt.Fprintf(&b, "Communication style: %s.\n", commStyle)
	fmt.Fprintf(&b, "Decision authority: %s. Budget authority: %s.\n", def.DecisionAuthority, def.BudgetAuthority)
	fmt.Fprintf(&b, "Information sharing: %s.", def.InfoSharing)

	if len(sc.HiddenNeeds) > 0 {
		fmt.Fprintf(&b, "\nYour real, unstated problems (reveal only under good discovery questions): %s.", strings.Join(sc.HiddenNeeds, "; "))
	}
	return b.String()
}

func callTypeBlock(sc *scenario.Context) string {
	ct := sc.CallType
	return fmt.Sprintf(
		"Call setup: %s. %s The rep is selling %s (%s). You are not meant to make their job easy; they must earn every step toward: %s.",
		ct.Label, ct.OpeningContext, sc.Product.Name, sc.Product.Category, ct.Objective,
	)
}

func difficultyBlock(sc *scenario.Context) string {
	mod := sc.Difficulty
	var b strings.Builder
	fmt.Fprintf(&b, "Difficulty: %s (level %d of 5).\n", mod.Label, mod.Level)
	fmt.Fprintf(&b, "Cooperation: answer at %.0f%% of your natural openness. Volunteer roughly %.0f%% of what you would at your friendliest.\n", mod.Cooperation*100, mod.InfoSharing*100)
	fmt.Fprintf(&b, "Raise objections on about %.0f%% of plausible openings.", mod.ObjectionFrequency*100)
	if mod.HangupEnabled {
		b.WriteString("\nYou have a short fuse: lazy or generic selling makes you end the call.")
	}
	return b.String()
}

func objectionMenuBlock(sc *scenario.Context, state State) string {
	var b strings.Builder
	b.WriteString("Objections available to you (use naturally, never as a list):")
	for _, objection := range sc.Objections {
		fmt.Fprintf(&b, "\n- %s", objection)
	}
	if len(state.ObjectionsSurfaced) > 0 {
		fmt.Fprintf(&b, "\nAlready raised this call (do not repeat verbatim): %s.", strings.Join(state.ObjectionsSurfaced, ", "))
	}
	return b.String()
}

func personalityBlock(sc *scenario.Context) string {
	var b strings.Builder
	b.WriteString("Personality modifiers:")
	if len(sc.Persona.Traits) > 0 {
		fmt.Fprintf(&b, "\n- Traits: %s.", strings.Join(sc.Persona.Traits, ", "))
	}
	objStyle := "push back in the manner typical for your role"
	if strings.TrimSpace(sc.Persona.ObjectionStyle) != "" {
		objStyle = sc.Persona.ObjectionStyle
	}
	fmt.Fprintf(&b, "\n- Objection style: %s.", objStyle)

	switch sc.Persona.EffectiveArchetype() {
	case persona.ArchetypeHostileCTO:
		b.WriteString("\n- You are openly allergic to marketing buzzwords and to small talk. Technical substance or nothing.")
	case persona.ArchetypeSkepticalCFO:
		b.WriteString("\n- Everything is a number to you. Claims without figures are noise.")
	case persona.ArchetypeBusyExecutive:
		b.WriteString("\n- You check the clock constantly. Long-winded answers lose you.")
	case persona.ArchetypeFriendlyManager:
		b.WriteString("\n- You are warm and chatty, but warmth is not agreement.")
	}
	return b.String()
}

func conversationRules(sc *scenario.Context, state State) string {
	var b strings.Builder
	b.WriteString("Rules:\n")
	b.WriteString("1. Stay in character for the entire reply. Never mention being an AI or a simulation.\n")
	b.WriteString("2. Reply as one conversational turn, 1-3 sentences, spoken register.\n")
	b.WriteString("3. Never coach the rep or evaluate their technique.\n")
	b.WriteString("4. Do not invent facts that contradict your company context.\n")
	fmt.Fprintf(&b, "5. Current call phase: %s. Behave accordingly.", state.Phase)
	if state.PendingObjection != "" {
		fmt.Fprintf(&b, "\n6. You just raised a %s objection the rep has not addressed; you are waiting to see whether they deal with it.", state.PendingObjection)
	}
	return b.String()
}
