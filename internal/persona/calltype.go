package persona

import (
	"errors"
	"fmt"
)

// CallType is the scenario framing. It sets the ideal talk-ratio band and the
// scoring weights for the five metrics.
type CallType string

const (
	CallDiscoveryOutbound CallType = "discovery-outbound"
	CallInboundInquiry    CallType = "inbound-inquiry"
	CallObjectionDrill    CallType = "objection-drill"
	CallElevatorPitch     CallType = "elevator-pitch"
)

// ErrUnknownCallType is returned when a session or scoring run references a
// call type with no configuration.
var ErrUnknownCallType = errors.New("persona: unknown call type")

// MetricWeights are the per-call-type weights applied to the five scoring
// metrics. They must sum to 1.0.
type MetricWeights struct {
	TalkRatio         float64
	Discovery         float64
	ObjectionHandling float64
	Confidence        float64
	CallToAction      float64
}

// Sum returns the total weight, used to sanity-check tables.
func (w MetricWeights) Sum() float64 {
	return w.TalkRatio + w.Discovery + w.ObjectionHandling + w.Confidence + w.CallToAction
}

// TalkRatioBand is the ideal rep share of turns, in percent.
type TalkRatioBand struct {
	Low  float64
	High float64
}

// CallTypeConfig is the static per-call-type table entry.
type CallTypeConfig struct {
	Type            CallType
	Label           string
	Objective       string
	IdealTalkRatio  TalkRatioBand
	Weights         MetricWeights
	SuccessCriteria []string
	OpeningContext  string // how the prospect entered the call
}

// CallTypeConfig looks up the configuration for a call type.
func (r *Registry) CallTypeConfig(ct CallType) (CallTypeConfig, error) {
	cfg, ok := r.callTypes[ct]
	if !ok {
		return CallTypeConfig{}, fmt.Errorf("%w: %q", ErrUnknownCallType, ct)
	}
	return cfg, nil
}

// CallTypes returns all configured call types, for listings.
func (r *Registry) CallTypes() []CallTypeConfig {
	out := make([]CallTypeConfig, 0, len(r.callTypes))
	for _, cfg := range r.callTypes {
		out = append(out, cfg)
	}
	return out
}

func defaultCallTypes() map[CallType]CallTypeConfig {
	return map[CallType]CallTypeConfig{
		CallDiscoveryOutbound: {
			Type:           CallDiscoveryOutbound,
			Label:          "Cold Outbound Discovery",
			Objective:      "earn a second meeting by uncovering real pain",
			IdealTalkRatio: TalkRatioBand{Low: 30, High: 40},
			Weights: MetricWeights{
				TalkRatio:         0.20,
				Discovery:         0.35,
				ObjectionHandling: 0.15,
				Confidence:        0.15,
				CallToAction:      0.15,
			},
			SuccessCriteria: []string{
				"at least two pain points surfaced",
				"budget or timeline discussed",
				"concrete next step agreed",
			},
			OpeningContext: "The prospect did not expect this call and has no prior relationship with the rep.",
		},
		CallInboundInquiry: {
			Type:           CallInboundInquiry,
			Label:          "Inbound Inquiry",
			Objective:      "qualify the inbound interest and route it to a demo",
			IdealTalkRatio: TalkRatioBand{Low: 40, High: 55},
			Weights: MetricWeights{
				TalkRatio:         0.15,
				Discovery:         0.25,
				ObjectionHandling: 0.20,
				Confidence:        0.20,
				CallToAction:      0.20,
			},
			SuccessCriteria: []string{
				"reason for the inquiry understood",
				"decision process identified",
				"demo or follow-up scheduled",
			},
			OpeningContext: "The prospect requested this call after engaging with marketing material.",
		},
		CallObjectionDrill: {
			Type:           CallObjectionDrill,
			Label:          "Objection Handling Drill",
			Objective:      "keep the conversation alive through sustained pushback",
			IdealTalkRatio: TalkRatioBand{Low: 40, High: 60},
			Weights: MetricWeights{
				TalkRatio:         0.10,
				Discovery:         0.10,
				ObjectionHandling: 0.45,
				Confidence:        0.20,
				CallToAction:      0.15,
			},
			SuccessCriteria: []string{
				"every objection acknowledged before being answered",
				"at least one objection converted into a discovery question",
			},
			OpeningContext: "The prospect is mid-evaluation and arrives with specific concerns to raise.",
		},
		CallElevatorPitch: {
			Type:           CallElevatorPitch,
			Label:          "Elevator Pitch",
			Objective:      "earn thirty more seconds, then a meeting",
			IdealTalkRatio: TalkRatioBand{Low: 60, High: 75},
			Weights: MetricWeights{
				TalkRatio:         0.15,
				Discovery:         0.10,
				ObjectionHandling: 0.15,
				Confidence:        0.30,
				CallToAction:      0.30,
			},
			SuccessCriteria: []string{
				"value stated in the first two sentences",
				"clear, specific ask made",
			},
			OpeningContext: "The rep has caught the prospect briefly between meetings.",
		},
	}
}
