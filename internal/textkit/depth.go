package textkit

import "regexp"

var (
	businessImpactRE  = regexp.MustCompile(`(?i)\b(revenue|margin|cost[s]?|bottom line|profit|growth|market share|churn|retention|productivity|efficiency|headcount)\b`)
	painExplorationRE = regexp.MustCompile(`(?i)\b(pain|hurt|struggl|frustrat|biggest (challenge|problem)|keep(s|ing)? you up|worst part|hardest (part|thing)|what breaks)\b`)
	visionBuildingRE  = regexp.MustCompile(`(?i)\b(imagine|picture (this|a world)|what would it (look|mean)|ideal (state|world|outcome)|if you could|a year from now|where do you want)\b`)
)

// HasBusinessImpactLanguage reports discussion of measurable business outcomes.
func HasBusinessImpactLanguage(message string) bool {
	return businessImpactRE.MatchString(message)
}

// HasPainExplorationLanguage reports probing into the prospect's pain.
func HasPainExplorationLanguage(message string) bool {
	return painExplorationRE.MatchString(message)
}

// HasVisionBuildingLanguage reports future-state framing.
func HasVisionBuildingLanguage(message string) bool {
	return visionBuildingRE.MatchString(message)
}
