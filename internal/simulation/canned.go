package simulation

import "github.com/pitchlab/salestrainer/internal/persona"

// cannedReplies keep a session alive when the text generator fails or returns
// nothing. Keyed by role level so the tone stays plausible.
var cannedReplies = map[persona.RoleLevel]string{
	persona.RoleJunior:   "Sorry, say that again? I got pulled into something for a second.",
	persona.RoleManager:  "Hang on, I missed that — can you run that by me once more?",
	persona.RoleDirector: "I didn't catch that. Give me the short version.",
	persona.RoleVP:       "You cut out. What's the one thing you want me to take from this?",
	persona.RoleCLevel:   "Lost you for a moment. Bottom-line it for me.",
}

// CannedReply returns the fallback line for a role level, with a safe default
// for anything unmapped.
func CannedReply(level persona.RoleLevel) string {
	if reply, ok := cannedReplies[level]; ok {
		return reply
	}
	return "Sorry, I missed that — could you repeat it?"
}
