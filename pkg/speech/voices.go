package speech

// Voices maps friendly preset names to ElevenLabs voice IDs.
// Use ResolveVoice to look up a voice by name or pass through raw IDs.
var Voices = map[string]string{
	"charlotte": "XB0fDUnXU5powFXDhCwa", // British female, warm
	"aria":      "9BWtsMINqrJLrRacOk9x", // American female, expressive
	"sarah":     "EXAVITQu4vr4xnSDxMaL", // American female, soft
	"rachel":    "21m00Tcm4TlvDq8ikWAM", // American female, calm
	"josh":      "TxGEqnHWrfWFTfGW9XjX", // American male, deep
	"adam":      "pNInz6obpgDQGcFmaJgB", // American male, deep
}

// DefaultVoice is the preset used when no voice is configured.
const DefaultVoice = "charlotte"

// ResolveVoice returns the voice ID for a preset name,
// or the input unchanged if it's already a voice ID.
func ResolveVoice(name string) string {
	if id, ok := Voices[name]; ok {
		return id
	}
	return name
}
