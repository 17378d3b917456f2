// Package speech renders short guidance phrases audibly.
//
// Speakers are fire-and-forget: Announce never returns an error, failures
// are logged and swallowed so a broken audio path cannot abort the guidance
// loop. Backends include the local `say`/`espeak` command and an ElevenLabs
// HTTP synthesizer; Chain tries them in order.
//
// Example usage:
//
//	speaker := speech.NewChain(
//	    speech.NewElevenLabs(speech.WithAPIKey(key), speech.WithVoice(voice)),
//	    speech.NewCommand(),
//	)
//	speaker.Announce("move left a bit")
package speech

// Speaker renders text audibly. Implementations must never block the caller
// on failure and must never propagate errors.
type Speaker interface {
	Announce(text string)
}

// Synthesizer converts text to playable audio. Chain uses this lower-level
// contract to distinguish a failed backend from a silent one.
type Synthesizer interface {
	// Speak renders the text and returns only after playback has been
	// handed off (or failed).
	Speak(text string) error
}
