// Package config turns the CLI hosts' -reverb flag into a live
// reverb.Effect.
package config

import (
	"fmt"

	"github.com/go-chiptune/piyopiyo/internal/reverb"
)

const reverbScratchSize = 10 * 1024

// ReverbFromFlag builds the reverb.Effect named by flag, sized for
// sampleRate. Recognized names: "none", "light", "medium", "silly".
func ReverbFromFlag(flag string, sampleRate int) (reverb.Effect, error) {
	decay := float32(0.2)
	delayMs := 150

	switch flag {
	case "none":
		decay = 0
	case "light":
	case "medium":
		decay = 0.3
		delayMs = 250
	case "silly":
		decay = 0.5
		delayMs = 2500
	default:
		return nil, fmt.Errorf("piyopiyo: unrecognized reverb setting %q", flag)
	}

	if decay == 0 {
		return reverb.NewPassThrough(reverbScratchSize), nil
	}
	return reverb.NewComb(reverbScratchSize, decay, delayMs, sampleRate), nil
}
