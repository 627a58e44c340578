package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// CreateWaveSound is a rising two-note horn
func CreateWaveSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(phrase(rate,
		Note{Freq: 392.00, Length: 120 * time.Millisecond, Shape: ShapeSquare}, // G4
		Note{Freq: 523.25, Length: 200 * time.Millisecond, Shape: ShapeSquare}, // C5
	), cfg.volume(CueWave))
}

// CreateKillSound is a short sine blip
func CreateKillSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := 60 * time.Millisecond
	sine, err := generators.SineTone(rate, 880)
	if err != nil {
		// Frequency above Nyquist for very low sample rates
		return newVolume(phrase(rate, Note{Freq: 880, Length: d}), cfg.volume(CueKill))
	}
	return newVolume(newFade(sine, d, rate), cfg.volume(CueKill))
}

// CreateReachedSound is a sagging saw buzz trailing into noise
func CreateReachedSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(beep.Seq(
		phrase(rate, Note{Freq: 90, To: 60, Length: 200 * time.Millisecond, Shape: ShapeSaw}),
		newVolume(phrase(rate, Note{Length: 80 * time.Millisecond, Shape: ShapeNoise}), 0.4),
	), cfg.volume(CueReached))
}

// CreateVictorySound is a major arpeggio
func CreateVictorySound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(phrase(rate,
		Note{Freq: 523.25, Length: 120 * time.Millisecond}, // C5
		Note{Freq: 659.25, Length: 120 * time.Millisecond}, // E5
		Note{Freq: 783.99, Length: 120 * time.Millisecond}, // G5
		Note{Freq: 1046.5, Length: 300 * time.Millisecond}, // C6
	), cfg.volume(CueVictory))
}

// CreateDefeatSound is a falling saw line ending in a downward slide
func CreateDefeatSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(phrase(rate,
		Note{Freq: 392.00, Length: 200 * time.Millisecond, Shape: ShapeSaw},          // G4
		Note{Freq: 311.13, Length: 200 * time.Millisecond, Shape: ShapeSaw},          // Eb4
		Note{Freq: 196.00, To: 147, Length: 400 * time.Millisecond, Shape: ShapeSaw}, // G3 to D3
	), cfg.volume(CueDefeat))
}

// GetCueSound returns the streamer for c, nil for unknown cues
func GetCueSound(c Cue, cfg *AudioConfig) beep.Streamer {
	switch c {
	case CueWave:
		return CreateWaveSound(cfg)
	case CueKill:
		return CreateKillSound(cfg)
	case CueReached:
		return CreateReachedSound(cfg)
	case CueVictory:
		return CreateVictorySound(cfg)
	case CueDefeat:
		return CreateDefeatSound(cfg)
	default:
		return nil
	}
}
