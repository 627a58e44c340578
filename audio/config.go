package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64
	CueVolumes   map[Cue]float64
}

// DefaultAudioConfig returns audio enabled at moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueWave:    0.8,
			CueKill:    0.4,
			CueReached: 0.9,
			CueVictory: 1.0,
			CueDefeat:  1.0,
		},
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("LANE_SIEGE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("LANE_SIEGE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Per-cue volumes as JSON, e.g. {"kill":0.2}
	if cueVols := os.Getenv("LANE_SIEGE_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for c := range cueCount {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = v
				}
			}
		}
	}

	return cfg
}

// volume returns the effective gain for c
func (cfg *AudioConfig) volume(c Cue) float64 {
	v, ok := cfg.CueVolumes[c]
	if !ok {
		v = 1
	}
	return v * cfg.MasterVolume
}
