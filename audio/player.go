// Package audio turns match events into short synthesized cues played through beep
package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lane-siege/event"
)

// Output receives finished cue streamers
type Output interface {
	Play(s beep.Streamer)
}

// Player subscribes to match events and plays their cues
// Kill cues are limited to one per tick so mass kills do not stack
type Player struct {
	cfg *AudioConfig
	out Output
	log *slog.Logger

	muted        atomic.Bool
	lastKillTick int64

	played  atomic.Uint64
	skipped atomic.Uint64
}

// NewPlayer creates a player writing to out
func NewPlayer(cfg *AudioConfig, out Output, log *slog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p := &Player{cfg: cfg, out: out, log: log, lastKillTick: -1}
	p.muted.Store(!cfg.Enabled)
	return p
}

func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{event.EventWaveStarted, event.EventKill, event.EventReachedEnd, event.EventPhaseChanged}
}

func (p *Player) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventWaveStarted:
		p.Play(CueWave)
	case event.EventKill:
		if ev.Tick == p.lastKillTick {
			p.skipped.Add(1)
			return
		}
		p.lastKillTick = ev.Tick
		p.Play(CueKill)
	case event.EventReachedEnd:
		p.Play(CueReached)
	case event.EventPhaseChanged:
		if pc, ok := ev.Payload.(*event.PhaseChangedPayload); ok && pc.Terminal {
			if pc.To == "Victory" {
				p.Play(CueVictory)
			} else {
				p.Play(CueDefeat)
			}
		}
	}
}

// Play sends the cue to the output unless muted
func (p *Player) Play(c Cue) bool {
	if p.muted.Load() || p.out == nil {
		p.skipped.Add(1)
		return false
	}
	s := GetCueSound(c, p.cfg)
	if s == nil {
		return false
	}
	p.out.Play(s)
	p.played.Add(1)
	return true
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports whether cues are suppressed
func (p *Player) IsMuted() bool { return p.muted.Load() }

// GetStats returns played and skipped cue counts
func (p *Player) GetStats() (played, skipped uint64) {
	return p.played.Load(), p.skipped.Load()
}

// Speaker is an Output backed by the system audio device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates an uninitialized speaker output
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Init opens the audio device; callers treat failure as running silent
func (s *Speaker) Init(sampleRate int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes st into the running output, dropped before Init
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops all cues and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
