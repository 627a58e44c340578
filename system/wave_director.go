package system

import (
	"sync/atomic"

	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/event"
	"github.com/lixenwraith/lane-siege/parameter"
)

// WaveDirectorSystem starts timed waves while the match is Playing
// A wave starts once waveInterval of play time has passed since the previous one, at most one per tick;
// every entry of the new wave becomes a spawn request carrying its own count and delay
type WaveDirectorSystem struct {
	world *engine.World
	guard resourceGuard

	statWave     *atomic.Int64
	statRequests *atomic.Int64
}

func NewWaveDirectorSystem(world *engine.World) engine.System {
	return &WaveDirectorSystem{
		world:        world,
		guard:        newResourceGuard(world, "wave_director"),
		statWave:     world.Status.Ints.Get("wave.current"),
		statRequests: world.Status.Ints.Get("spawn.requests"),
	}
}

func (s *WaveDirectorSystem) Name() string  { return "wave_director" }
func (s *WaveDirectorSystem) Priority() int { return parameter.PriorityWaveDirector }

func (s *WaveDirectorSystem) Update() {
	state, ok := playing(&s.guard)
	if !ok {
		return
	}
	lvlRes, ok := require[*engine.LevelResource](&s.guard)
	if !ok || lvlRes.Level == nil {
		return
	}
	lvl := lvlRes.Level

	now := state.GetPlayTime()
	current, total, last := state.GetWaveProgress()
	if current >= total || now-last < lvl.WaveInterval {
		return
	}

	wave, started := state.StartWave(now)
	if !started {
		return
	}
	s.statWave.Store(int64(wave))

	entries := lvl.Waves.Entries(wave)
	s.world.Log.Info("wave started", "wave", wave, "total", total, "entries", len(entries), "at", now)
	s.world.Emit(event.EventWaveStarted, &event.WaveStartedPayload{
		Wave:       wave,
		TotalWaves: total,
		Entries:    len(entries),
	})

	for _, entry := range entries {
		s.statRequests.Add(1)
		s.world.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{
			Wave:      wave,
			ActorType: entry.ActorType,
			Count:     entry.Count,
			Delay:     entry.SpawnDelay,
			Lane:      -1,
		})
	}
}
