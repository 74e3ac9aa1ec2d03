package match

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/clock"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/physics"
)

// SpawnCommand asks the world to create one hazard.
type SpawnCommand struct {
	Position physics.Vec3
	Wave     int           // 0-based wave number
	Index    int           // 0-based index within the wave
	At       time.Duration // Simulated time the spawn became due
}

// HazardSpawner creates hazards on behalf of the scheduler.
type HazardSpawner interface {
	SpawnHazard(cmd SpawnCommand)
}

// waveStep is the scheduler's current wait or action.
type waveStep int

const (
	stepStartDelay waveStep = iota // Before the first wave
	stepSpawn                      // Emit the next hazard
	stepSpawnDelay                 // Between hazards of a wave
	stepWaveDelay                  // After the last hazard's delay
	stepDone                       // Match ended, nothing more to emit
)

// Waves is the hazard spawn scheduler. It emits hazardsPerWave spawns per wave,
// spaced by the spawn delay, separated by the wave delay. Game over is only acted
// on at wave boundaries, so a wave in flight always completes.
//
// Waves is driven by Update from the frame loop and never blocks.
type Waves struct {
	cfg     config.Waves
	volume  config.SpawnVolume
	match   *Match
	spawner HazardSpawner
	rng     *rand.Rand
	log     *log.Logger

	step  waveStep
	wave  int
	index int
	timer clock.Timer // Elapsed in the current step
	clock clock.Clock
}

// NewWaves creates a scheduler waiting for its start delay.
// A nil match is allowed: the scheduler then never stops.
func NewWaves(cfg config.Config, m *Match, spawner HazardSpawner, rng *rand.Rand, logger *log.Logger) *Waves {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Waves{
		cfg:     cfg.Waves,
		volume:  cfg.Spawn,
		match:   m,
		spawner: spawner,
		rng:     rng,
		log:     logger,
		step:    stepStartDelay,
		timer:   clock.NewTimer(cfg.Waves.StartDelay),
	}
}

// Update advances the scheduler by dt, emitting every spawn that became due.
func (w *Waves) Update(dt time.Duration) {
	dt = w.clock.Advance(dt)
	if w.step == stepDone {
		return
	}
	w.timer.Add(dt)

	for {
		switch w.step {
		case stepStartDelay:
			if !w.timer.Consume() {
				return
			}
			w.log.Debug("waves started")
			w.step = stepSpawn

		case stepSpawn:
			w.emit()
			w.index++
			w.step = stepSpawnDelay
			w.timer.Retarget(w.cfg.SpawnDelay)

		case stepSpawnDelay:
			if !w.timer.Consume() {
				return
			}
			if w.index < w.cfg.HazardsPerWave {
				w.step = stepSpawn
				continue
			}
			w.step = stepWaveDelay
			w.timer.Retarget(w.cfg.WaveDelay)

		case stepWaveDelay:
			if !w.timer.Consume() {
				return
			}
			if w.match != nil && w.match.AwaitRestart() {
				w.log.Info("waves stopped", "waves", w.wave+1)
				w.step = stepDone
				return
			}
			w.wave++
			w.index = 0
			w.step = stepSpawn

		default:
			return
		}
	}
}

// emit samples a spawn position and hands it to the spawner.
func (w *Waves) emit() {
	cmd := SpawnCommand{
		Position: physics.Vec3{
			X: (w.rng.Float64()*2 - 1) * w.volume.HalfX,
			Y: w.volume.Height,
			Z: w.volume.Depth + (w.rng.Float64()*2-1)*w.volume.HalfZ,
		},
		Wave:  w.wave,
		Index: w.index,
		At:    w.clock.Now() - w.timer.Elapsed(),
	}
	if w.spawner != nil {
		w.spawner.SpawnHazard(cmd)
	}
}

// Wave returns the 0-based number of the wave in progress.
func (w *Waves) Wave() int {
	return w.wave
}

// Done reports whether the scheduler has stopped for good.
func (w *Waves) Done() bool {
	return w.step == stepDone
}
