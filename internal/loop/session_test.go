package loop

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfighter/internal/input"
	"github.com/tomz197/starfighter/internal/loop/config"
	"github.com/tomz197/starfighter/internal/match"
	"github.com/tomz197/starfighter/internal/object"
	"github.com/tomz197/starfighter/internal/physics"
)

const tick = 20 * time.Millisecond

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Waves = config.Waves{
		HazardsPerWave: 2,
		StartDelay:     100 * time.Millisecond,
		SpawnDelay:     100 * time.Millisecond,
		WaveDelay:      200 * time.Millisecond,
	}
	return cfg
}

func newTestSession(t *testing.T, cfg config.Config) (*Session, *HUD) {
	t.Helper()
	hud := &HUD{}
	s := NewSession(cfg, SessionOptions{Display: hud, Rand: rand.New(rand.NewSource(1))})
	return s, hud
}

func tickN(t *testing.T, s *Session, n int, in input.Input) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Tick(tick, in); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

func TestSessionStartsPlaying(t *testing.T) {
	s, hud := newTestSession(t, testConfig())
	if s.Match().Phase() != match.PhasePlaying || s.Player() == nil {
		t.Fatal("new session should be playing with a player")
	}
	score, gameOver, restart := hud.Texts()
	if score != "Score: 0" || gameOver != "" || restart != "" {
		t.Fatalf("hud = %q %q %q", score, gameOver, restart)
	}
}

func TestSessionPlayerClampedToBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.Waves.StartDelay = time.Hour
	s, _ := newTestSession(t, cfg)

	tickN(t, s, 100, input.Input{Right: true})

	if x := s.Player().Position.X; x != cfg.Player.Boundary.XMax {
		t.Fatalf("player x = %v, want %v", x, cfg.Player.Boundary.XMax)
	}
}

func TestSessionSpawnsWaves(t *testing.T) {
	cfg := testConfig()
	s, _ := newTestSession(t, cfg)

	tickN(t, s, 5, input.Input{}) // 100ms
	if s.HazardCount() != 1 {
		t.Fatalf("hazards after start delay = %d, want 1", s.HazardCount())
	}
	tickN(t, s, 5, input.Input{}) // 200ms
	if s.HazardCount() != 2 {
		t.Fatalf("hazards after first wave = %d, want 2", s.HazardCount())
	}
}

func TestSessionFiresProjectiles(t *testing.T) {
	cfg := testConfig()
	cfg.Waves.StartDelay = time.Hour
	s, _ := newTestSession(t, cfg)

	tickN(t, s, 50, input.Input{Fire: true}) // 1s

	bolts := 0
	for _, obj := range s.Objects() {
		if _, ok := obj.(*object.Projectile); ok {
			bolts++
		}
	}
	if bolts != 2 {
		t.Fatalf("projectiles after 1s = %d, want 2", bolts)
	}
}

func TestSessionHazardHitsPlayer(t *testing.T) {
	cfg := testConfig()
	s, hud := newTestSession(t, cfg)

	s.world.SpawnHazard(match.SpawnCommand{Position: s.Player().Position})
	tickN(t, s, 2, input.Input{})

	m := s.Match()
	if m.Phase() != match.PhaseEnding {
		t.Fatalf("phase = %v, want ending", m.Phase())
	}
	if m.Score() != cfg.Hazard.ScoreValue {
		t.Fatalf("score = %d, want %d", m.Score(), cfg.Hazard.ScoreValue)
	}
	if s.Player() != nil {
		t.Fatal("destroyed player still referenced")
	}
	if _, gameOver, restart := hud.Texts(); gameOver != match.GameOverText || restart != "" {
		t.Fatalf("hud game over = %q restart = %q", gameOver, restart)
	}

	particles := 0
	for _, obj := range s.Objects() {
		if _, ok := obj.(*object.Particle); ok {
			particles++
		}
	}
	if particles == 0 {
		t.Fatal("no explosion particles spawned")
	}
}

func TestSessionProjectileScores(t *testing.T) {
	cfg := testConfig()
	cfg.Waves.StartDelay = time.Hour
	s, _ := newTestSession(t, cfg)

	tickN(t, s, 25, input.Input{Fire: true}) // first shot at 500ms
	s.world.SpawnHazard(match.SpawnCommand{Position: physics.Vec3{Z: 8}})
	tickN(t, s, 25, input.Input{})

	if s.Match().Score() != cfg.Hazard.ScoreValue {
		t.Fatalf("score = %d, want %d", s.Match().Score(), cfg.Hazard.ScoreValue)
	}
	if s.Match().Phase() != match.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Match().Phase())
	}
	if s.HazardCount() != 0 {
		t.Fatalf("hazards = %d, want 0", s.HazardCount())
	}
}

func TestSessionRestartCycle(t *testing.T) {
	cfg := testConfig()
	s, hud := newTestSession(t, cfg)

	s.world.SpawnHazard(match.SpawnCommand{Position: s.Player().Position})
	tickN(t, s, 2, input.Input{})
	first := s.Match()

	// Restart input is ignored until the wave in flight has finished.
	tickN(t, s, 1, input.Input{Restart: true})
	if s.Resets() != 0 {
		t.Fatal("restart accepted before the restart prompt")
	}

	for i := 0; i < 100 && first.Phase() != match.PhaseAwaitingRestart; i++ {
		tickN(t, s, 1, input.Input{})
	}
	if first.Phase() != match.PhaseAwaitingRestart {
		t.Fatalf("phase = %v, want awaiting restart", first.Phase())
	}
	if _, _, restart := hud.Texts(); restart != match.RestartText {
		t.Fatalf("restart text = %q", restart)
	}

	tickN(t, s, 1, input.Input{Restart: true})

	if s.Resets() != 1 || s.Match() == first {
		t.Fatal("session was not rebuilt")
	}
	if s.Match().Phase() != match.PhasePlaying || s.Match().Score() != 0 {
		t.Fatalf("new match phase=%v score=%d", s.Match().Phase(), s.Match().Score())
	}
	if s.Player() == nil || s.HazardCount() != 0 {
		t.Fatal("new match should start with a player and no hazards")
	}
	score, gameOver, restart := hud.Texts()
	if score != "Score: 0" || gameOver != "" || restart != "" {
		t.Fatalf("hud after restart = %q %q %q", score, gameOver, restart)
	}
}

func TestSessionRemovesExitedHazards(t *testing.T) {
	cfg := testConfig()
	cfg.Waves.StartDelay = time.Hour
	cfg.Hazard.Speed = 50
	s, _ := newTestSession(t, cfg)

	s.world.SpawnHazard(match.SpawnCommand{Position: physics.Vec3{X: 5, Z: 14}})
	tickN(t, s, 1, input.Input{})
	if s.HazardCount() != 1 {
		t.Fatalf("hazards = %d, want 1", s.HazardCount())
	}

	tickN(t, s, 40, input.Input{}) // travels 40 units toward -z
	if s.HazardCount() != 0 {
		t.Fatalf("hazards = %d after leaving the arena, want 0", s.HazardCount())
	}
	if s.Match().Score() != 0 {
		t.Fatal("leaving the arena must not score")
	}
}

func TestRunStopsWhenFrameReturnsFalse(t *testing.T) {
	frames := 0
	err := Run(context.Background(), time.Millisecond, func(time.Duration) (bool, error) {
		frames++
		return frames < 3, nil
	})
	if err != nil || frames != 3 {
		t.Fatalf("Run = %v after %d frames, want nil after 3", err, frames)
	}
}

func TestRunReturnsFrameError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), time.Millisecond, func(time.Duration) (bool, error) {
		return true, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want boom", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	err := Run(ctx, time.Millisecond, func(time.Duration) (bool, error) {
		frames++
		if frames == 2 {
			cancel()
		}
		return true, nil
	})
	if err != nil || frames != 2 {
		t.Fatalf("Run = %v after %d frames, want nil after 2", err, frames)
	}
}
