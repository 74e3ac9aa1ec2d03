package match

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfighter/internal/loop/config"
)

type recordingSpawner struct {
	cmds []SpawnCommand
}

func (s *recordingSpawner) SpawnHazard(cmd SpawnCommand) {
	s.cmds = append(s.cmds, cmd)
}

func testWavesConfig() config.Config {
	cfg := config.Default()
	cfg.Waves = config.Waves{
		HazardsPerWave: 3,
		StartDelay:     time.Second,
		SpawnDelay:     500 * time.Millisecond,
		WaveDelay:      2 * time.Second,
	}
	cfg.Spawn = config.SpawnVolume{HalfX: 6, HalfZ: 1, Height: 0.5, Depth: 16}
	return cfg
}

// run advances w in equal ticks until total time has passed.
func run(w *Waves, total, tick time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += tick {
		w.Update(tick)
	}
}

func TestWavesOneWaveSpacing(t *testing.T) {
	cfg := testWavesConfig()
	sp := &recordingSpawner{}
	w := NewWaves(cfg, New(nil, nil, nil), sp, rand.New(rand.NewSource(7)), nil)

	run(w, 4400*time.Millisecond, 100*time.Millisecond)

	if len(sp.cmds) != cfg.Waves.HazardsPerWave {
		t.Fatalf("spawned %d in first wave, want %d", len(sp.cmds), cfg.Waves.HazardsPerWave)
	}
	for i, cmd := range sp.cmds {
		want := cfg.Waves.StartDelay + time.Duration(i)*cfg.Waves.SpawnDelay
		if cmd.At != want || cmd.Wave != 0 || cmd.Index != i {
			t.Errorf("spawn %d = %+v, want at %v", i, cmd, want)
		}
		p := cmd.Position
		if p.X < -6 || p.X > 6 || p.Z < 15 || p.Z > 17 || p.Y != 0.5 {
			t.Errorf("spawn %d position %+v outside volume", i, p)
		}
	}
}

func TestWavesExactUnderIrregularDeltas(t *testing.T) {
	cfg := testWavesConfig()
	sp := &recordingSpawner{}
	w := NewWaves(cfg, nil, sp, rand.New(rand.NewSource(7)), nil)

	for _, dt := range []time.Duration{
		300 * time.Millisecond, 700 * time.Millisecond, 1200 * time.Millisecond,
		50 * time.Millisecond, 2 * time.Second, 250 * time.Millisecond,
	} {
		w.Update(dt)
	}

	want := []time.Duration{
		1000 * time.Millisecond, 1500 * time.Millisecond, 2000 * time.Millisecond, // wave 0
		4500 * time.Millisecond, // wave 1, index 0
	}
	if len(sp.cmds) != len(want) {
		t.Fatalf("spawned %d, want %d: %+v", len(sp.cmds), len(want), sp.cmds)
	}
	for i, cmd := range sp.cmds {
		if cmd.At != want[i] {
			t.Errorf("spawn %d at %v, want %v", i, cmd.At, want[i])
		}
	}
	if sp.cmds[3].Wave != 1 || sp.cmds[3].Index != 0 {
		t.Errorf("fourth spawn = %+v, want wave 1 index 0", sp.cmds[3])
	}
}

func TestWavesContinueWhilePlaying(t *testing.T) {
	cfg := testWavesConfig()
	sp := &recordingSpawner{}
	m := New(nil, nil, nil)
	w := NewWaves(cfg, m, sp, rand.New(rand.NewSource(1)), nil)

	run(w, 8*time.Second, 20*time.Millisecond)

	// Waves start at 1s, 4.5s and 8s.
	if len(sp.cmds) != 7 {
		t.Fatalf("spawned %d, want 7", len(sp.cmds))
	}
	if w.Wave() != 2 || w.Done() {
		t.Fatalf("wave = %d done = %v", w.Wave(), w.Done())
	}
	if m.Phase() != PhasePlaying {
		t.Fatalf("phase = %v", m.Phase())
	}
}

func TestWavesGameOverMidWave(t *testing.T) {
	cfg := testWavesConfig()
	sp := &recordingSpawner{}
	d := &fakeDisplay{}
	m := New(d, nil, nil)
	w := NewWaves(cfg, m, sp, rand.New(rand.NewSource(3)), nil)

	run(w, time.Second, 100*time.Millisecond)
	if len(sp.cmds) != 1 {
		t.Fatalf("spawned %d before game over, want 1", len(sp.cmds))
	}
	m.SignalGameOver()

	run(w, 3400*time.Millisecond, 100*time.Millisecond) // now 4.4s
	if len(sp.cmds) != 3 {
		t.Fatalf("wave in flight spawned %d total, want 3", len(sp.cmds))
	}
	if m.Phase() != PhaseEnding || d.restart != "" {
		t.Fatalf("before boundary: phase=%v restart=%q", m.Phase(), d.restart)
	}

	w.Update(100 * time.Millisecond) // 4.5s, wave boundary
	if m.Phase() != PhaseAwaitingRestart || d.restart != RestartText {
		t.Fatalf("at boundary: phase=%v restart=%q", m.Phase(), d.restart)
	}
	if !w.Done() {
		t.Fatal("scheduler should stop after the restart prompt")
	}

	run(w, 20*time.Second, 100*time.Millisecond)
	if len(sp.cmds) != 3 {
		t.Fatalf("spawned %d after stop, want 3", len(sp.cmds))
	}
}

func TestWavesDeterministicWithSeed(t *testing.T) {
	cfg := testWavesConfig()
	a, b := &recordingSpawner{}, &recordingSpawner{}
	run(NewWaves(cfg, nil, a, rand.New(rand.NewSource(42)), nil), 10*time.Second, 20*time.Millisecond)
	run(NewWaves(cfg, nil, b, rand.New(rand.NewSource(42)), nil), 10*time.Second, 20*time.Millisecond)

	if len(a.cmds) == 0 || len(a.cmds) != len(b.cmds) {
		t.Fatalf("len a=%d b=%d", len(a.cmds), len(b.cmds))
	}
	for i := range a.cmds {
		if a.cmds[i] != b.cmds[i] {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, a.cmds[i], b.cmds[i])
		}
	}
}
