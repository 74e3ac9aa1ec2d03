package match

import (
	"sync"
	"testing"

	"github.com/tomz197/starfighter/internal/input"
)

type fakeDisplay struct {
	mu       sync.Mutex
	score    string
	gameOver string
	restart  string
	updates  int
}

func (d *fakeDisplay) SetScoreText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.score = text
	d.updates++
}

func (d *fakeDisplay) SetGameOverText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gameOver = text
}

func (d *fakeDisplay) SetRestartText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restart = text
}

type countingResetter struct {
	resets int
}

func (r *countingResetter) Reset() {
	r.resets++
}

func TestNewMatchInitializesDisplay(t *testing.T) {
	d := &fakeDisplay{gameOver: "stale", restart: "stale"}
	m := New(d, nil, nil)
	if m.Phase() != PhasePlaying || m.Score() != 0 {
		t.Fatalf("new match phase=%v score=%d", m.Phase(), m.Score())
	}
	if d.score != "Score: 0" || d.gameOver != "" || d.restart != "" {
		t.Fatalf("display = %+v", d)
	}
}

func TestAddScoreAnyOrder(t *testing.T) {
	orders := [][]int{{5, 3, 2}, {2, 3, 5}, {3, 5, 2}}
	for _, order := range orders {
		d := &fakeDisplay{}
		m := New(d, nil, nil)
		for _, delta := range order {
			m.AddScore(delta)
		}
		if m.Score() != 10 {
			t.Fatalf("order %v: score = %d, want 10", order, m.Score())
		}
		if d.score != "Score: 10" {
			t.Fatalf("order %v: display = %q", order, d.score)
		}
	}
}

func TestAddScoreConcurrent(t *testing.T) {
	m := New(&fakeDisplay{}, nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, delta := range []int{5, 3, 2} {
			wg.Add(1)
			go func(delta int) {
				defer wg.Done()
				m.AddScore(delta)
			}(delta)
		}
	}
	wg.Wait()
	if m.Score() != 1000 {
		t.Fatalf("score = %d, want 1000", m.Score())
	}
}

func TestAddScoreRejectsNegative(t *testing.T) {
	m := New(&fakeDisplay{}, nil, nil)
	m.AddScore(4)
	m.AddScore(-3)
	if m.Score() != 4 {
		t.Fatalf("score = %d, want 4", m.Score())
	}
}

func TestSignalGameOverIdempotent(t *testing.T) {
	d := &fakeDisplay{}
	m := New(d, nil, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	transitions := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.SignalGameOver() {
				mu.Lock()
				transitions++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if transitions != 1 {
		t.Fatalf("transitions = %d, want 1", transitions)
	}
	if m.Phase() != PhaseEnding {
		t.Fatalf("phase = %v, want ending", m.Phase())
	}
	if d.gameOver != GameOverText {
		t.Fatalf("game over text = %q", d.gameOver)
	}
}

func TestScoreAndGameOverCommute(t *testing.T) {
	a := New(&fakeDisplay{}, nil, nil)
	a.AddScore(10)
	a.SignalGameOver()

	b := New(&fakeDisplay{}, nil, nil)
	b.SignalGameOver()
	b.AddScore(10)

	if a.Score() != b.Score() || a.Phase() != b.Phase() {
		t.Fatalf("a=(%d,%v) b=(%d,%v)", a.Score(), a.Phase(), b.Score(), b.Phase())
	}
}

func TestAwaitRestartOnlyWhenEnding(t *testing.T) {
	d := &fakeDisplay{}
	m := New(d, nil, nil)
	if m.AwaitRestart() {
		t.Fatal("AwaitRestart while playing")
	}
	m.SignalGameOver()
	if !m.AwaitRestart() {
		t.Fatal("AwaitRestart while ending should transition")
	}
	if m.Phase() != PhaseAwaitingRestart || d.restart != RestartText {
		t.Fatalf("phase=%v restart=%q", m.Phase(), d.restart)
	}
	if m.SignalGameOver() {
		t.Fatal("phase must not move backwards")
	}
}

func TestPollRestart(t *testing.T) {
	r := &countingResetter{}
	m := New(&fakeDisplay{}, r, nil)

	if m.PollRestart(input.Input{Restart: true}) {
		t.Fatal("restart accepted while playing")
	}
	m.SignalGameOver()
	if m.PollRestart(input.Input{Restart: true}) {
		t.Fatal("restart accepted while ending")
	}
	m.AwaitRestart()
	if m.PollRestart(input.Input{Fire: true}) {
		t.Fatal("non-restart input accepted")
	}
	if !m.PollRestart(input.Input{Restart: true}) || r.resets != 1 {
		t.Fatalf("restart not triggered, resets = %d", r.resets)
	}
}

func TestPollRestartWithoutResetter(t *testing.T) {
	d := &fakeDisplay{}
	m := New(d, nil, nil)
	m.AddScore(30)
	m.SignalGameOver()
	m.AwaitRestart()

	if !m.PollRestart(input.Input{Restart: true}) {
		t.Fatal("restart not triggered")
	}
	if m.Phase() != PhasePlaying || m.Score() != 0 {
		t.Fatalf("after restart phase=%v score=%d", m.Phase(), m.Score())
	}
	if d.gameOver != "" || d.restart != "" || d.score != "Score: 0" {
		t.Fatalf("display not reset: %+v", d)
	}
}
