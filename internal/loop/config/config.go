// Package config centralizes all tunable game parameters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/tomz197/starfighter/internal/physics"
	"gopkg.in/yaml.v3"
)

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 56 // Logical viewport width
	ViewHeight = 88 // Logical viewport height (in sub-pixels, so 44 terminal rows)
)

// Max render resolution in terminal cells. Larger terminals get a centered border.
const (
	MaxTermWidth  = 56
	MaxTermHeight = 44
)

// Frame pacing
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	PhysicsStep           = 20 * time.Millisecond
	MaxPhysicsSteps       = 5 // Per frame
)

// Client screens
const (
	PromptBlinkPeriod = 600 * time.Millisecond
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	TopScoreCount = 5
)

// Shutdown
const (
	ShutdownDisplayTime = 10 * time.Second // Shutdown message shown before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// DefaultView is the world area shown on screen.
var DefaultView = physics.Rect{XMin: -7, XMax: 7, ZMin: -5, ZMax: 17}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the gameplay parameters. It is loaded once at startup and never mutated.
type Config struct {
	Waves      Waves        `yaml:"waves" json:"waves"`
	Spawn      SpawnVolume  `yaml:"spawn" json:"spawn"`
	Player     Player       `yaml:"player" json:"player"`
	Hazard     Hazard       `yaml:"hazard" json:"hazard"`
	Projectile Projectile   `yaml:"projectile" json:"projectile"`
	Arena      physics.Rect `yaml:"arena" json:"arena"` // Boundary volume; actors leaving it are removed
}

// Waves paces the hazard spawner.
type Waves struct {
	HazardsPerWave int           `yaml:"hazards_per_wave" json:"hazards_per_wave"`
	StartDelay     time.Duration `yaml:"start_delay" json:"start_delay"`
	SpawnDelay     time.Duration `yaml:"spawn_delay" json:"spawn_delay"`
	WaveDelay      time.Duration `yaml:"wave_delay" json:"wave_delay"`
}

// SpawnVolume describes where hazards appear: X in [-HalfX, HalfX],
// Z in [Depth-HalfZ, Depth+HalfZ], at a fixed Height.
type SpawnVolume struct {
	HalfX  float64 `yaml:"half_x" json:"half_x"`
	HalfZ  float64 `yaml:"half_z" json:"half_z"`
	Height float64 `yaml:"height" json:"height"`
	Depth  float64 `yaml:"depth" json:"depth"`
}

// Player tunes the ship's movement and gun.
type Player struct {
	Speed            float64       `yaml:"speed" json:"speed"`
	Tilt             float64       `yaml:"tilt" json:"tilt"` // Roll radians per unit of X velocity
	Radius           float64       `yaml:"radius" json:"radius"`
	Boundary         physics.Rect  `yaml:"boundary" json:"boundary"`
	FireDelay        time.Duration `yaml:"fire_delay" json:"fire_delay"`
	ShotOffset       physics.Vec3  `yaml:"shot_offset" json:"shot_offset"`
	TriggerThreshold float64       `yaml:"trigger_threshold" json:"trigger_threshold"`
	PointerThreshold float64       `yaml:"pointer_threshold" json:"pointer_threshold"`
}

// Hazard tunes spawned asteroids.
type Hazard struct {
	Speed      float64 `yaml:"speed" json:"speed"`
	Tumble     float64 `yaml:"tumble" json:"tumble"`
	Radius     float64 `yaml:"radius" json:"radius"`
	ScoreValue int     `yaml:"score_value" json:"score_value"`
}

// Projectile tunes laser bolts.
type Projectile struct {
	Speed    float64       `yaml:"speed" json:"speed"`
	Radius   float64       `yaml:"radius" json:"radius"`
	Lifetime time.Duration `yaml:"lifetime" json:"lifetime"`
}

// Default returns the stock gameplay configuration.
func Default() Config {
	return Config{
		Waves: Waves{
			HazardsPerWave: 10,
			StartDelay:     time.Second,
			SpawnDelay:     500 * time.Millisecond,
			WaveDelay:      4 * time.Second,
		},
		Spawn: SpawnVolume{HalfX: 6, HalfZ: 0, Height: 0, Depth: 16},
		Player: Player{
			Speed:            10,
			Tilt:             0.07,
			Radius:           0.6,
			Boundary:         physics.Rect{XMin: -6, XMax: 6, ZMin: -4, ZMax: 8},
			FireDelay:        500 * time.Millisecond,
			ShotOffset:       physics.Vec3{Z: 1.25},
			TriggerThreshold: 0.2,
			PointerThreshold: 0,
		},
		Hazard:     Hazard{Speed: 5, Tumble: 5, Radius: 0.5, ScoreValue: 10},
		Projectile: Projectile{Speed: 20, Radius: 0.2, Lifetime: 3 * time.Second},
		Arena:      physics.Rect{XMin: -7.5, XMax: 7.5, ZMin: -5, ZMax: 15},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Waves.HazardsPerWave >= 1, "waves.hazards_per_wave must be >= 1, got %d", c.Waves.HazardsPerWave)
	check(c.Waves.StartDelay >= 0, "waves.start_delay must be >= 0, got %v", c.Waves.StartDelay)
	check(c.Waves.SpawnDelay > 0, "waves.spawn_delay must be > 0, got %v", c.Waves.SpawnDelay)
	check(c.Waves.WaveDelay >= 0, "waves.wave_delay must be >= 0, got %v", c.Waves.WaveDelay)

	check(c.Spawn.HalfX >= 0 && c.Spawn.HalfZ >= 0, "spawn half ranges must be >= 0")

	check(c.Player.Speed > 0, "player.speed must be > 0, got %v", c.Player.Speed)
	check(math.Abs(c.Player.Tilt*c.Player.Speed) < math.Pi/2,
		"player.tilt * player.speed must stay under pi/2 radians of roll, got %v", c.Player.Tilt*c.Player.Speed)
	check(c.Player.Radius > 0, "player.radius must be > 0, got %v", c.Player.Radius)
	check(c.Player.Boundary.Valid(), "player.boundary min must not exceed max: %+v", c.Player.Boundary)
	check(c.Player.FireDelay > 0, "player.fire_delay must be > 0, got %v", c.Player.FireDelay)
	check(c.Player.TriggerThreshold >= 0 && c.Player.TriggerThreshold < 1,
		"player.trigger_threshold must be in [0,1), got %v", c.Player.TriggerThreshold)
	check(c.Player.PointerThreshold >= 0, "player.pointer_threshold must be >= 0, got %v", c.Player.PointerThreshold)

	check(c.Hazard.Speed >= 0, "hazard.speed must be >= 0, got %v", c.Hazard.Speed)
	check(c.Hazard.Radius > 0, "hazard.radius must be > 0, got %v", c.Hazard.Radius)
	check(c.Hazard.ScoreValue >= 0, "hazard.score_value must be >= 0, got %d", c.Hazard.ScoreValue)

	check(c.Projectile.Speed > 0, "projectile.speed must be > 0, got %v", c.Projectile.Speed)
	check(c.Projectile.Radius > 0, "projectile.radius must be > 0, got %v", c.Projectile.Radius)
	check(c.Projectile.Lifetime > 0, "projectile.lifetime must be > 0, got %v", c.Projectile.Lifetime)

	check(c.Arena.Valid(), "arena min must not exceed max: %+v", c.Arena)

	return errors.Join(errs...)
}
