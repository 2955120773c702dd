package night

import "time"

// Selection controls how the correct candidate is chosen each night.
type Selection string

const (
	SelectRandom Selection = "random"
	SelectFixed  Selection = "fixed"
)

// Consequence holds the timings of a consequence sequence.
type Consequence struct {
	ShakeDuration  time.Duration
	ShakeMagnitude float64
	Delay          time.Duration // pause after the shake, before the outcome
}

// Palette is the set of liquid materials used on one night.
type Palette struct {
	Correct   string
	Incorrect []string
}

// LightDelay keeps a light off for Off after the night starts, then
// restores it at ReturnIntensity.
type LightDelay struct {
	Name            string
	Off             time.Duration
	ReturnIntensity float64
}

// Config is the static configuration of an engine.
type Config struct {
	StartNight    int
	MaxNight      int
	NightDuration time.Duration
	// IntroDuration freezes the countdown at the start of every night.
	IntroDuration time.Duration

	Selection  Selection
	FixedIndex int

	Success Consequence
	Failure Consequence

	Palettes          []Palette
	Lights            []LightDelay
	PantingStartDelay time.Duration
	// PantingIntervals are the gaps between panting cues; the last one repeats.
	PantingIntervals []time.Duration
}

// DefaultPantingIntervals quicken as the night goes on.
var DefaultPantingIntervals = []time.Duration{
	15 * time.Second,
	13 * time.Second,
	11 * time.Second,
	9 * time.Second,
	7 * time.Second,
	5 * time.Second,
	3 * time.Second,
}

// DefaultConfig returns the stock four-night configuration.
func DefaultConfig() Config {
	return Config{
		StartNight:    1,
		MaxNight:      4,
		NightDuration: 90 * time.Second,
		Selection:     SelectRandom,
		Success: Consequence{
			ShakeDuration:  350 * time.Millisecond,
			ShakeMagnitude: 0.10,
			Delay:          600 * time.Millisecond,
		},
		Failure: Consequence{
			ShakeDuration:  350 * time.Millisecond,
			ShakeMagnitude: 0.18,
			Delay:          120 * time.Millisecond,
		},
		PantingIntervals: append([]time.Duration(nil), DefaultPantingIntervals...),
	}
}

// Validate reports the first problem found as a *ConfigurationError.
func (c Config) Validate() error {
	if c.StartNight < 1 {
		return configError(ErrInvalidConfig, "start_night", "must be at least 1, got %d", c.StartNight)
	}
	if c.MaxNight < c.StartNight {
		return configError(ErrInvalidConfig, "max_night", "must be >= start night %d, got %d", c.StartNight, c.MaxNight)
	}
	if c.NightDuration <= 0 {
		return configError(ErrInvalidConfig, "night_duration", "must be positive, got %s", c.NightDuration)
	}
	if c.IntroDuration < 0 {
		return configError(ErrInvalidConfig, "intro_duration", "must not be negative, got %s", c.IntroDuration)
	}
	switch c.Selection {
	case SelectRandom:
	case SelectFixed:
		if c.FixedIndex < 0 {
			return configError(ErrInvalidConfig, "fixed_index", "must not be negative, got %d", c.FixedIndex)
		}
	default:
		return configError(ErrInvalidConfig, "selection", "unknown selection %q", c.Selection)
	}
	for name, cons := range map[string]Consequence{"success": c.Success, "failure": c.Failure} {
		if cons.ShakeDuration < 0 || cons.Delay < 0 || cons.ShakeMagnitude < 0 {
			return configError(ErrInvalidConfig, name, "timings and magnitude must not be negative")
		}
	}
	for i, l := range c.Lights {
		if l.Name == "" {
			return configError(ErrInvalidConfig, "lights", "light %d has no name", i)
		}
	}
	if c.PantingStartDelay < 0 {
		return configError(ErrInvalidConfig, "panting_start_delay", "must not be negative")
	}
	for i, d := range c.PantingIntervals {
		if d <= 0 {
			return configError(ErrInvalidConfig, "panting_intervals", "interval %d must be positive, got %s", i, d)
		}
	}
	return nil
}
