package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwebster45206/nights-engine/pkg/night"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Candidate is a glass standing on the table.
type Candidate struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"` // shown in the hover prompt; derived from ID when empty
	Description string `json:"description,omitempty"`  // shown while inspecting
}

// Label returns the display name, title-casing the ID when none is set.
func (c Candidate) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return cases.Title(language.English).String(strings.ReplaceAll(c.ID, "_", " "))
}

// Consequence timings, in seconds.
type Consequence struct {
	ShakeSeconds   float64 `json:"shake_seconds"`
	ShakeMagnitude float64 `json:"shake_magnitude"`
	DelaySeconds   float64 `json:"delay_seconds"`
}

type Palette struct {
	Correct   string   `json:"correct"`
	Incorrect []string `json:"incorrect"`
}

type Light struct {
	Name            string  `json:"name"`
	OffSeconds      float64 `json:"off_seconds"`
	ReturnIntensity float64 `json:"return_intensity"`
}

// Scenario is the template for one table of glasses and its nights.
type Scenario struct {
	Name     string `json:"name"`
	FileName string `json:"file_name,omitempty"`
	Story    string `json:"story"` // opening text shown before the first night

	Candidates []Candidate `json:"candidates"`

	StartNight   int     `json:"start_night,omitempty"`
	MaxNight     int     `json:"max_night,omitempty"`
	NightSeconds float64 `json:"night_seconds,omitempty"`
	IntroSeconds float64 `json:"intro_seconds,omitempty"`

	Selection  string `json:"selection,omitempty"` // "random" or "fixed"
	FixedIndex int    `json:"fixed_index,omitempty"`

	Success *Consequence `json:"success,omitempty"`
	Failure *Consequence `json:"failure,omitempty"`

	Palettes          []Palette `json:"palettes,omitempty"`
	Lights            []Light   `json:"lights,omitempty"`
	PantingStartDelay float64   `json:"panting_start_delay,omitempty"`
	PantingIntervals  []float64 `json:"panting_intervals,omitempty"`
}

// CandidateIDs returns the candidate identifiers in table order.
func (s *Scenario) CandidateIDs() []night.CandidateID {
	ids := make([]night.CandidateID, len(s.Candidates))
	for i, c := range s.Candidates {
		ids[i] = night.CandidateID(c.ID)
	}
	return ids
}

// NightConfig builds an engine configuration, starting from
// night.DefaultConfig and overriding whatever the scenario sets.
func (s *Scenario) NightConfig() (night.Config, error) {
	cfg := night.DefaultConfig()
	if s.StartNight != 0 {
		cfg.StartNight = s.StartNight
	}
	if s.MaxNight != 0 {
		cfg.MaxNight = s.MaxNight
	}
	if s.NightSeconds != 0 {
		cfg.NightDuration = seconds(s.NightSeconds)
	}
	cfg.IntroDuration = seconds(s.IntroSeconds)
	if s.Selection != "" {
		cfg.Selection = night.Selection(strings.ToLower(s.Selection))
	}
	cfg.FixedIndex = s.FixedIndex
	if s.Success != nil {
		cfg.Success = s.Success.toNight()
	}
	if s.Failure != nil {
		cfg.Failure = s.Failure.toNight()
	}
	for _, p := range s.Palettes {
		cfg.Palettes = append(cfg.Palettes, night.Palette{Correct: p.Correct, Incorrect: p.Incorrect})
	}
	for _, l := range s.Lights {
		cfg.Lights = append(cfg.Lights, night.LightDelay{
			Name:            l.Name,
			Off:             seconds(l.OffSeconds),
			ReturnIntensity: l.ReturnIntensity,
		})
	}
	cfg.PantingStartDelay = seconds(s.PantingStartDelay)
	if s.PantingIntervals != nil {
		cfg.PantingIntervals = make([]time.Duration, len(s.PantingIntervals))
		for i, v := range s.PantingIntervals {
			cfg.PantingIntervals[i] = seconds(v)
		}
	}

	if err := cfg.Validate(); err != nil {
		return night.Config{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return cfg, nil
}

// Validate checks everything the engine would reject at setup, plus
// scenario-only rules, and reports all problems at once.
func (s *Scenario) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(s.Candidates) == 0 {
		errs = append(errs, fmt.Errorf("candidates: %w", night.ErrEmptyCandidates))
	}
	seen := make(map[string]bool, len(s.Candidates))
	for i, c := range s.Candidates {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("candidate %d: id is required", i))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("candidate %q: duplicate id", c.ID))
		}
		seen[c.ID] = true
	}
	for i, p := range s.Palettes {
		if p.Correct == "" && len(p.Incorrect) == 0 {
			errs = append(errs, fmt.Errorf("palette %d: has no materials", i))
		}
	}
	if _, err := s.NightConfig(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Consequence) toNight() night.Consequence {
	return night.Consequence{
		ShakeDuration:  seconds(c.ShakeSeconds),
		ShakeMagnitude: c.ShakeMagnitude,
		Delay:          seconds(c.DelaySeconds),
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
