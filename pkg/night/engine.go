// Package night implements the per-night game progression: pick the correct
// glass, run the countdown, resolve a selection through a short consequence
// sequence, and either advance to the next night or end the run.
//
// An Engine has a single-writer contract. The host calls Tick once per frame
// and Select on input from the same goroutine; nothing here is locked.
package night

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"
)

// Engine is the night progression state machine.
type Engine struct {
	cfg    Config
	host   Host
	cues   CueHost
	picker Picker
	rand   *rand.Rand
	logger *slog.Logger

	begun      bool
	night      int
	candidates []CandidateID
	correct    CandidateID
	status     Status
	result     Result
	remaining  time.Duration
	intro      time.Duration

	seq   *Sequence
	match bool

	schedule   Scheduler
	pantingIdx int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPicker overrides the picker implied by Config.Selection.
func WithPicker(p Picker) Option {
	return func(e *Engine) { e.picker = p }
}

// WithRand sets the random source used for picking and palette shuffles.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithSeed is WithRand with a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger for night transitions. Without it the engine
// logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New validates cfg and returns an engine that has not begun a night yet.
// Call BeginNight with the night to resume at.
func New(cfg Config, host Host, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if host == nil {
		return nil, configError(ErrInvalidConfig, "host", "host is required")
	}

	e := &Engine{cfg: cfg, host: host}
	if ch, ok := host.(CueHost); ok {
		e.cues = ch
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.picker == nil {
		if cfg.Selection == SelectFixed {
			e.picker = FixedPicker{Index: cfg.FixedIndex}
		} else {
			e.picker = RandomPicker{Rand: e.rand}
		}
	}
	return e, nil
}

// BeginNight starts night n over the given candidates: it picks the correct
// one, resets the countdown and returns the engine to Idle.
func (e *Engine) BeginNight(n int, candidates []CandidateID) error {
	if err := e.checkNight(n, candidates); err != nil {
		e.logger.Error("Cannot begin night", "night", n, "candidates", len(candidates), "error", err)
		return err
	}

	e.candidates = slices.Clone(candidates)
	e.night = n
	e.correct = e.candidates[clamp(e.picker.Pick(n, len(e.candidates)), 0, len(e.candidates)-1)]
	e.status = StatusIdle
	e.result = Result{}
	e.remaining = e.cfg.NightDuration
	e.intro = e.cfg.IntroDuration
	e.seq = nil
	e.match = false
	e.schedule.Reset()
	e.begun = true

	e.logger.Info("Night begun",
		"night", n,
		"max_night", e.cfg.MaxNight,
		"candidates", len(e.candidates),
		"duration", e.cfg.NightDuration)

	e.host.OnNightChanged(n, e.cfg.MaxNight)
	if pal := AssignPalette(e.cfg.Palettes, n, e.candidates, e.correct, e.rand); pal != nil {
		e.cue(Cue{Kind: CuePalette, Palette: pal})
	}
	if e.intro == 0 {
		e.startCues()
	}
	return nil
}

func (e *Engine) checkNight(n int, candidates []CandidateID) error {
	if len(candidates) == 0 {
		return configError(ErrEmptyCandidates, "candidates", "at least one candidate is required")
	}
	if n < e.cfg.StartNight || n > e.cfg.MaxNight {
		return configError(ErrNightOutOfRange, "night", "%d is outside [%d, %d]", n, e.cfg.StartNight, e.cfg.MaxNight)
	}
	seen := make(map[CandidateID]struct{}, len(candidates))
	for i, id := range candidates {
		if id == "" {
			return configError(ErrInvalidCandidate, "candidates", "candidate %d has an empty id", i)
		}
		if _, dup := seen[id]; dup {
			return configError(ErrInvalidCandidate, "candidates", "duplicate candidate %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Tick advances the engine by elapsed real time. While Idle it runs the
// intro and the countdown; while Resolving it only advances the consequence
// sequence. Once Ended it does nothing.
func (e *Engine) Tick(elapsed time.Duration) {
	if !e.begun || e.status == StatusEnded {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	switch e.status {
	case StatusResolving:
		e.schedule.Advance(elapsed)
		e.advanceSequence(elapsed)

	case StatusIdle:
		if e.intro > 0 {
			if elapsed < e.intro {
				e.intro -= elapsed
				return
			}
			elapsed -= e.intro
			e.intro = 0
			e.cue(Cue{Kind: CueIntroEnded})
			e.startCues()
		}

		e.schedule.Advance(elapsed)
		if e.status != StatusIdle {
			return
		}
		e.remaining -= elapsed
		if e.remaining <= 0 {
			e.remaining = 0
			e.logger.Info("Time expired", "night", e.night)
			e.end(Lose(ReasonTimedOut))
		}
	}
}

// Select consumes a candidate. It is ignored unless the engine is Idle and
// past the intro, so duplicate input in one frame resolves only once.
// Unknown candidates count as incorrect.
func (e *Engine) Select(id CandidateID) {
	if !e.begun || e.status != StatusIdle || e.intro > 0 || id == "" {
		e.logger.Debug("Selection ignored", "candidate", id, "status", e.status, "introducing", e.intro > 0)
		return
	}

	e.match = id == e.correct
	e.status = StatusResolving

	cons := e.cfg.Failure
	if e.match {
		cons = e.cfg.Success
	}
	e.seq = NewSequence(cons)

	e.logger.Info("Candidate selected", "night", e.night, "candidate", id, "correct", e.match)
	e.cue(Cue{Kind: CuePhase, Phase: e.seq.Phase()})
}

func (e *Engine) advanceSequence(dt time.Duration) {
	if e.seq == nil {
		return
	}
	prev := e.seq.Phase()
	if phase := e.seq.Advance(dt); phase != prev {
		e.cue(Cue{Kind: CuePhase, Phase: phase})
	}
	if e.seq.Done() {
		e.resolve()
	}
}

func (e *Engine) resolve() {
	if !e.match {
		e.end(Lose(ReasonWrongChoice))
		return
	}
	if e.night >= e.cfg.MaxNight {
		e.end(Win())
		return
	}

	next := e.night + 1
	if err := e.BeginNight(next, e.candidates); err != nil {
		// Candidates and bounds were already accepted for this run.
		e.end(Lose(ReasonNone))
		return
	}
	e.host.ReloadScene(next)
}

func (e *Engine) end(r Result) {
	e.status = StatusEnded
	e.result = r
	e.seq = nil
	e.schedule.Reset()
	e.logger.Info("Run ended", "night", e.night, "outcome", r.Outcome, "reason", r.Reason)
	e.host.OnOutcome(r)
}

// Restart begins the start night again from any state and asks the host to
// reload at it.
func (e *Engine) Restart() error {
	if !e.begun {
		return ErrNotStarted
	}
	if err := e.BeginNight(e.cfg.StartNight, e.candidates); err != nil {
		return err
	}
	e.host.ReloadScene(e.cfg.StartNight)
	return nil
}

func (e *Engine) startCues() {
	if e.cues == nil {
		return
	}
	n := e.night
	for _, l := range e.cfg.Lights {
		if l.Off <= 0 {
			continue
		}
		e.cue(Cue{Kind: CueLightOff, Night: n, Light: l.Name})
		e.schedule.After(l.Off, func() {
			e.cue(Cue{Kind: CueLightOn, Night: n, Light: l.Name, Intensity: l.ReturnIntensity})
		})
	}
	if len(e.cfg.PantingIntervals) > 0 {
		e.pantingIdx = 0
		e.schedule.After(e.cfg.PantingStartDelay, e.pant)
	}
}

func (e *Engine) pant() {
	if e.status != StatusIdle {
		return
	}
	e.cue(Cue{Kind: CuePanting, Night: e.night})
	interval := e.cfg.PantingIntervals[e.pantingIdx]
	if e.pantingIdx < len(e.cfg.PantingIntervals)-1 {
		e.pantingIdx++
	}
	e.schedule.After(interval, e.pant)
}

func (e *Engine) cue(c Cue) {
	if e.cues == nil {
		return
	}
	if c.Night == 0 {
		c.Night = e.night
	}
	e.cues.OnCue(c)
}

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Night is the current night, zero before BeginNight.
func (e *Engine) Night() int { return e.night }

func (e *Engine) MaxNight() int { return e.cfg.MaxNight }

// Status is Idle, Resolving or Ended.
func (e *Engine) Status() Status { return e.status }

// Result is the final outcome once Status is StatusEnded.
func (e *Engine) Result() Result { return e.result }

// Correct is the candidate chosen as correct for the current night.
func (e *Engine) Correct() CandidateID { return e.correct }

// IsCorrect reports whether id is tonight's correct candidate.
func (e *Engine) IsCorrect(id CandidateID) bool { return e.begun && id == e.correct }

// RemainingTime is the countdown value for display.
func (e *Engine) RemainingTime() time.Duration { return e.remaining }

// Introducing reports whether the night intro is still showing.
func (e *Engine) Introducing() bool { return e.begun && e.status == StatusIdle && e.intro > 0 }

// IntroRemaining is how long the intro has left, zero once it ends.
func (e *Engine) IntroRemaining() time.Duration { return e.intro }

// Phase is the consequence phase, PhaseNone when nothing is resolving.
func (e *Engine) Phase() Phase {
	if e.seq == nil {
		return PhaseNone
	}
	return e.seq.Phase()
}

// Shake reports the camera shake amplitude while shaking.
func (e *Engine) Shake() (magnitude float64, active bool) {
	if e.seq == nil || e.seq.Phase() != PhaseShakingCamera {
		return 0, false
	}
	return e.seq.Magnitude(), true
}
