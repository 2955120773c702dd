package night

import "fmt"

// CandidateID identifies a selectable object (a glass) on the table.
type CandidateID string

// Status is the resolution status of the current night.
type Status int

const (
	StatusIdle      Status = iota // accepting a selection
	StatusResolving               // consequence sequence in flight
	StatusEnded                   // terminal
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusResolving:
		return "resolving"
	case StatusEnded:
		return "ended"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the terminal result of a run.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Reason explains a loss.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonWrongChoice
	ReasonTimedOut
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWrongChoice:
		return "wrong_choice"
	case ReasonTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Result is what the engine reports through Host.OnOutcome.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// Win is the result of drinking the correct glass on the last night.
func Win() Result { return Result{Outcome: OutcomeWin} }

// Lose returns a losing result with the given reason.
func Lose(reason Reason) Result { return Result{Outcome: OutcomeLose, Reason: reason} }

func (r Result) String() string {
	if r.Outcome == OutcomeLose {
		return fmt.Sprintf("lose(%s)", r.Reason)
	}
	return r.Outcome.String()
}

// CueKind names an ambient cue emitted to a CueHost.
type CueKind int

const (
	CuePanting CueKind = iota
	CueLightOff
	CueLightOn
	CuePalette
	CuePhase
	CueIntroEnded
)

func (k CueKind) String() string {
	switch k {
	case CuePanting:
		return "panting"
	case CueLightOff:
		return "light_off"
	case CueLightOn:
		return "light_on"
	case CuePalette:
		return "palette"
	case CuePhase:
		return "phase"
	case CueIntroEnded:
		return "intro_ended"
	default:
		return fmt.Sprintf("cue(%d)", int(k))
	}
}

// Cue carries presentation-only information: audio, lights, materials and
// consequence phases. Cues never change game state.
type Cue struct {
	Kind      CueKind
	Night     int
	Light     string
	Intensity float64
	Palette   map[CandidateID]string
	Phase     Phase
}

// Host receives the engine's notifications and performs scene reloads.
type Host interface {
	OnNightChanged(night, maxNight int)
	OnOutcome(result Result)
	// ReloadScene asks the host to reinitialize the scene. resumeAtNight is
	// the night the next scene instance must start at.
	ReloadScene(resumeAtNight int)
}

// CueHost is implemented by hosts that present ambient cues.
type CueHost interface {
	Host
	OnCue(cue Cue)
}
