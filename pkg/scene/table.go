// Package scene lays candidates out on a one-dimensional table and answers
// which one sits under the crosshair.
package scene

import (
	"math"

	"github.com/jwebster45206/nights-engine/pkg/night"
	"github.com/jwebster45206/nights-engine/pkg/scenario"
)

const (
	SlotWidth = 9
	SlotGap   = 4
	Margin    = 4

	PromptInspectDrink = "E - Inspect | F - Drink"
	PromptExitInspect  = "ESC - Exit"
)

// Slot is the horizontal span a candidate occupies.
type Slot struct {
	ID          night.CandidateID
	Label       string
	Description string
	Column      int
	Width       int
}

func (s Slot) contains(col int) bool {
	return col >= s.Column && col < s.Column+s.Width
}

// Center is the column in the middle of the slot.
func (s Slot) Center() int {
	return s.Column + s.Width/2
}

// Table is the row of glasses plus the crosshair aimed at it.
type Table struct {
	slots      []Slot
	width      int
	crosshair  float64
	inspecting night.CandidateID
}

// NewTable lays out candidates left to right and centers the crosshair.
func NewTable(candidates []scenario.Candidate) *Table {
	t := &Table{}
	col := Margin
	for _, c := range candidates {
		t.slots = append(t.slots, Slot{
			ID:          night.CandidateID(c.ID),
			Label:       c.Label(),
			Description: c.Description,
			Column:      col,
			Width:       SlotWidth,
		})
		col += SlotWidth + SlotGap
	}
	t.width = col - SlotGap + Margin
	if len(t.slots) == 0 {
		t.width = 2 * Margin
	}
	t.crosshair = float64(t.width / 2)
	return t
}

func (t *Table) Slots() []Slot { return t.slots }

func (t *Table) Width() int { return t.width }

// Crosshair returns the column the crosshair points at.
func (t *Table) Crosshair() int {
	return int(math.Round(t.crosshair))
}

// Aim moves the crosshair by delta columns scaled by sensitivity. The
// default sensitivity of 0.12 moves roughly one column per key press.
func (t *Table) Aim(delta, sensitivity float64) {
	step := delta * sensitivity / 0.12
	t.crosshair = math.Max(0, math.Min(float64(t.width-1), t.crosshair+step))
}

// AimAt points the crosshair at the center of a candidate's slot.
func (t *Table) AimAt(id night.CandidateID) bool {
	for _, s := range t.slots {
		if s.ID == id {
			t.crosshair = float64(s.Center())
			return true
		}
	}
	return false
}

// RayTest reports the candidate under col, if any.
func (t *Table) RayTest(col int) (night.CandidateID, bool) {
	if s, ok := t.slotAt(col); ok {
		return s.ID, true
	}
	return "", false
}

// Hit is RayTest at the crosshair.
func (t *Table) Hit() (night.CandidateID, bool) {
	return t.RayTest(t.Crosshair())
}

func (t *Table) slotAt(col int) (Slot, bool) {
	for _, s := range t.slots {
		if s.contains(col) {
			return s, true
		}
	}
	return Slot{}, false
}

func (t *Table) Slot(id night.CandidateID) (Slot, bool) {
	for _, s := range t.slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// Prompt is the hint shown under the crosshair.
func (t *Table) Prompt() string {
	if t.inspecting != "" {
		return PromptExitInspect
	}
	if _, ok := t.Hit(); ok {
		return PromptInspectDrink
	}
	return ""
}

// Inspect starts inspecting the candidate under the crosshair.
func (t *Table) Inspect() (Slot, bool) {
	if t.inspecting != "" {
		return Slot{}, false
	}
	s, ok := t.slotAt(t.Crosshair())
	if !ok {
		return Slot{}, false
	}
	t.inspecting = s.ID
	return s, true
}

func (t *Table) StopInspecting() { t.inspecting = "" }

// Inspecting returns the candidate being inspected.
func (t *Table) Inspecting() (night.CandidateID, bool) {
	return t.inspecting, t.inspecting != ""
}
