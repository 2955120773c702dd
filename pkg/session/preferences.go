package session

const (
	DefaultSensitivity  = 0.12
	DefaultMasterVolume = 1.0

	MinSensitivity = 0.01
	MaxSensitivity = 1.0
)

// Preferences are per-profile player settings.
type Preferences struct {
	Sensitivity  float64 `json:"sensitivity"`
	MasterVolume float64 `json:"master_volume"`
	Fullscreen   bool    `json:"fullscreen"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Sensitivity:  DefaultSensitivity,
		MasterVolume: DefaultMasterVolume,
	}
}

// Clamp keeps values inside the ranges the settings sliders allow.
func (p *Preferences) Clamp() {
	p.Sensitivity = clampFloat(p.Sensitivity, MinSensitivity, MaxSensitivity)
	p.MasterVolume = clampFloat(p.MasterVolume, 0, 1)
}

// Muted is true when no audio cue should be played.
func (p Preferences) Muted() bool {
	return p.MasterVolume <= 0
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
