// Package spectrum turns the player's sample feed into visualizer
// data: a log-spaced magnitude spectrum or a downsampled waveform,
// refreshed at a fixed rate independent of both the audio output and
// the UI frame rate.
package spectrum

// Mode selects the active visualization.
type Mode int

const (
	ModeBars Mode = iota
	ModeWaveform
	ModeOff
)

// Cycle advances Bars → Waveform → Off → Bars.
func (m Mode) Cycle() Mode {
	switch m {
	case ModeBars:
		return ModeWaveform
	case ModeWaveform:
		return ModeOff
	default:
		return ModeBars
	}
}

func (m Mode) String() string {
	switch m {
	case ModeBars:
		return "bars"
	case ModeWaveform:
		return "waveform"
	default:
		return "off"
	}
}

// Label returns the display name shown in the UI and remote.
func (m Mode) Label() string {
	switch m {
	case ModeBars:
		return "Spectrum"
	case ModeWaveform:
		return "Waveform"
	default:
		return "Off"
	}
}

// ParseMode maps a config string to a Mode, defaulting to bars.
func ParseMode(s string) Mode {
	switch s {
	case "waveform":
		return ModeWaveform
	case "off":
		return ModeOff
	default:
		return ModeBars
	}
}

// Snapshot is one visualizer frame. Bars and Peaks hold NumBands
// values in [0,1] when the mode is bars; Waveform holds WaveformWidth
// averaged sample columns when the mode is waveform. Snapshots are
// ephemeral: each one supersedes the previous.
type Snapshot struct {
	Mode     Mode
	Bars     []float64
	Peaks    []float64
	Waveform []float64
}
