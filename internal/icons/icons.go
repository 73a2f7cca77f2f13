// Package icons provides the glyph set for playback indicators.
package icons

// Style selects which glyph set to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs for the active style.
type Icons struct {
	Audio      string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Volume     string
	VolumeMute string
	Sleep      string
}

var (
	nerdIcons = Icons{
		Audio:      " ", // nf-fa-music
		Shuffle:    "󰒟",       // nf-md-shuffle
		RepeatAll:  "󰑖",       // nf-md-repeat
		RepeatOne:  "󰑘",       // nf-md-repeat_once
		Volume:     "󰕾",       // nf-md-volume_high
		VolumeMute: "󰖁",       // nf-md-volume_off
		Sleep:      "󰒲",       // nf-md-sleep
	}

	unicodeIcons = Icons{
		Audio:      "🎵 ",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Sleep:      "⏾",
	}

	noneIcons = Icons{
		Audio:      "",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Volume:     "vol",
		VolumeMute: "mute",
		Sleep:      "zZ",
	}

	current = noneIcons
)

// Init selects the icon style. Call once at startup with the config value.
// Unknown styles select "none".
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Audio returns the note glyph used as a track prefix.
func Audio() string {
	return current.Audio
}

// Shuffle returns the shuffle indicator.
func Shuffle() string {
	return current.Shuffle
}

// RepeatAll returns the repeat-all indicator.
func RepeatAll() string {
	return current.RepeatAll
}

// RepeatOne returns the repeat-one indicator.
func RepeatOne() string {
	return current.RepeatOne
}

// Volume returns the volume indicator.
func Volume() string {
	return current.Volume
}

// VolumeMute returns the muted volume indicator.
func VolumeMute() string {
	return current.VolumeMute
}

// Sleep returns the sleep timer indicator.
func Sleep() string {
	return current.Sleep
}
