package icons

import "testing"

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init("none") })

	tests := []struct {
		name  string
		style string
		want  Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if current != tt.want {
				t.Errorf("Init(%q) selected %+v", tt.style, current)
			}
		})
	}
}

func TestAccessorsFollowActiveSet(t *testing.T) {
	t.Cleanup(func() { Init("none") })

	Init("unicode")
	if Shuffle() != unicodeIcons.Shuffle {
		t.Errorf("Shuffle() = %q", Shuffle())
	}
	if Volume() != unicodeIcons.Volume {
		t.Errorf("Volume() = %q", Volume())
	}

	Init("none")
	if RepeatOne() != "[1]" {
		t.Errorf("RepeatOne() = %q, want [1]", RepeatOne())
	}
}
