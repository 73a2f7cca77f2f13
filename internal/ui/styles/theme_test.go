package styles

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/chime/internal/playback"
)

func TestByName(t *testing.T) {
	if got := ByName("nord"); got.Name != "nord" {
		t.Errorf("ByName(nord) = %q", got.Name)
	}
	if got := ByName("no-such-theme"); got.Name != "default" {
		t.Errorf("ByName(unknown) = %q, want default", got.Name)
	}
}

func TestSetSwitchesActiveTheme(t *testing.T) {
	t.Cleanup(func() { Set("default") })

	Set("gruvbox")
	if T().Name != "gruvbox" {
		t.Errorf("after Set(gruvbox), T().Name = %q", T().Name)
	}

	Set("bogus")
	if T().Name != "default" {
		t.Errorf("after Set(bogus), T().Name = %q, want default", T().Name)
	}
}

func TestNamesMatchPlaybackThemes(t *testing.T) {
	if !slices.Equal(Names(), playback.Themes()) {
		t.Errorf("styles.Names() = %v, playback.Themes() = %v", Names(), playback.Themes())
	}
}

func TestStylesArePrebuilt(t *testing.T) {
	for _, name := range Names() {
		if ByName(name).S() == nil {
			t.Errorf("theme %q has no styles", name)
		}
	}
}

func TestRamp(t *testing.T) {
	if got := Ramp(0, "#000000", "#ffffff"); got != nil {
		t.Errorf("Ramp(0) = %v, want nil", got)
	}

	if got := Ramp(1, "#102030", "#ffffff"); len(got) != 1 || got[0] != "#102030" {
		t.Errorf("Ramp(1) = %v", got)
	}

	colors := Ramp(8, "#5b21b6", "#c4b5fd")
	if len(colors) != 8 {
		t.Fatalf("Ramp(8) returned %d colors", len(colors))
	}
	for i, c := range colors {
		if !strings.HasPrefix(string(c), "#") || len(c) != 7 {
			t.Errorf("color %d = %q, want hex", i, c)
		}
	}
	if colors[0] == colors[7] {
		t.Error("gradient endpoints are identical")
	}
}

func TestApplyGradient(t *testing.T) {
	if got := ApplyGradient("", "#000000", "#ffffff", false); got != "" {
		t.Errorf("ApplyGradient(empty) = %q", got)
	}

	got := ApplyGradient("chime", "#5b21b6", "#c4b5fd", true)
	if plain := ansi.Strip(got); plain != "chime" {
		t.Errorf("stripped gradient = %q, want original text", plain)
	}
}
