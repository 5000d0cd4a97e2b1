package theme

import (
	"testing"

	"doubtsolver/models"
)

func TestResolveFollowsFlag(t *testing.T) {
	t.Parallel()

	if got := Resolve(true); got.Key != models.ThemeDark || !got.Dark || got.HTMLClass != "dark" {
		t.Fatalf("Resolve(true) = %+v", got)
	}
	if got := Resolve(false); got.Key != models.ThemeLight || got.Dark {
		t.Fatalf("Resolve(false) = %+v", got)
	}
}

func TestResolveKeyFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := ResolveKey(" LIGHT "); got.Key != models.ThemeLight {
		t.Fatalf("ResolveKey(light) = %q", got.Key)
	}
	if got := ResolveKey("sepia"); got.Key != models.ThemeKey(models.DefaultDarkMode) {
		t.Fatalf("expected fallback to default theme, got %q", got.Key)
	}
}
