package excerpt

import (
	"strings"
	"testing"
)

func TestClip_ShortContentUnchanged(t *testing.T) {
	text := "A short lesson."
	if got := Clip(text, 100); got != text {
		t.Errorf("expected %q, got %q", text, got)
	}
}

func TestClip_KeepsWholeBlocks(t *testing.T) {
	para := strings.Repeat("Useful detail here. ", 4) // ~80 chars
	text := para + "\n\n" + para + "\n\n" + para

	got := Clip(text, 180)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 180 {
		t.Errorf("clip exceeded budget: %d chars", len(got))
	}
	if n := strings.Count(got, "\n\n"); n != 1 {
		t.Errorf("expected exactly 2 blocks kept, found %d separators", n)
	}
}

func TestClip_SplitsOnHeadings(t *testing.T) {
	section := strings.Repeat("Content under a heading. ", 4)
	text := "# First\n" + section + "\n# Second\n" + section + "\n# Third\n" + section

	got := Clip(text, 250)
	if len(got) > 250 {
		t.Errorf("clip exceeded budget: %d chars", len(got))
	}
	if !strings.Contains(got, "# First") {
		t.Errorf("expected the first section kept, got %q", got)
	}
	if strings.Contains(got, "# Third") {
		t.Errorf("did not expect the third section, got %q", got)
	}
}

func TestClip_WordBoundaryFallback(t *testing.T) {
	// One giant paragraph with no block boundaries.
	text := strings.Repeat("caching matters because rebuilds are slow ", 50)

	got := Clip(text, 120)
	if len(got) > 120 {
		t.Errorf("clip exceeded budget: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(body, " ") {
		t.Errorf("expected trimmed word cut, got %q", body)
	}
}

func TestClip_TinyBudget(t *testing.T) {
	if got := Clip("anything at all that is too long", 3); got != "" {
		t.Errorf("expected empty clip, got %q", got)
	}
}
