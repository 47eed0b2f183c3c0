package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader_Status(t *testing.T) {
	h := RenderHeader([]string{"Home", "Checkpoint"}, Status{Learner: "Ada · Student Plan", Mastered: 3, Total: 12}, 100)
	for _, want := range []string{"MasteryLoop", "Checkpoint", "3/12", "Ada"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderHeader_NoStatus(t *testing.T) {
	h := RenderHeader([]string{"Home"}, Status{}, 80)
	if strings.Contains(h, "/") {
		t.Errorf("header should not show progress without a total: %q", h)
	}
}

func TestRenderHeader_Trail(t *testing.T) {
	h := RenderHeader([]string{"Home", "CPU Scheduling", "Review Checkpoint 1"}, Status{}, 100)
	if strings.Contains(h, "Home") {
		t.Errorf("root should be hidden below other screens: %q", h)
	}
	for _, want := range []string{"CPU Scheduling", "›", "Review Checkpoint 1"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderTrail_DropsLeadingCrumbs(t *testing.T) {
	got := renderTrail([]string{"Operating Systems", "Process Management", "Review Checkpoint 1"}, 24)
	if strings.Contains(got, "Operating Systems") {
		t.Errorf("expected leading crumbs dropped: %q", got)
	}
	if !strings.Contains(got, "Review Checkpoint 1") {
		t.Errorf("active title missing: %q", got)
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader([]string{"Home"}, Status{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, strings.Repeat("line\n", 100), footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 10, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
