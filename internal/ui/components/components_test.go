package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_NumberKeySubmits(t *testing.T) {
	mc := NewMultiChoice("Which?", []string{"a", "b", "c", "d"}, 2)
	mc, _ = mc.Update(keyPress('3'))

	if !mc.Submitted || mc.ChosenIndex != 2 {
		t.Fatalf("submitted=%v chosen=%d, want true 2", mc.Submitted, mc.ChosenIndex)
	}
	if !mc.IsCorrect() {
		t.Error("expected correct answer")
	}

	// Input after submission is ignored.
	mc, _ = mc.Update(keyPress('1'))
	if mc.ChosenIndex != 2 {
		t.Errorf("chosen changed after submit: %d", mc.ChosenIndex)
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("Which?", []string{"a", "b"}, 0)
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	if mc.Selected != 1 {
		t.Fatalf("selected = %d, want 1 (clamped)", mc.Selected)
	}
	mc, _ = mc.Update(specialKey(tea.KeyEnter))
	if !mc.Submitted || mc.IsCorrect() {
		t.Errorf("submitted=%v correct=%v, want true false", mc.Submitted, mc.IsCorrect())
	}
}

func TestMultiChoice_OutOfRangeNumberIgnored(t *testing.T) {
	mc := NewMultiChoice("Which?", []string{"a", "b"}, 0)
	mc, _ = mc.Update(keyPress('4'))
	if mc.Submitted {
		t.Error("number beyond the options must not submit")
	}
}

func TestMultiChoice_ViewLabels(t *testing.T) {
	v := NewMultiChoice("Pick one", []string{"first", "second"}, 0).View()
	for _, want := range []string{"Pick one", "A)  first", "B)  second"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { picked = "two"; return nil }},
		{Label: "three", Disabled: true},
		{Label: "four", Action: func() tea.Cmd { picked = "four"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("selection = %d, want 3", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if picked != "four" {
		t.Errorf("picked = %q, want four", picked)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("selection = %d, want 1", m.Selected)
	}
}

func TestMenu_WrapsAndShortcuts(t *testing.T) {
	var picked string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd { picked = label; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "OPERATING SYSTEMS", Action: pick("os")},
		{Label: "CPU SCHEDULING", Action: pick("cpu")},
		{Label: "PROFILE", Action: pick("profile"), Divider: true},
		{Label: "HISTORY", Disabled: true},
	})

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 2 {
		t.Fatalf("up from the top should wrap to the last enabled item, got %d", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 0 {
		t.Fatalf("down from the last enabled item should wrap to 0, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if picked != "cpu" || m.Selected != 1 {
		t.Errorf("shortcut 2: picked %q, selected %d", picked, m.Selected)
	}
	picked = ""
	m, _ = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if picked != "" || m.Selected != 1 {
		t.Errorf("shortcut to a disabled item should do nothing: picked %q, selected %d", picked, m.Selected)
	}

	if m.Select(3) {
		t.Error("Select should refuse a disabled item")
	}
	if !strings.Contains(m.View(), "─") {
		t.Error("divider not rendered")
	}
}

func TestProgressBar_Percent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if v := NewProgressBar("Round", 2, 3, 40).View(); !strings.Contains(v, "2/3") {
		t.Errorf("view missing count: %q", v)
	}
}
