package cli

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"status", "networks", "layout", "style", "table", "view", "session", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}
}

func TestParseEdges(t *testing.T) {
	tests := []struct {
		input   string
		count   int
		wantErr bool
	}{
		{"", 0, false},
		{"a-b", 1, false},
		{"a-b,b-c,c-a", 3, false},
		{"a-b, c-d", 2, false},
		{"ab", 0, true},
		{"a-", 0, true},
		{"-b", 0, true},
	}
	for _, tt := range tests {
		edges, err := parseEdges(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseEdges(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseEdges(%q): %v", tt.input, err)
			continue
		}
		if len(edges) != tt.count {
			t.Errorf("parseEdges(%q) = %d edges, want %d", tt.input, len(edges), tt.count)
		}
	}
}

func TestParseProperties(t *testing.T) {
	props, err := parseProperties([]string{"NODE_FILL_COLOR=#FF0000", "NODE_SIZE=40"})
	if err != nil {
		t.Fatalf("parseProperties: %v", err)
	}
	if len(props) != 2 || props[0].Name != "NODE_FILL_COLOR" || props[0].Value != "#FF0000" {
		t.Errorf("props = %+v", props)
	}

	if _, err := parseProperties([]string{"bogus"}); err == nil {
		t.Error("missing '=' should fail")
	}
	if _, err := parseProperties([]string{"=value"}); err == nil {
		t.Error("empty property name should fail")
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"net.png", "PNG"},
		{"net.PDF", "PDF"},
		{"net.svg", "SVG"},
		{"net.jpg", "JPEG"},
		{"net.jpeg", "JPEG"},
		{"net", "PNG"},
		{"net.unknown", "PNG"},
	}
	for _, tt := range tests {
		if got := formatFromExt(tt.path); got != tt.want {
			t.Errorf("formatFromExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !isNumeric("52") {
		t.Error("52 is numeric")
	}
	if isNumeric("galFiltered") || isNumeric("") || isNumeric("5a2") {
		t.Error("non-numeric inputs misclassified")
	}
}

func TestNetworkListModelNavigation(t *testing.T) {
	entries := []networkEntry{
		{id: "52", name: "galFiltered"},
		{id: "104", name: "yeast"},
		{id: "208", name: "demo"},
	}
	m := NewNetworkListModel(entries)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	model, _ := m.Update(down)
	model, _ = model.Update(down)

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	model, _ = model.Update(enter)

	selected := model.(NetworkListModel).Selected
	if selected == nil || selected.id != "208" {
		t.Errorf("selected = %+v, want the third entry", selected)
	}
}

func TestNetworkListModelQuitWithoutSelection(t *testing.T) {
	m := NewNetworkListModel([]networkEntry{{id: "52", name: "galFiltered"}})
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(NetworkListModel).Selected != nil {
		t.Error("esc must not select")
	}
}
