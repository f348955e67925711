package tui

import (
	"fmt"
	"strings"

	"treeline-cli/internal/docs"
	"treeline-cli/internal/model"
	"treeline-cli/internal/outline"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	st := m.st.State()
	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Treeline  %s  (%d nodes)", m.store.Dir, len(st.Nodes)))

	body := m.viewRows()

	var extra string
	switch m.mode {
	case inputRename:
		extra = renderInputLine(m.width-2, "rename: "+m.input.View())
	case inputCreate:
		extra = renderInputLine(m.width-2, "new node: "+m.input.View())
	}

	footer := styleMuted().Render("↑/↓ select · tab/shift+tab indent · alt+↑/↓ move · enter new · f2 rename · ? help · q quit")
	if m.status != "" {
		footer = styleMuted().Render(m.status)
	}

	parts := []string{header, "", body}
	if extra != "" {
		parts = append(parts, "", extra)
	}
	parts = append(parts, "", footer)
	return strings.Join(parts, "\n")
}

func (m appModel) viewRows() string {
	st := m.st.State()
	visible := outline.Visible(st.Roots, st.Expanded)
	if len(visible) == 0 {
		return styleMuted().Render("No nodes yet. Use `treeline add` or press enter to create one.")
	}

	bodyH := m.height - 6
	if bodyH < 4 {
		bodyH = 4
	}
	top := scrollOffset(visible, st.SelectedID, bodyH)

	var b strings.Builder
	for i := top; i < len(visible) && i < top+bodyH; i++ {
		if i > top {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(visible[i], st))
	}
	return b.String()
}

// scrollOffset keeps the selected row inside a window of h rows.
func scrollOffset(visible []*model.TreeNode, selectedID string, h int) int {
	sel := 0
	for i, tn := range visible {
		if tn.ID == selectedID {
			sel = i
			break
		}
	}
	top := sel - h/2
	if top > len(visible)-h {
		top = len(visible) - h
	}
	if top < 0 {
		top = 0
	}
	return top
}

func (m appModel) renderRow(tn *model.TreeNode, st model.TreeState) string {
	twisty := "•"
	if len(tn.Children) > 0 {
		if st.Expanded[tn.ID] {
			twisty = "▾"
		} else {
			twisty = "▸"
		}
	}

	title := tn.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}

	line := strings.Repeat("  ", tn.Depth) + twisty + " " + title

	w := m.width - 2
	if w < 10 {
		w = 10
	}
	if xansi.StringWidth(line) > w {
		line = xansi.Cut(line, 0, w)
	}

	switch {
	case tn.ID == st.SelectedID:
		return styleSelected().Render(line)
	case tn.Placeholder:
		return stylePlaceholder().Render(line)
	default:
		return line
	}
}

func (m appModel) viewHelp() string {
	body, ok := docs.Get("keyboard")
	if !ok {
		body = "No help available."
	}
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	out := renderMarkdown(body, w)
	return out + "\n\n" + styleMuted().Render("press any key to close")
}

// renderInputLine renders a single-line text input. Newlines are stripped so
// cursor styling never triggers wrap artifacts, and ANSI styling is
// terminated at the clip edge to prevent bleed.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
