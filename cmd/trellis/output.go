package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

// styles colours the terminal output. The zero value prints plain text.
type styles struct {
	enabled bool
	header  lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style
	focused lipgloss.Style
	hovered lipgloss.Style
	off     lipgloss.Style
}

func newStyles(color bool) styles {
	return styles{
		enabled: color,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		name:    lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		hovered: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		off:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s styles) heading(w io.Writer, title string) {
	fmt.Fprintln(w, s.render(s.header, title))
}

// printOutline writes one line per widget: type, id, window origin, size
// and status tags, indented by depth.
func printOutline(w io.Writer, h *harness.TestHarness, st styles) {
	var walk func(ref retained.WidgetRef, depth int)
	walk = func(ref retained.WidgetRef, depth int) {
		fmt.Fprintln(w, strings.Repeat("  ", depth)+outlineLine(h, ref, st))
		for _, child := range ref.Children() {
			walk(child, depth+1)
		}
	}
	walk(h.Get(h.Root().RootID()), 0)
}

func outlineLine(h *harness.TestHarness, ref retained.WidgetRef, st styles) string {
	s := ref.State()
	origin := s.WindowTransform.TransformPoint(gg.Point{})
	line := fmt.Sprintf("%s %s",
		st.render(st.name, s.TypeName),
		st.render(st.dim, fmt.Sprintf("#%d (%g,%g %gx%g)", s.ID, origin.X, origin.Y, s.Size.Width, s.Size.Height)))

	var tags []string
	if s.ID == h.Focused() {
		tags = append(tags, st.render(st.focused, "focused"))
	}
	if s.IsHovered {
		tags = append(tags, st.render(st.hovered, "hovered"))
	}
	if s.IsDisabled {
		tags = append(tags, st.render(st.off, "disabled"))
	}
	if s.IsStashed {
		tags = append(tags, st.render(st.off, "stashed"))
	}
	if len(tags) > 0 {
		line += " [" + strings.Join(tags, " ") + "]"
	}
	return line
}

// describe returns "Type#id", or "none" for the zero id.
func describe(h *harness.TestHarness, id retained.WidgetID) string {
	if id == 0 {
		return "none"
	}
	ref, ok := h.Root().GetWidget(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s#%d", ref.State().TypeName, id)
}
