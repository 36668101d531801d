// Package inspect renders a trained rule set for human review, both as
// plain text and as a scrollable terminal UI.
package inspect

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mbarbey/nfgrid/internal/rules"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#14B8A6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	classStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F97316"))
	supportStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)

// Render produces the full inspection text for a rule set: one section per
// feature listing the membership functions in use, then one line per rule.
func Render(set *rules.Set, title string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d features, %d rules", set.Features(), set.Len())))
	b.WriteString("\n\n")

	for feat := 0; feat < set.Features(); feat++ {
		b.WriteString(headerStyle.Render(fmt.Sprintf("feature %d", feat)))
		b.WriteByte('\n')
		for _, idx := range usedFunctions(set, feat) {
			m := set.Partitions[feat][idx]
			b.WriteString(fmt.Sprintf("  mf %d: %s\n", idx, supportStyle.Render(
				fmt.Sprintf("[%.3f, %.3f, %.3f]",
					m.Lo(set.Arena), m.Center(set.Arena), m.Hi(set.Arena)))))
		}
		b.WriteByte('\n')
	}

	b.WriteString(headerStyle.Render("rules"))
	b.WriteByte('\n')
	if set.Len() == 0 {
		b.WriteString(dimStyle.Render("  (none survived pruning)"))
		b.WriteByte('\n')
		return b.String()
	}
	for _, r := range set.Rules {
		var parts []string
		for feat := range r.Cell {
			m := set.MF(r, feat)
			parts = append(parts, fmt.Sprintf("f%d in [%.3f, %.3f]",
				feat, m.Lo(set.Arena), m.Hi(set.Arena)))
		}
		b.WriteString(fmt.Sprintf("  %s => %s\n",
			strings.Join(parts, " and "), classStyle.Render(string(r.Class))))
	}
	return b.String()
}

// usedFunctions returns the sorted partition indices that at least one rule
// references on the given feature.
func usedFunctions(set *rules.Set, feat int) []int {
	seen := make(map[int]bool)
	for _, r := range set.Rules {
		seen[r.Cell[feat]] = true
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
