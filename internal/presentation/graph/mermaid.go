package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
)

// GraphOverlay carries compatibility data to visualize on the graph.
type GraphOverlay struct {
	// Scores maps a state name to its best compatibility with the other protocol.
	Scores map[string]float64
	// Threshold splits states into "matched" and "unmatched" classes.
	Threshold float64
}

// GenerateMermaid produces a Mermaid flowchart for a protocol graph.
// It applies semantic styling:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Normal: [Rectangle]
// Emissions are labelled "!name(params)", receptions "?name(params)", tau moves are dotted.
// It also applies overlay styles (matched/unmatched) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range g.States() {
		safeID := sanitizeMermaidID(s.Name())

		opener, closer := "[", "]"
		switch s.Kind() {
		case domain.StateInitial:
			opener, closer = "((", "))"
		case domain.StateFinal:
			opener, closer = "(((", ")))"
		case domain.StateNormal:
		}

		label := s.Name()
		if overlay != nil {
			if score, ok := overlay.Scores[s.Name()]; ok {
				label = fmt.Sprintf("%s <br/> %.3f", s.Name(), score)
			}
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, t := range s.Outgoing() {
			safeTo := sanitizeMermaidID(t.Target())
			params := strings.ReplaceAll(strings.Join(t.Params(), ", "), "\"", "'")

			var arrow string
			switch t.Kind() {
			case domain.TransitionEmission:
				arrow = fmt.Sprintf("-- \"!%s(%s)\" -->", t.Name(), params)
			case domain.TransitionReception:
				arrow = fmt.Sprintf("-- \"?%s(%s)\" -->", t.Name(), params)
			case domain.TransitionTau:
				arrow = fmt.Sprintf("-. \"τ %s\" .->", t.Name())
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil && len(overlay.Scores) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef matched fill:#e8f5e9,stroke:#1b5e20,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef unmatched fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")

		names := make([]string, 0, len(overlay.Scores))
		for name := range overlay.Scores {
			if g.State(name) != nil {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			class := "unmatched"
			if overlay.Scores[name] >= overlay.Threshold {
				class = "matched"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(name), class))
		}
	}

	return sb.String()
}

// BestScores returns, for every state of one side of m, its highest score
// against any state of the other side. first selects the graph-1 side (columns).
func BestScores(m *matrix.Matrix, first bool) map[string]float64 {
	best := make(map[string]float64)
	for _, r := range m.Rows() {
		values, _ := m.Row(r)
		for c, col := range m.Cols() {
			name := r
			if first {
				name = col
			}
			if v, ok := best[name]; !ok || values[c] > v {
				best[name] = values[c]
			}
		}
	}
	return best
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
