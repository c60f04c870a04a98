// Package mermaid renders a graph as a Mermaid flowchart.
package mermaid

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
)

type style struct {
	fill   string
	stroke string
	width  string
}

var knownStyles = map[string]style{
	"Company":    {"#e3f2fd", "#1976d2", "2px"},
	"Platform":   {"#f3e5f5", "#7b1fa2", "2px"},
	"Service":    {"#e8f5e9", "#388e3c", "2px"},
	"Partner":    {"#fff3e0", "#f57c00", "2px"},
	"Capability": {"#f1f8e9", "#689f38", "2px"},
	"Event":      {"#ffebee", "#d32f2f", "2px"},
	"Source":     {"#f5f5f5", "#616161", "1px"},
}

// palette styles types outside the default ontology, in order of appearance.
var palette = []style{
	{"#e0f7fa", "#0097a7", "2px"},
	{"#fce4ec", "#c2185b", "2px"},
	{"#ede7f6", "#512da8", "2px"},
	{"#fffde7", "#fbc02d", "2px"},
}

type group struct {
	typ   string
	nodes []common.Node
}

// Render returns the Mermaid source for graph. Nodes are grouped into one
// subgraph per type, in the order the types first appear in graph.Nodes,
// which for a built graph is the ontology's type-group order. Non-empty
// attributes are shown under the label.
func Render(graph *common.Graph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	if graph == nil {
		return b.String()
	}

	groups := groupByType(graph.Nodes)
	for _, g := range groups {
		fmt.Fprintf(&b, "    subgraph %s\n", plural(g.typ))
		for _, n := range g.nodes {
			fmt.Fprintf(&b, "        %s[\"%s\"]\n", n.ID, nodeLabel(n))
		}
		b.WriteString("    end\n")
	}

	b.WriteString("\n")
	for _, e := range graph.Edges {
		fmt.Fprintf(&b, "    %s -->|%s| %s\n", e.FromID, e.Relation, e.ToID)
	}

	b.WriteString("\n    %% styling\n")
	for _, g := range groups {
		ids := make([]string, len(g.nodes))
		for i, n := range g.nodes {
			ids[i] = n.ID
		}
		fmt.Fprintf(&b, "    class %s %s\n", strings.Join(ids, ","), className(g.typ))
	}
	b.WriteString("\n")
	extra := 0
	for _, g := range groups {
		s, ok := knownStyles[g.typ]
		if !ok {
			s = palette[extra%len(palette)]
			extra++
		}
		fmt.Fprintf(&b, "    classDef %s fill:%s,stroke:%s,stroke-width:%s\n", className(g.typ), s.fill, s.stroke, s.width)
	}

	return b.String()
}

func groupByType(nodes []common.Node) []group {
	var groups []group
	index := make(map[string]int)
	for _, n := range nodes {
		i, ok := index[n.Type]
		if !ok {
			i = len(groups)
			index[n.Type] = i
			groups = append(groups, group{typ: n.Type})
		}
		groups[i].nodes = append(groups[i].nodes, n)
	}
	return groups
}

func nodeLabel(n common.Node) string {
	parts := []string{escape(n.Label)}
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := n.Attributes[k]
		if isEmpty(v) {
			continue
		}
		parts = append(parts, escape(k+": "+formatValue(v)))
	}
	return strings.Join(parts, "<br/>")
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return strings.Join(items, ", ")
	}
	return fmt.Sprint(v)
}

// isEmpty reports whether v is a zero scalar or an empty collection.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}

// escape replaces characters that end a quoted Mermaid label.
func escape(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "\n", " ").Replace(s)
}

func className(typ string) string {
	return strings.ToLower(typ)
}

// plural names a subgraph after its type, e.g. Company -> Companies.
func plural(typ string) string {
	switch {
	case strings.HasSuffix(typ, "y") && len(typ) > 1 && !strings.ContainsRune("aeiou", rune(typ[len(typ)-2])):
		return typ[:len(typ)-1] + "ies"
	case strings.HasSuffix(typ, "s"), strings.HasSuffix(typ, "x"), strings.HasSuffix(typ, "ch"), strings.HasSuffix(typ, "sh"):
		return typ + "es"
	default:
		return typ + "s"
	}
}
