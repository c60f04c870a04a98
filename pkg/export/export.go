// Package export reads and writes graphs and build inputs, and computes the
// content fingerprint of a graph.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/OFFIS-RIT/provgraph/pkg/common"

	"github.com/gowebpki/jcs"
)

// WriteJSON writes graph as indented JSON. The output of two builds over the
// same input is byte-identical.
func WriteJSON(w io.Writer, graph *common.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized(graph)); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// WriteFile writes graph to path, or to stdout when path is "-".
func WriteFile(path string, graph *common.Graph) error {
	if path == "-" {
		return WriteJSON(os.Stdout, graph)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, graph); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a graph written by WriteJSON. Unknown fields are
// rejected. Numeric attribute values come back as float64.
func ReadJSON(r io.Reader) (*common.Graph, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var graph common.Graph
	if err := dec.Decode(&graph); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return normalized(&graph), nil
}

// ReadFile reads a graph from path.
func ReadFile(path string) (*common.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// Fingerprint returns the hex SHA-256 digest of the RFC 8785 canonical JSON
// form of graph. It only depends on graph content: a graph read back from
// disk has the same fingerprint as the one that was written.
func Fingerprint(graph *common.Graph) (string, error) {
	raw, err := json.Marshal(normalized(graph))
	if err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize graph: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// normalized returns a shallow copy of graph in which nil collections are
// empty, so "no attributes" always serializes as {} and "no edges" as [].
func normalized(graph *common.Graph) *common.Graph {
	out := &common.Graph{Nodes: []common.Node{}, Edges: []common.Edge{}}
	if graph == nil {
		return out
	}
	for _, n := range graph.Nodes {
		if n.Attributes == nil {
			n.Attributes = map[string]any{}
		}
		if n.Sources == nil {
			n.Sources = []common.SourceRef{}
		}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range graph.Edges {
		if e.Sources == nil {
			e.Sources = []common.SourceRef{}
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

// Equal reports whether two graphs have the same canonical content.
func Equal(a, b *common.Graph) (bool, error) {
	fa, err := Fingerprint(a)
	if err != nil {
		return false, err
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false, err
	}
	return fa == fb, nil
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeAll(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}
