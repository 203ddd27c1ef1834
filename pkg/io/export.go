package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/isocheck/pkg/graph"
)

type outDocument struct {
	Nodes []outNode `json:"nodes"`
	Edges []outEdge `json:"edges"`
}

type outNode struct {
	ID    string  `json:"id"`
	Label *string `json:"label,omitempty"`
}

type outEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// WriteJSON encodes g as JSON and writes it to w.
// Nodes keep their declaration order and edges follow [graph.Graph.Edges].
// Ids are always written as strings, so numeric ids read by [ReadJSON]
// round-trip to the same node names but not the same JSON type.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal encodes g as compact JSON.
func Marshal(g *graph.Graph) ([]byte, error) {
	data, err := json.Marshal(toDocument(g))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

func toDocument(g *graph.Graph) outDocument {
	decls := g.Declarations()
	edges := g.Edges()
	out := outDocument{
		Nodes: make([]outNode, len(decls)),
		Edges: make([]outEdge, len(edges)),
	}
	for i, n := range decls {
		out.Nodes[i] = outNode{ID: n.ID}
		if n.HasLabel {
			label := n.Label
			out.Nodes[i].Label = &label
		}
	}
	for i, e := range edges {
		out.Edges[i] = outEdge{Source: e.Source, Target: e.Target}
	}
	return out
}
