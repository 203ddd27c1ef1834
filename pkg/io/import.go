package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	isoerrors "github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
)

type document struct {
	Nodes *[]node `json:"nodes"`
	Edges *[]edge `json:"edges"`
}

type node struct {
	ID    json.RawMessage `json:"id"`
	Label *string         `json:"label,omitempty"`
}

type edge struct {
	Source json.RawMessage `json:"source"`
	Target json.RawMessage `json:"target"`
}

// ReadJSON decodes a JSON graph from r into an immutable [graph.Graph].
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": 0, "label": "in"}, {"id": 1}],
//	  "edges": [{"source": 0, "target": 1}]
//	}
//
// Both keys are required, even when the arrays are empty, and the object
// must be the only value in the input. Other top-level keys are ignored.
//
// Node ids may be any JSON scalar (string, number or boolean); they are
// normalized to their textual form, so 1, 1.0 and "1" name the same node.
// Labels are optional strings; a missing or null label means "no label".
//
// Edges are undirected. ReadJSON returns a MALFORMED_GRAPH error if:
//   - The JSON is malformed, "nodes" or "edges" is missing, or the
//     object is followed by more data
//   - An id is not a scalar
//   - A node has a duplicate or empty id
//   - An edge references an unknown node id
//   - An edge is a self-loop or repeats an earlier edge
//
// Errors are wrapped with context describing which node or edge caused the
// problem; errors.Is works against the graph package sentinels.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeMalformedGraph, err, "decode")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, isoerrors.New(isoerrors.ErrCodeMalformedGraph, "unexpected data after graph object")
	}
	if data.Nodes == nil {
		return nil, isoerrors.New(isoerrors.ErrCodeMalformedGraph, `missing "nodes" array`)
	}
	if data.Edges == nil {
		return nil, isoerrors.New(isoerrors.ErrCodeMalformedGraph, `missing "edges" array`)
	}

	b := graph.NewBuilder()
	for i, n := range *data.Nodes {
		id, err := scalarID(n.ID)
		if err != nil {
			return nil, isoerrors.Wrap(isoerrors.ErrCodeMalformedGraph, err, "node #%d", i)
		}
		nd := graph.Unlabeled(id)
		if n.Label != nil {
			nd = graph.Labeled(id, *n.Label)
		}
		if err := b.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
	}
	for i, e := range *data.Edges {
		src, err := scalarID(e.Source)
		if err != nil {
			return nil, isoerrors.Wrap(isoerrors.ErrCodeMalformedGraph, err, "edge #%d source", i)
		}
		dst, err := scalarID(e.Target)
		if err != nil {
			return nil, isoerrors.Wrap(isoerrors.ErrCodeMalformedGraph, err, "edge #%d target", i)
		}
		if err := b.AddEdge(src, dst); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", src, dst, err)
		}
	}

	return b.Build(), nil
}

// Unmarshal decodes a JSON graph held in memory. See [ReadJSON].
func Unmarshal(data []byte) (*graph.Graph, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// A missing file is reported as FILE_NOT_FOUND; any other open failure is
// returned wrapped with the path. Decoding errors are those of [ReadJSON].
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, isoerrors.Wrap(isoerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

var errNotScalar = errors.New("id must be a string, number or boolean")

// scalarID normalizes a JSON scalar to the node ID it denotes.
func scalarID(raw json.RawMessage) (graph.NodeID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", graph.ErrEmptyNodeID
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[', 'n':
		return "", errNotScalar
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return numericID(n)
	}
}

// numericID spells equal numbers the same way: 1, 1.0 and 1e0 all become "1".
func numericID(n json.Number) (graph.NodeID, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return "", err
	}
	if f == 0 {
		return "0", nil
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
