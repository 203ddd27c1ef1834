// Package io provides JSON import and export for undirected labeled graphs.
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": 0, "label": "input"},
//	    {"id": 1},
//	    {"id": "out", "label": "output"}
//	  ],
//	  "edges": [
//	    {"source": 0, "target": 1},
//	    {"source": 1, "target": "out"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique scalar identifier (string, number or boolean)
//
// Optional:
//   - label: String label; nodes only correspond when labels are equal
//
// # Edge Fields
//
// Required:
//   - source, target: Ids of declared nodes. Edges are undirected, so
//     {"source": 1, "target": 0} repeats {"source": 0, "target": 1}.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, [ReadJSON] to read from
// any io.Reader, or [Unmarshal] for bytes:
//
//	g, err := io.ImportJSON("scheme1.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every function validates the structure and returns MALFORMED_GRAPH coded
// errors (see pkg/errors) for duplicate ids, unknown endpoints, self-loops
// and duplicate edges.
//
// # Export
//
// Use [ExportJSON], [WriteJSON] or [Marshal]. Export preserves declaration
// order and labels, so import → export → import yields an identical graph.
//
// # Concurrency
//
// All functions are safe to call concurrently; graphs are immutable.
package io
