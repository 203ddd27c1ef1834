// Package pkg provides the core libraries for isocheck graph isomorphism
// testing.
//
// # Overview
//
// isocheck decides whether two undirected, optionally node-labeled graphs
// are isomorphic. The pkg directory is organized into three areas:
//
//  1. Domain logic: [graph], [refine], [iso]
//  2. Infrastructure: [io], [cache], [errors], [observability], [buildinfo]
//  3. Orchestration: [pipeline] (load, check, cache)
//
// # Architecture
//
// The typical data flow through isocheck:
//
//	JSON graph files
//	       ↓
//	  [io] package (decode and validate)
//	       ↓
//	  [graph] package (immutable graph with dense indices)
//	       ↓
//	  [refine] package (color refinement, partitions)
//	       ↓
//	  [iso] package (canonical, color-refinement or backtracking engine)
//	       ↓
//	  verdict, witness mapping, certificate
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/isocheck/pkg/io"
//	    "github.com/matzehuels/isocheck/pkg/iso"
//	)
//
//	g1, _ := io.ImportJSON("a.json")
//	g2, _ := io.ImportJSON("b.json")
//	res, err := iso.Check(context.Background(), g1, g2, "canonical")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Matched, res.Witness)
//
// # Main Packages
//
//   - [graph]: Graph, Node and Edge types, construction checks, relabeling
//   - [refine]: Partition, 1-dimensional Weisfeiler-Leman refinement
//   - [iso]: engines, registry, certificates and the Check entry point
//   - [io]: JSON import and export
//   - [cache]: file, Redis and null caches for certificates and verdicts
//   - [pipeline]: end-to-end checks shared by the CLI and the HTTP API
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for metrics and tracing
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/graph
// [refine]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/refine
// [iso]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/iso
// [io]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/isocheck/pkg/buildinfo
package pkg
