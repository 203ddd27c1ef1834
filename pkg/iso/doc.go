// Package iso decides whether two graphs are isomorphic.
//
// # Engines
//
// Three engines are registered, selectable by name or by a display alias:
//
//	canonical         (Nauty-Traces)               exact, certificate based
//	color-refinement  (Weisfeiler-Lehman)          fast, positives are heuristic
//	backtracking      (Laszlo-Babai (simplified))  exact, explicit bijection
//
// The canonical engine computes a [Certificate] for each graph by
// individualization and refinement ([Canonicalize]) and compares bytes.
// Certificates can be cached and compared later with [Compare].
//
// The color-refinement engine compares the refinement histories of both
// graphs (see pkg/refine). A difference proves non-isomorphism; equality
// does not prove isomorphism, so such results have [Result.Heuristic] set.
//
// The backtracking engine ([Match]) assigns nodes one at a time, restricted
// to corresponding refinement classes and checked against every earlier
// assignment.
//
// # Usage
//
//	res, err := iso.Check(ctx, g1, g2, "canonical")
//	if err != nil {
//	    return err // UNKNOWN_ALGORITHM, MALFORMED_GRAPH, TIMEOUT or CANCELED
//	}
//	if res.Matched {
//	    fmt.Println(res.Witness)
//	}
//
// Every check first compares node and edge counts; a mismatch is a negative
// verdict with [Result.Prefiltered] set and no engine runs.
//
// # Cancellation
//
// The exact engines are exponential in the worst case. They poll the
// context between search steps and stop with ctx.Err(), which [Check]
// converts into a TIMEOUT or CANCELED coded error.
//
// # Concurrency
//
// Engines hold no state. Any number of checks may run concurrently on the
// same graphs.
package iso
