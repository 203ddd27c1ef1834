package iso

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"slices"

	"github.com/matzehuels/isocheck/pkg/graph"
)

// Certificate is a canonical encoding of a graph. Two graphs are isomorphic
// exactly when their certificates are byte-identical.
//
// Layout (all integers uvarint): node count, edge count, then for each rank
// a label flag byte (0 absent, 1 present) followed by the length-prefixed
// label, then for each rank its degree followed by its sorted neighbor ranks.
type Certificate []byte

// Hash returns the hex SHA-256 digest of the certificate, suitable as a
// compact cache key or display value.
func (c Certificate) Hash() string {
	sum := sha256.Sum256(c)
	return hex.EncodeToString(sum[:])
}

// Compare orders certificates lexicographically by bytes.
func (c Certificate) Compare(o Certificate) int { return bytes.Compare(c, o) }

// Equal reports whether two certificates are byte-identical.
func (c Certificate) Equal(o Certificate) bool { return bytes.Equal(c, o) }

// certify encodes g under the ordering where order[r] is the node at rank r.
func certify(g *graph.Graph, order []int) Certificate {
	rank := make([]int, len(order))
	for r, v := range order {
		rank[v] = r
	}

	buf := binary.AppendUvarint(nil, uint64(len(order)))
	buf = binary.AppendUvarint(buf, uint64(g.EdgeCount()))
	for _, v := range order {
		label, ok := g.LabelAt(v)
		if !ok {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		buf = binary.AppendUvarint(buf, uint64(len(label)))
		buf = append(buf, label...)
	}

	var nbrs []int
	for _, v := range order {
		nbrs = nbrs[:0]
		for _, u := range g.NeighborIndices(v) {
			nbrs = append(nbrs, rank[u])
		}
		slices.Sort(nbrs)
		buf = binary.AppendUvarint(buf, uint64(len(nbrs)))
		for _, r := range nbrs {
			buf = binary.AppendUvarint(buf, uint64(r))
		}
	}
	return buf
}
