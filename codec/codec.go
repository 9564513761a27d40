// Package codec round-trips a forest through a byte stream without
// recursion, so chains of 10^5+ nodes never blow the call stack (§4.3,
// §9). The wire shape is a flat mapping id -> (parent_id_or_zero,
// child_ids); both encode and decode walk the tree from its genesis roots
// with an explicit stack rather than Go recursion.
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/clademark/phyloforest/forest"
)

// magic identifies a phylogenetic-forest stream, per §6.
const magic = "PFOR"

// version is bumped if the wire shape changes incompatibly.
const version = uint32(1)

// ErrCorruptStream is returned by Read when the stream does not begin
// with the expected magic/version header, or its lengths are
// inconsistent with the declared entry count.
var ErrCorruptStream = fmt.Errorf("codec: corrupt stream")

// record is the flat id -> (parent, children) wire entry of §4.3/§6.
type record struct {
	id       int64
	parent   int64 // 0 means "no parent" (genesis)
	children []int64
}

// Write serializes f to w as a tagged stream: magic, version, entry
// count, then one record per node. Order of entries is irrelevant; no
// recursion proportional to tree depth ever occurs because the tree is
// walked with an explicit stack.
func Write(w io.Writer, f *forest.Forest) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, version); err != nil {
		return err
	}

	records := collectRecords(f)
	if err := binary.Write(bw, binary.BigEndian, uint64(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeRecord(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// collectRecords flattens a forest into records by walking down from each
// genesis root with an explicit stack. Child links to IDs no longer in the
// forest (left behind by pruning) are skipped, so only the forest's own
// nodes are written.
func collectRecords(f *forest.Forest) []record {
	records := make([]record, 0, f.Len())
	for _, root := range f.Genesis() {
		// Genesis nodes need to be visited too; walk with an explicit
		// stack (not Go recursion) to pick up every node reachable from
		// roots, since Forest does not expose its raw node map.
		stack := []*forest.Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			var parentID int64
			if p := n.Parent(); p != nil {
				parentID = p.ID
			}
			children := n.Children()
			childIDs := make([]int64, 0, len(children))
			for _, c := range children {
				if !f.Has(c.ID) {
					continue
				}
				childIDs = append(childIDs, c.ID)
				stack = append(stack, c)
			}
			records = append(records, record{id: n.ID, parent: parentID, children: childIDs})
		}
	}
	return records
}

func writeRecord(w io.Writer, rec record) error {
	if err := binary.Write(w, binary.BigEndian, rec.id); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, rec.parent); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(rec.children))); err != nil {
		return err
	}
	for _, c := range rec.children {
		if err := binary.Write(w, binary.BigEndian, c); err != nil {
			return err
		}
	}
	return nil
}

// Read restores a forest from a stream written by Write. It makes two
// passes over the flat mapping: once to allocate every node, once to
// wire parent and child links, so restore cost is proportional to node
// count, never to chain depth. Orphan child IDs — referenced as a child
// but absent from the mapping — are dropped silently, tolerating
// hand-edited streams that pruned subtrees (§4.3's one deliberate
// lossiness).
func Read(r io.Reader) (*forest.Forest, error) {
	br := bufio.NewReader(r)

	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(br, buf); err != nil || string(buf) != magic {
		return nil, ErrCorruptStream
	}
	var gotVersion uint32
	if err := binary.Read(br, binary.BigEndian, &gotVersion); err != nil || gotVersion != version {
		return nil, ErrCorruptStream
	}

	var count uint64
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return nil, ErrCorruptStream
	}

	records := make([]record, 0, count)
	for i := uint64(0); i < count; i++ {
		rec, err := readRecord(br)
		if err != nil {
			return nil, ErrCorruptStream
		}
		records = append(records, rec)
	}

	return assemble(records)
}

func readRecord(r io.Reader) (record, error) {
	var rec record
	if err := binary.Read(r, binary.BigEndian, &rec.id); err != nil {
		return rec, err
	}
	if err := binary.Read(r, binary.BigEndian, &rec.parent); err != nil {
		return rec, err
	}
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return rec, err
	}
	rec.children = make([]int64, n)
	for i := range rec.children {
		if err := binary.Read(r, binary.BigEndian, &rec.children[i]); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// Edge is the minimal parent-link fact assemble needs to rebuild a
// forest: a node's own ID and its parent (0 for a genesis root). It lets
// a caller that already has per-node parent links in some other storage
// form — a KV backend iterating its own key space, say — reuse the same
// allocate-then-wire restore logic as Read without going through the
// tagged stream format.
type Edge struct {
	ID     int64
	Parent int64
}

// AssembleFromEdges rebuilds a forest from a flat parent-link list using
// the same two-pass, non-recursive approach as Read/assemble. Orphan
// parent references are dropped silently, matching Read's behavior.
func AssembleFromEdges(edges []Edge) (*forest.Forest, error) {
	records := make([]record, len(edges))
	for i, e := range edges {
		records[i] = record{id: e.ID, parent: e.Parent}
	}
	return assemble(records)
}

// assemble performs the two allocate-then-wire passes described above.
// Sibling order matters: §4.1 only requires a child's ID to exceed its
// parent's, not that siblings were added in ascending-ID order, so
// assemble must replay each parent's children in their originally
// recorded order rather than a global ID sort.
func assemble(records []record) (*forest.Forest, error) {
	present := make(map[int64]bool, len(records))
	var genesisIDs []int64
	hasChildInfo := false
	for _, rec := range records {
		present[rec.id] = true
		if rec.parent == 0 {
			genesisIDs = append(genesisIDs, rec.id)
		}
		if len(rec.children) > 0 {
			hasChildInfo = true
		}
	}

	childrenOf := make(map[int64][]int64, len(records))
	if hasChildInfo {
		// Each record already carries that node's own sibling order
		// (collectRecords reads it straight off forest.Node.Children());
		// trust it directly instead of re-deriving it from parent links.
		for _, rec := range records {
			if len(rec.children) > 0 {
				childrenOf[rec.id] = rec.children
			}
		}
	} else {
		// No per-parent order was recorded at all (AssembleFromEdges
		// callers only carry bare parent links): fall back to the order
		// the edges were supplied in.
		for _, rec := range records {
			if rec.parent != 0 {
				childrenOf[rec.parent] = append(childrenOf[rec.parent], rec.id)
			}
		}
	}

	f, err := forest.New(genesisIDs)
	if err != nil {
		return nil, err
	}

	// Walk from the genesis roots with an explicit stack, wiring each
	// parent's children in their recorded order before descending into
	// them. A parent is always visited before its children fall out of
	// the traversal itself, so this needs no global ID sort and performs
	// no recursion proportional to chain depth. An orphan reference (a
	// declared parent pruned from the stream, or a child ID missing from
	// the mapping) is simply never reached and so is dropped silently,
	// §4.3's one deliberate lossiness.
	stack := append([]int64(nil), genesisIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, childID := range childrenOf[id] {
			if !present[childID] {
				continue
			}
			if err := f.AddChild(id, childID); err != nil {
				return nil, fmt.Errorf("codec: %w", err)
			}
			stack = append(stack, childID)
		}
	}

	return f, nil
}
