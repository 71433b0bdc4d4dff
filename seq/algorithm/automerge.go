package algorithm

import "github.com/textloom/seqcrdt/seq"

// integrateAutomerge orders siblings by descending Seq, then by agent
// ascending (§4.7). The reference implementation orders agent descending;
// this core inverts that choice for cross-algorithm consistency — see
// DESIGN.md.
func integrateAutomerge[T any](doc *seq.Document[T], item seq.Item[T], hint int) error {
	if err := seq.CheckAndAdvance(doc, item.ID); err != nil {
		return err
	}
	if item.Seq < 0 {
		panic("automerge: item.Seq must be non-negative")
	}

	parent, err := seq.FindItem(doc, item.OriginLeft, false, hint-1)
	if err != nil {
		return err
	}
	destIdx := parent + 1

	lostConflict := false

loop:
	for destIdx < len(doc.Content) {
		o := doc.Content[destIdx]

		// Fast-path: every branch below that doesn't break guarantees
		// o.Seq >= item.Seq, so a strictly-greater item.Seq always wins.
		if item.Seq > o.Seq {
			break loop
		}

		oparent, err := seq.FindItem(doc, o.OriginLeft, false, destIdx)
		if err != nil {
			return err
		}

		switch {
		case oparent < parent:
			break loop
		case oparent == parent:
			switch {
			case item.Seq > o.Seq:
				break loop
			case item.Seq == o.Seq:
				if item.ID.Agent < o.ID.Agent {
					break loop
				}
				lostConflict = true
			default: // item.Seq < o.Seq
				lostConflict = true
			}
		default: // oparent > parent
			if !lostConflict {
				panic("automerge: expected a prior lost conflict before skipping a sibling subtree")
			}
		}
		destIdx++
	}

	seq.Splice(doc, destIdx, item)
	return nil
}
