package algorithm

import "github.com/textloom/seqcrdt/seq"

// integrateYjsMod places item at its canonical index using the
// two-dimensional (oleft vs left, oright vs right) scan of §4.5. The
// scanning flag defers commitment past a foreign run anchored at the same
// parent until either a direct anchor collision is resolved by agent, or
// the foreign run's right edge is reached — the mechanism that avoids
// interleaving concurrent same-parent runs.
func integrateYjsMod[T any](doc *seq.Document[T], item seq.Item[T], hint int) error {
	if err := seq.CheckAndAdvance(doc, item.ID); err != nil {
		return err
	}

	left, err := seq.FindItem(doc, item.OriginLeft, false, hint-1)
	if err != nil {
		return err
	}
	right, err := findItemOrEnd(doc, item.OriginRight, hint)
	if err != nil {
		return err
	}

	destIdx := left + 1
	scanning := false

loop:
	for i := destIdx; ; i++ {
		if !scanning {
			destIdx = i
		}
		if i == len(doc.Content) || i == right {
			break loop
		}

		o := doc.Content[i]
		oleft, err := seq.FindItem(doc, o.OriginLeft, false, i)
		if err != nil {
			return err
		}
		oright, err := findItemOrEnd(doc, o.OriginRight, i)
		if err != nil {
			return err
		}

		switch {
		case oleft < left:
			break loop
		case oleft == left:
			switch {
			case oright < right:
				scanning = true
			case oright == right:
				if item.ID.Agent < o.ID.Agent {
					break loop
				}
				scanning = false
			default: // oright > right
				scanning = false
			}
		default: // oleft > left
		}
	}

	seq.Splice(doc, destIdx, item)
	return nil
}
