package algorithm

import "github.com/textloom/seqcrdt/seq"

// integrateYjs is classic Yjs (§4.6): the same destIdx/scanning scaffolding
// as YjsMod, but the oleft == left row resolves concurrent same-parent
// runs by agent comparison before falling back to the oright check, which
// is what produces the withTails2 divergence from YjsMod.
func integrateYjs[T any](doc *seq.Document[T], item seq.Item[T], hint int) error {
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
			case item.ID.Agent > o.ID.Agent:
				scanning = false
			case oright == right:
				break loop
			default:
				scanning = true
			}
		default: // oleft > left
		}
	}

	seq.Splice(doc, destIdx, item)
	return nil
}
