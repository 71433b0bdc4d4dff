package algorithm

import "github.com/textloom/seqcrdt/seq"

// integrateSync9 places item in the split-tree representation of §4.8.
//
// A node (the parent anchor) may need to "split" to host a first child:
// an item with InsertAfter == false goes before the parent's content.
// When the parent's content-bearing record is still intact, a
// content-absent placeholder copy is inserted at the parent's index and
// the new child right after it, so the layout becomes placeholder,
// children, content. Lookups with atEnd == false then resolve the parent
// to the placeholder (the start of its child run), and lookups with
// atEnd == true to its content record (InsertAfter == true inserts).
func integrateSync9[T any](doc *seq.Document[T], item seq.Item[T], hint int) error {
	if err := seq.CheckAndAdvance(doc, item.ID); err != nil {
		return err
	}

	parentIdx, err := seq.FindItem(doc, item.OriginLeft, item.InsertAfter, hint-1)
	if err != nil {
		return err
	}
	destIdx := parentIdx + 1

	if item.OriginLeft != nil && !item.InsertAfter && parentIdx >= 0 && doc.Content[parentIdx].Content != nil {
		placeholder := doc.Content[parentIdx]
		placeholder.Content = nil
		seq.Splice(doc, parentIdx, placeholder)
		seq.Splice(doc, parentIdx+1, item)
		return nil
	}

loop:
	for destIdx < len(doc.Content) {
		o := doc.Content[destIdx]
		oparent, err := seq.FindItem(doc, o.OriginLeft, o.InsertAfter, hint-1)
		if err != nil {
			return err
		}

		switch {
		case oparent < parentIdx:
			break loop
		case oparent == parentIdx:
			if item.ID.Agent < o.ID.Agent {
				break loop
			}
		default: // oparent > parentIdx
		}
		destIdx++
	}

	seq.Splice(doc, destIdx, item)
	return nil
}
