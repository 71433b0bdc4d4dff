package seq

import "sync/atomic"

// LookupStats are process-wide, non-correctness-bearing counters tracking
// how often the hint passed to FindItem paid off. They exist purely for
// observability; nothing in this module reads them.
var LookupStats struct {
	Hits   atomic.Int64
	Misses atomic.Int64
}

// FindItem returns the index of the item whose id equals needle.
//
// needle == nil (root/end sentinel) always returns -1. hint, when >= 0, is
// checked first as a hot-path optimization: consecutive local edits tend
// to anchor near the previous edit's index. atEnd, used only by Sync9,
// restricts the match to items whose Content is present, disambiguating
// the two halves of a split item that share an id.
func FindItem[T any](doc *Document[T], needle *Identifier, atEnd bool, hint int) (int, error) {
	if needle == nil {
		return -1, nil
	}

	matches := func(it Item[T]) bool {
		if !it.ID.Eq(*needle) {
			return false
		}
		if atEnd {
			return it.Content != nil
		}
		return true
	}

	if hint >= 0 && hint < len(doc.Content) && matches(doc.Content[hint]) {
		LookupStats.Hits.Add(1)
		return hint, nil
	}
	LookupStats.Misses.Add(1)

	for i, it := range doc.Content {
		if matches(it) {
			return i, nil
		}
	}
	return 0, errItemNotFound(needle)
}

// FindItemAtPos walks doc.Content counting only visible items (content
// present, not deleted), returning the index at which pos visible items
// have been consumed. stickEnd (Sync9 only) returns the first candidate
// index even when it lands on a placeholder/tombstone, so a caller can
// insert before adjacent empty items rather than always after them.
func FindItemAtPos[T any](doc *Document[T], pos int, stickEnd bool) (int, error) {
	remaining := pos
	i := 0
	for ; i < len(doc.Content); i++ {
		if stickEnd && remaining == 0 {
			return i, nil
		}
		if doc.Content[i].Content != nil {
			if remaining == 0 {
				return i, nil
			}
			if !doc.Content[i].IsDeleted {
				remaining--
			}
		}
	}
	if remaining == 0 {
		return i, nil
	}
	return 0, errPositionOutOfRange(pos, doc.Length)
}
