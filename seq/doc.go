package seq

// Document is a linear buffer of items, the materialization order doubling
// as the visible order once tombstones and placeholders are filtered out.
type Document[T any] struct {
	Content []Item[T]
	Version VersionVector

	// Length is the count of visible items: content present, not
	// deleted. Kept as a running counter rather than recomputed so
	// callers can cheaply ask "how long is this document".
	Length int

	// MaxSeq is the highest Item.Seq across all items. Only Automerge
	// assigns or consults it, but it is carried on every document so the
	// same Document[T] shape serves every algorithm.
	MaxSeq int
}

// NewDoc returns an empty document ready to receive local or remote
// inserts.
func NewDoc[T any]() *Document[T] {
	return &Document[T]{
		Content: []Item[T]{},
		Version: make(VersionVector),
	}
}

// GetContent returns the visible payload sequence: tombstones and Sync9
// placeholders are filtered out.
func GetContent[T any](doc *Document[T]) []T {
	out := make([]T, 0, doc.Length)
	for _, it := range doc.Content {
		if it.Visible() {
			out = append(out, *it.Content)
		}
	}
	return out
}

// CanInsertNow reports whether item is causally ready to integrate into
// doc: its own id is new, its predecessor seq for the same agent has
// already landed (or it is the agent's first op), and both anchors are
// already present in doc's version vector.
func CanInsertNow[T any](item Item[T], doc *Document[T]) bool {
	if doc.Version.Contains(item.ID) {
		return false
	}
	if item.ID.Seq > 0 && doc.Version.Get(item.ID.Agent) != item.ID.Seq-1 {
		return false
	}
	return IsInVersion(item.OriginLeft, doc.Version) && IsInVersion(item.OriginRight, doc.Version)
}
