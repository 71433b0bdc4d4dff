package seq

import "io"

// Algorithm is the capability record used to dispatch between integration
// strategies without inheritance: LocalInsert turns a visible position
// into an anchored Item, Integrate places a fully-anchored Item at its
// canonical index, and PrintDoc renders a document for debugging.
//
// Four instances live in package algorithm: YjsMod, Yjs, Automerge and
// Sync9.
type Algorithm[T any] struct {
	Name string

	LocalInsert func(doc *Document[T], agent string, pos int, content T) (Item[T], error)
	Integrate   func(doc *Document[T], item Item[T], hint int) error
	PrintDoc    func(w io.Writer, doc *Document[T]) error

	// IgnoreTests names scenarios this algorithm is known to diverge on
	// (pre-existing, deliberately preserved divergences rather than
	// bugs to fix — see DESIGN.md).
	IgnoreTests []string
}

// Integrate is a free function wrapper so callers that already hold an
// Algorithm don't need to repeat doc/item/hint plumbing inline.
func Integrate[T any](doc *Document[T], item Item[T], hint int, algo Algorithm[T]) error {
	return algo.Integrate(doc, item, hint)
}

// MergeInto transfers every item from src that isn't yet in dest's
// version, integrating each one as soon as it becomes causally ready.
func MergeInto[T any](dest, src *Document[T], algo Algorithm[T]) error {
	return mergeInto(dest, src, algo)
}
