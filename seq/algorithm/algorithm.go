// Package algorithm provides the four integration strategies named in the
// spec — YjsMod, classic Yjs, Automerge and Sync9 — each bound into a
// seq.Algorithm[T] capability record so callers dispatch by value rather
// than by type-switch or inheritance.
package algorithm

import (
	"fmt"
	"io"

	"github.com/sanity-io/litter"

	"github.com/textloom/seqcrdt/seq"
)

func printDoc[T any](w io.Writer, doc *seq.Document[T]) error {
	_, err := fmt.Fprintln(w, litter.Sdump(doc))
	return err
}

// YjsMod returns the capability record for the two-dimensional anchor
// scan described in §4.5 — the interleaving-resistant variant used as the
// repo's default.
func YjsMod[T any]() seq.Algorithm[T] {
	var algo seq.Algorithm[T]
	algo = seq.Algorithm[T]{
		Name:      "yjsMod",
		Integrate: integrateYjsMod[T],
		PrintDoc:  printDoc[T],
	}
	algo.LocalInsert = func(doc *seq.Document[T], agent string, pos int, content T) (seq.Item[T], error) {
		return seq.LocalInsert(doc, agent, pos, content, algo)
	}
	return algo
}

// Yjs returns the capability record for classic Yjs (§4.6). It is known
// to diverge from YjsMod/Automerge/Sync9 on the withTails2 scenario — a
// pre-existing divergence this core preserves rather than "fixes".
func Yjs[T any]() seq.Algorithm[T] {
	var algo seq.Algorithm[T]
	algo = seq.Algorithm[T]{
		Name:        "yjs",
		Integrate:   integrateYjs[T],
		PrintDoc:    printDoc[T],
		IgnoreTests: []string{"withTails2"},
	}
	algo.LocalInsert = func(doc *seq.Document[T], agent string, pos int, content T) (seq.Item[T], error) {
		return seq.LocalInsert(doc, agent, pos, content, algo)
	}
	return algo
}

// Automerge returns the capability record for Automerge-style sibling
// ordering by seq (§4.7). It skips interleavingBackward* and withTails*,
// pre-existing divergences from the YjsMod family.
func Automerge[T any]() seq.Algorithm[T] {
	var algo seq.Algorithm[T]
	algo = seq.Algorithm[T]{
		Name:      "automerge",
		Integrate: integrateAutomerge[T],
		PrintDoc:  printDoc[T],
		IgnoreTests: []string{
			"interleavingBackward",
			"interleavingBackward2",
			"withTails",
			"withTails2",
		},
	}
	algo.LocalInsert = func(doc *seq.Document[T], agent string, pos int, content T) (seq.Item[T], error) {
		return seq.LocalInsert(doc, agent, pos, content, algo)
	}
	return algo
}

// Sync9 returns the capability record for the splittable-tree integration
// of §4.8. Unlike the other three, it overrides LocalInsert with the
// parent-descending anchor search of §4.4.
func Sync9[T any]() seq.Algorithm[T] {
	var algo seq.Algorithm[T]
	algo = seq.Algorithm[T]{
		Name:      "sync9",
		Integrate: integrateSync9[T],
		PrintDoc:  printDoc[T],
	}
	algo.LocalInsert = func(doc *seq.Document[T], agent string, pos int, content T) (seq.Item[T], error) {
		return seq.LocalInsertSync9(doc, agent, pos, content, algo)
	}
	return algo
}

// Resolve looks up an Algorithm[T] by name, the selector named in §6: one
// of "yjsMod", "yjs", "automerge" or "sync9".
func Resolve[T any](name string) (seq.Algorithm[T], bool) {
	switch name {
	case "yjsMod", "":
		return YjsMod[T](), true
	case "yjs":
		return Yjs[T](), true
	case "automerge":
		return Automerge[T](), true
	case "sync9":
		return Sync9[T](), true
	default:
		var zero seq.Algorithm[T]
		return zero, false
	}
}

// findItemOrEnd resolves id the same way seq.FindItem does, except a nil
// id means end-of-document (len(doc.Content)) rather than root (-1). Used
// for OriginRight, which YjsMod and Yjs consult but Automerge/Sync9 don't.
func findItemOrEnd[T any](doc *seq.Document[T], id *seq.Identifier, hint int) (int, error) {
	if id == nil {
		return len(doc.Content), nil
	}
	return seq.FindItem(doc, id, false, hint)
}
