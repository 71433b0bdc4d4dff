package bench

import (
	"fmt"
	"time"

	"github.com/textloom/seqcrdt/internal/util"
	"github.com/textloom/seqcrdt/seq"
)

// Result summarizes one replay run.
type Result struct {
	Algorithm string
	Agents    int
	Ops       int
	Patches   int
	Elapsed   time.Duration
	Converged bool
	Got       string
	Want      string
}

// Replay applies every txn in fixture against a fresh Document[rune]
// using algo, one agent per txn slot (agent names are synthesized as
// "agent-N" since the fixture doesn't carry them), then compares the
// result against fixture.EndContent.
func Replay(fixture *Fixture, algo seq.Algorithm[rune]) (Result, error) {
	doc := seq.NewDoc[rune]()

	// Seed startContent as agent "seed"'s initial insert run so replay
	// fixtures that begin from non-empty documents still produce a
	// valid, causally-ordered history.
	ops := 0
	for _, r := range fixture.StartContent {
		if _, err := algo.LocalInsert(doc, "seed", ops, r); err != nil {
			return Result{}, fmt.Errorf("bench: seeding start content: %w", err)
		}
		ops++
	}

	nonEmpty := util.Filter(fixture.Txns, func(txn Txn) bool { return len(txn.Patches) > 0 })
	patchCount := util.Reduce(nonEmpty, func(txn Txn, acc int) int { return acc + len(txn.Patches) }, 0)

	start := time.Now()
	for i, txn := range fixture.Txns {
		agent := fmt.Sprintf("agent-%d", i)
		for _, patch := range txn.Patches {
			if patch.Inserted != "" {
				pos := patch.Pos
				for _, r := range patch.Inserted {
					if _, err := algo.LocalInsert(doc, agent, pos, r); err != nil {
						return Result{}, fmt.Errorf("bench: txn %d insert: %w", i, err)
					}
					pos++
					ops++
				}
			} else if patch.DelCount > 0 {
				if err := seq.LocalDelete(doc, patch.Pos); err != nil {
					return Result{}, fmt.Errorf("bench: txn %d delete: %w", i, err)
				}
				ops++
			}
		}
	}
	elapsed := time.Since(start)

	got := string(seq.GetContent(doc))
	return Result{
		Algorithm: algo.Name,
		Agents:    len(fixture.Txns),
		Ops:       ops,
		Patches:   patchCount,
		Elapsed:   elapsed,
		Converged: got == fixture.EndContent,
		Got:       got,
		Want:      fixture.EndContent,
	}, nil
}
