package algorithm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/textloom/seqcrdt/seq"
)

// naiveInsert mirrors what LocalInsert should produce for a single agent:
// a plain slice insert at pos, used as the reference oracle for scenario 7.
func naiveInsert(content []rune, pos int, r rune) []rune {
	out := make([]rune, 0, len(content)+1)
	out = append(out, content[:pos]...)
	out = append(out, r)
	out = append(out, content[pos:]...)
	return out
}

// TestFuzzSequential covers scenario 7: 1,000 random single-agent inserts
// against every algorithm; the visible sequence must match the naive
// reference list at every step, since a single agent never has anything
// to reconcile concurrently.
func TestFuzzSequential(t *testing.T) {
	const rounds = 1000

	for name, algo := range allAlgorithms() {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			doc := seq.NewDoc[rune]()
			var want []rune

			for i := 0; i < rounds; i++ {
				pos := 0
				if len(want) > 0 {
					pos = rng.Intn(len(want) + 1)
				}
				r := rune('a' + rng.Intn(26))

				_, err := algo.LocalInsert(doc, "solo", pos, r)
				require.NoError(t, err)
				want = naiveInsert(want, pos, r)

				require.Equal(t, string(want), content(doc), "round %d", i)
			}
		})
	}
}

// TestFuzzMultidoc covers scenario 8: three agents each running 1,000
// rounds of random local inserts against their own replica, merging into a
// randomly chosen peer replica after every round. This core's LocalDelete
// deliberately does not propagate through MergeInto (a documented
// non-goal), so the fuzz only exercises inserts — the property under test
// is that get_content agrees between any two replicas immediately after a
// merge between them.
func TestFuzzMultidoc(t *testing.T) {
	const agents = 3
	const rounds = 1000

	for name, algo := range allAlgorithms() {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(2))
			docs := make([]*seq.Document[rune], agents)
			for i := range docs {
				docs[i] = seq.NewDoc[rune]()
			}
			names := []string{"agent-0", "agent-1", "agent-2"}

			for round := 0; round < rounds; round++ {
				src := rng.Intn(agents)
				doc := docs[src]

				length := len(seq.GetContent(doc))
				pos := 0
				if length > 0 {
					pos = rng.Intn(length + 1)
				}
				r := rune('a' + rng.Intn(26))
				_, err := algo.LocalInsert(doc, names[src], pos, r)
				require.NoError(t, err)

				dst := rng.Intn(agents)
				if dst == src {
					dst = (dst + 1) % agents
				}
				require.NoError(t, seq.MergeInto(docs[dst], docs[src], algo))
				require.NoError(t, seq.MergeInto(docs[src], docs[dst], algo))

				require.Equal(t, content(docs[src]), content(docs[dst]), "round %d: src=%d dst=%d", round, src, dst)
			}
		})
	}
}
