package seq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/textloom/seqcrdt/seq"
	"github.com/textloom/seqcrdt/seq/algorithm"
)

// TestMergeIntoIdempotent covers invariant 4 (§8): merging the same
// source twice is a no-op the second time.
func TestMergeIntoIdempotent(t *testing.T) {
	algo := algorithm.YjsMod[rune]()

	src := seq.NewDoc[rune]()
	_, err := algo.LocalInsert(src, "A", 0, 'a')
	require.NoError(t, err)
	_, err = algo.LocalInsert(src, "A", 1, 'b')
	require.NoError(t, err)

	dest := seq.NewDoc[rune]()
	require.NoError(t, seq.MergeInto(dest, src, algo))
	first := string(seq.GetContent(dest))

	require.NoError(t, seq.MergeInto(dest, src, algo))
	require.Equal(t, first, string(seq.GetContent(dest)))
}

// TestMergeIntoOrderIndependence covers invariant 5: two replicas that
// diverge and then exchange merges converge to the same content
// regardless of which one merges first.
func TestMergeIntoOrderIndependence(t *testing.T) {
	for name, algo := range map[string]seq.Algorithm[rune]{
		"yjsMod":    algorithm.YjsMod[rune](),
		"yjs":       algorithm.Yjs[rune](),
		"automerge": algorithm.Automerge[rune](),
		"sync9":     algorithm.Sync9[rune](),
	} {
		t.Run(name, func(t *testing.T) {
			docA := seq.NewDoc[rune]()
			_, err := algo.LocalInsert(docA, "A", 0, 'x')
			require.NoError(t, err)

			docB := seq.NewDoc[rune]()
			_, err = algo.LocalInsert(docB, "B", 0, 'y')
			require.NoError(t, err)

			require.NoError(t, seq.MergeInto(docA, docB, algo))
			require.NoError(t, seq.MergeInto(docB, docA, algo))
			require.Equal(t, string(seq.GetContent(docA)), string(seq.GetContent(docB)))

			otherA := seq.NewDoc[rune]()
			_, err = algo.LocalInsert(otherA, "A", 0, 'x')
			require.NoError(t, err)
			otherB := seq.NewDoc[rune]()
			_, err = algo.LocalInsert(otherB, "B", 0, 'y')
			require.NoError(t, err)

			require.NoError(t, seq.MergeInto(otherB, otherA, algo))
			require.NoError(t, seq.MergeInto(otherA, otherB, algo))
			require.Equal(t, string(seq.GetContent(docA)), string(seq.GetContent(otherA)))
		})
	}
}

// TestMergeIntoUnresolvableDependency covers the case where src carries an
// item whose anchor dest can never resolve because it isn't present in
// src either — MergeInto must fail rather than loop forever.
func TestMergeIntoUnresolvableDependency(t *testing.T) {
	algo := algorithm.YjsMod[rune]()

	ghost := seq.Identifier{Agent: "ghost", Seq: 0}
	src := seq.NewDoc[rune]()
	payload := 'z'
	src.Content = append(src.Content, seq.Item[rune]{
		ID:         seq.Identifier{Agent: "A", Seq: 0},
		Content:    &payload,
		OriginLeft: &ghost,
	})

	dest := seq.NewDoc[rune]()
	err := seq.MergeInto(dest, src, algo)
	require.Error(t, err)
	kind, ok := seq.KindOf(err)
	require.True(t, ok)
	require.Equal(t, seq.UnresolvableDependency, kind)
}
