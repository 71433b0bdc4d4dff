package seq

// CheckAndAdvance enforces the same-agent ordering guarantee shared by
// every integration algorithm: item.ID.Seq must be exactly one past the
// agent's current high-water mark. On success it advances doc.Version.
func CheckAndAdvance[T any](doc *Document[T], id Identifier) error {
	want := doc.Version.Get(id.Agent) + 1
	if id.Seq != want {
		return NewOutOfOrderError(id.Agent, id.Seq)
	}
	doc.Version.Advance(id.Agent, id.Seq)
	return nil
}

// Splice inserts item into doc.Content at idx, adjusting Length and
// MaxSeq. Every Integrate implementation funnels its commit through this
// so the bookkeeping lives in one place.
func Splice[T any](doc *Document[T], idx int, item Item[T]) {
	doc.Content = append(doc.Content, Item[T]{})
	copy(doc.Content[idx+1:], doc.Content[idx:])
	doc.Content[idx] = item

	if item.Visible() {
		doc.Length++
	}
	if item.Seq > doc.MaxSeq {
		doc.MaxSeq = item.Seq
	}
}
