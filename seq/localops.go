package seq

// LocalInsert translates a visible position into a fully-anchored item and
// hands it to algo's Integrate. This is the "standard" translation shared
// by YjsMod, Yjs and Automerge; Sync9 uses LocalInsertSync9 instead (its
// Algorithm.LocalInsert field is wired to that function).
func LocalInsert[T any](doc *Document[T], agent string, pos int, content T, algo Algorithm[T]) (Item[T], error) {
	i, err := FindItemAtPos(doc, pos, false)
	if err != nil {
		return Item[T]{}, err
	}

	var originLeft, originRight *Identifier
	if i > 0 {
		id := doc.Content[i-1].ID
		originLeft = &id
	}
	if i < len(doc.Content) {
		id := doc.Content[i].ID
		originRight = &id
	}

	payload := content
	item := Item[T]{
		Content:     &payload,
		ID:          Identifier{Agent: agent, Seq: doc.Version.Get(agent) + 1},
		OriginLeft:  originLeft,
		OriginRight: originRight,
		Seq:         doc.MaxSeq + 1,
	}

	if err := algo.Integrate(doc, item, i); err != nil {
		return Item[T]{}, err
	}
	return item, nil
}

// LocalInsertSync9 implements the Sync9-specific anchor search. It starts
// with the item left of pos as parent (InsertAfter true). While the next
// item is a child of the current parent it descends: that child becomes
// the parent and InsertAfter turns false. It stops after the first child
// that carries content, so the new item is inserted before that child's
// content, as its first child.
func LocalInsertSync9[T any](doc *Document[T], agent string, pos int, content T, algo Algorithm[T]) (Item[T], error) {
	i, err := FindItemAtPos(doc, pos, true)
	if err != nil {
		return Item[T]{}, err
	}

	var parent *Identifier
	if i > 0 {
		id := doc.Content[i-1].ID
		parent = &id
	}
	insertAfter := true

	for i < len(doc.Content) {
		candidate := doc.Content[i]
		if !IdEq(candidate.OriginLeft, parent) {
			break
		}
		id := candidate.ID
		parent = &id
		insertAfter = false
		i++
		if candidate.Content != nil {
			break
		}
	}

	payload := content
	item := Item[T]{
		Content:     &payload,
		ID:          Identifier{Agent: agent, Seq: doc.Version.Get(agent) + 1},
		OriginLeft:  parent,
		InsertAfter: insertAfter,
		Seq:         doc.MaxSeq + 1,
	}

	if err := algo.Integrate(doc, item, i); err != nil {
		return Item[T]{}, err
	}
	return item, nil
}

// LocalDelete marks the item at visible position pos as deleted, if it
// isn't already. Deletion never removes storage and never propagates via
// MergeInto — a documented limitation of this core.
func LocalDelete[T any](doc *Document[T], pos int) error {
	i, err := FindItemAtPos(doc, pos, false)
	if err != nil {
		return err
	}
	// FindItemAtPos may stop on a tombstone that precedes the visible item.
	for i < len(doc.Content) && !doc.Content[i].Visible() {
		i++
	}
	if i >= len(doc.Content) {
		return errPositionOutOfRange(pos, doc.Length)
	}
	if !doc.Content[i].IsDeleted {
		doc.Content[i].IsDeleted = true
		doc.Length--
	}
	return nil
}
