package seq

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the ways the integration engine can detect an
// invariant or contract violation. All are fatal: the core never attempts
// local recovery, it only reports.
type ErrorKind string

const (
	// OutOfOrder: Integrate was called with a non-consecutive seq for the
	// item's agent.
	OutOfOrder ErrorKind = "out_of_order"
	// ItemNotFound: a non-root anchor id is missing from the document.
	ItemNotFound ErrorKind = "item_not_found"
	// PositionOutOfRange: FindItemAtPos was asked for a position beyond
	// the visible length of the document.
	PositionOutOfRange ErrorKind = "position_out_of_range"
	// UnresolvableDependency: MergeInto made no progress in a full pass
	// over the missing set.
	UnresolvableDependency ErrorKind = "unresolvable_dependency"
)

// SeqError is the single error type raised by the core. It carries enough
// context (kind plus the offending identifier/position/length) that a
// caller can log or test against it without string matching.
type SeqError struct {
	Kind ErrorKind

	// Context, populated depending on Kind.
	Identifier *Identifier
	Agent      string
	Seq        int
	Pos        int
	DocLength  int
}

func (e *SeqError) Error() string {
	switch e.Kind {
	case OutOfOrder:
		return fmt.Sprintf("seq: out of order insert for agent %q: got seq %d", e.Agent, e.Seq)
	case ItemNotFound:
		return fmt.Sprintf("seq: item not found for anchor %v", e.Identifier)
	case PositionOutOfRange:
		return fmt.Sprintf("seq: position %d out of range (visible length %d)", e.Pos, e.DocLength)
	case UnresolvableDependency:
		return fmt.Sprintf("seq: merge made no progress over %d remaining item(s)", e.DocLength)
	default:
		return fmt.Sprintf("seq: %s", e.Kind)
	}
}

// KindOf extracts the ErrorKind from err if it (or something it wraps) is
// a *SeqError, for callers that want to branch on error kind rather than
// match the exact message.
func KindOf(err error) (ErrorKind, bool) {
	var se *SeqError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

func errOutOfOrder(agent string, gotSeq int) error {
	return &SeqError{Kind: OutOfOrder, Agent: agent, Seq: gotSeq}
}

func errItemNotFound(id *Identifier) error {
	return &SeqError{Kind: ItemNotFound, Identifier: id}
}

func errPositionOutOfRange(pos, docLength int) error {
	return &SeqError{Kind: PositionOutOfRange, Pos: pos, DocLength: docLength}
}

func errUnresolvableDependency(remaining int) error {
	return &SeqError{Kind: UnresolvableDependency, DocLength: remaining}
}

// NewOutOfOrderError reports a non-consecutive seq for agent, for use by
// Integrate implementations outside this package.
func NewOutOfOrderError(agent string, gotSeq int) error {
	return errOutOfOrder(agent, gotSeq)
}
