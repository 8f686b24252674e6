package domain

// Reorder reconciliation: after a drag gesture completes, the rendering
// layer observes the new element order and folds it back into the
// snapshot before it is sent for persistence. These functions perform no
// validation against Cards; the rendering layer only renders identifiers
// the snapshot already contains. An aborted drag simply never reaches
// them.

// ApplyListOrder replaces listOrder with the observed post-drag sequence.
// No other field changes.
func (s *BoardState) ApplyListOrder(order []string) {
	s.ListOrder = append([]string(nil), order...)
}

// ApplyCardDrop rewrites the origin list's card sequence with the order
// observed after the drop. When the card crossed into a different list,
// the destination list's sequence is rewritten as well. A drop within a
// single list only rewrites the origin, which already reflects the new
// position.
func (s *BoardState) ApplyCardDrop(fromListID string, fromOrder []string, toListID string, toOrder []string) {
	from := s.Lists[fromListID]
	from.CardIDs = append([]string(nil), fromOrder...)
	s.Lists[fromListID] = from

	if toListID == fromListID {
		return
	}
	to := s.Lists[toListID]
	to.CardIDs = append([]string(nil), toOrder...)
	s.Lists[toListID] = to
}
