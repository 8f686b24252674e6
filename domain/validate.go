package domain

import "fmt"

// CheckIntegrity verifies the structural invariants of a snapshot:
// listOrder is a permutation of the list keys, every referenced card ID
// resolves, no card is referenced by more than one list, and no card is
// left unreferenced. The board service does not run this on replace; it is
// for callers and tests that want to verify a snapshot they assembled.
func (s *BoardState) CheckIntegrity() error {
	if s == nil {
		return fmt.Errorf("nil board state")
	}
	if len(s.ListOrder) != len(s.Lists) {
		return fmt.Errorf("listOrder has %d entries, lists has %d", len(s.ListOrder), len(s.Lists))
	}
	seenOrder := make(map[string]struct{}, len(s.ListOrder))
	for _, id := range s.ListOrder {
		if _, dup := seenOrder[id]; dup {
			return fmt.Errorf("duplicate list %q in listOrder", id)
		}
		seenOrder[id] = struct{}{}
		if _, ok := s.Lists[id]; !ok {
			return fmt.Errorf("listOrder references unknown list %q", id)
		}
	}

	owner := make(map[string]string, len(s.Cards))
	for listID, list := range s.Lists {
		for _, cardID := range list.CardIDs {
			if _, ok := s.Cards[cardID]; !ok {
				return fmt.Errorf("list %q references unknown card %q", listID, cardID)
			}
			if prev, claimed := owner[cardID]; claimed {
				return fmt.Errorf("card %q owned by both list %q and list %q", cardID, prev, listID)
			}
			owner[cardID] = listID
		}
	}
	for cardID := range s.Cards {
		if _, ok := owner[cardID]; !ok {
			return fmt.Errorf("card %q is not referenced by any list", cardID)
		}
	}
	return nil
}
