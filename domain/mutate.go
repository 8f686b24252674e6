package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEmptyListName rejects list creation without a display name.
	ErrEmptyListName = errors.New("list name must not be empty")
	// ErrEmptyCardTitle rejects card creation or edits without a title.
	ErrEmptyCardTitle = errors.New("card title must not be empty")
)

// AddList creates a list with a fresh ID, appends it to listOrder and
// returns the new ID. The snapshot is untouched on error.
func (s *BoardState) AddList(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyListName
	}
	id := uuid.NewString()
	if s.Lists == nil {
		s.Lists = make(map[string]List)
	}
	s.Lists[id] = List{ID: id, Name: name, CardIDs: []string{}}
	s.ListOrder = append(s.ListOrder, id)
	return id, nil
}

// AddCard creates a card with a fresh ID attached to the named list and
// returns the new ID. The snapshot is untouched on error.
func (s *BoardState) AddCard(listID, title, description string) (string, error) {
	if title == "" {
		return "", ErrEmptyCardTitle
	}
	list, ok := s.Lists[listID]
	if !ok {
		return "", fmt.Errorf("unknown list %q", listID)
	}
	id := uuid.NewString()
	if s.Cards == nil {
		s.Cards = make(map[string]Card)
	}
	s.Cards[id] = Card{ID: id, Title: title, Description: description}
	list.CardIDs = append(list.CardIDs, id)
	s.Lists[listID] = list
	return id, nil
}

// UpdateCard edits a card's title and description in place.
func (s *BoardState) UpdateCard(cardID, title, description string) error {
	if title == "" {
		return ErrEmptyCardTitle
	}
	card, ok := s.Cards[cardID]
	if !ok {
		return fmt.Errorf("unknown card %q", cardID)
	}
	card.Title = title
	card.Description = description
	s.Cards[cardID] = card
	return nil
}

// RemoveCard deletes a card from its owning list's sequence and from the
// card collection in one step, so no orphan reference or orphan card is
// left behind.
func (s *BoardState) RemoveCard(cardID, listID string) {
	if list, ok := s.Lists[listID]; ok {
		kept := list.CardIDs[:0]
		for _, id := range list.CardIDs {
			if id != cardID {
				kept = append(kept, id)
			}
		}
		list.CardIDs = kept
		s.Lists[listID] = list
	}
	delete(s.Cards, cardID)
}

// CanDeleteList reports whether the rendering layer may offer deletion of
// the named list: it must exist, hold no cards and not be permanent. The
// board service itself does not enforce this; callers gate on it.
func (s *BoardState) CanDeleteList(listID string) bool {
	list, ok := s.Lists[listID]
	if !ok {
		return false
	}
	return !list.IsPermanent && len(list.CardIDs) == 0
}
