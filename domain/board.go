package domain

// Card is a single unit of work on the board. A card is owned by exactly
// one list, which references it by ID.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// IsAIComponent marks cards an automated agent is expected to act on.
	IsAIComponent bool `json:"isAIComponent"`
}

// List is a named, ordered bucket of cards.
type List struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	CardIDs []string `json:"cardIds"`
	// AllowsAIComponent permits automated-agent participation in this list.
	AllowsAIComponent bool `json:"allowsAIComponent"`
	// IsPermanent lists are never offered for deletion, even when empty.
	IsPermanent bool `json:"isPermanent"`
}

// BoardConfig carries descriptive board metadata. It has no behavioral
// invariants.
type BoardConfig struct {
	OwnerID              string `json:"ownerId"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	BackgroundImage      string `json:"backgroundImage,omitempty"`
	BackgroundColorDark  string `json:"backgroundColorDark,omitempty"`
	BackgroundColorLight string `json:"backgroundColorLight,omitempty"`
}

// BoardState is the root aggregate persisted and transmitted as one
// snapshot document.
type BoardState struct {
	Lists     map[string]List `json:"lists"`
	ListOrder []string        `json:"listOrder"`
	Cards     map[string]Card `json:"cards"`
	Config    *BoardConfig    `json:"config,omitempty"`
}

// Clone returns a deep copy of the state. Stores and tests use it so a
// caller mutating its snapshot cannot alias a held one.
func (s *BoardState) Clone() *BoardState {
	if s == nil {
		return nil
	}
	out := &BoardState{
		Lists:     make(map[string]List, len(s.Lists)),
		ListOrder: make([]string, len(s.ListOrder)),
		Cards:     make(map[string]Card, len(s.Cards)),
	}
	copy(out.ListOrder, s.ListOrder)
	for id, l := range s.Lists {
		cardIDs := make([]string, len(l.CardIDs))
		copy(cardIDs, l.CardIDs)
		l.CardIDs = cardIDs
		out.Lists[id] = l
	}
	for id, c := range s.Cards {
		out.Cards[id] = c
	}
	if s.Config != nil {
		cfg := *s.Config
		out.Config = &cfg
	}
	return out
}
