package board

import (
	"github.com/google/uuid"

	"threadwell-api/domain"
)

// DefaultState builds the demo board seeded into an empty store: one
// permanent list where the assistant works every card, and one ordinary
// list with no agent involvement. IDs are freshly generated per seed.
func DefaultState() *domain.BoardState {
	cardExtract := uuid.NewString()
	cardEmail := uuid.NewString()
	cardNews := uuid.NewString()
	cardTodo := uuid.NewString()
	cardWorkflow := uuid.NewString()
	cardSearch := uuid.NewString()
	listAugmented := uuid.NewString()
	listRegular := uuid.NewString()

	return &domain.BoardState{
		Lists: map[string]domain.List{
			listAugmented: {
				ID:                listAugmented,
				Name:              "Augmented Tasks",
				CardIDs:           []string{cardSearch, cardNews, cardExtract, cardEmail, cardWorkflow},
				AllowsAIComponent: true,
				IsPermanent:       true,
			},
			listRegular: {
				ID:      listRegular,
				Name:    "Regular List (No AI)",
				CardIDs: []string{cardTodo},
			},
		},
		ListOrder: []string{listAugmented, listRegular},
		Cards: map[string]domain.Card{
			cardExtract: {
				ID:            cardExtract,
				Title:         "Extract And Translate",
				Description:   "Extract all text from PDFs and translate into English, Markdown format.",
				IsAIComponent: true,
			},
			cardEmail: {
				ID:          cardEmail,
				Title:       "Email Draft",
				Description: "Research this company and help me draft a cold cover letter.",
			},
			cardNews: {
				ID:          cardNews,
				Title:       "News Summarization",
				Description: "Blend and summarize my news feed from RSS feeds provided below:",
			},
			cardTodo: {
				ID:          cardTodo,
				Title:       "My Personal To Do",
				Description: "Basic KanBan Board Functionality Is Here Too!",
			},
			cardWorkflow: {
				ID:          cardWorkflow,
				Title:       "Cooperative Workflow",
				Description: "Pre-made task templates where AI is expected to only do some of the work instead of all of it.",
			},
			cardSearch: {
				ID:            cardSearch,
				Title:         "Document Search",
				Description:   "Point me at a bunch of documents and ask me questions about them!",
				IsAIComponent: true,
			},
		},
		Config: &domain.BoardConfig{
			OwnerID:     uuid.NewString(),
			Title:       "Threadwell",
			Description: "Threadwell Demo Board",
		},
	}
}
