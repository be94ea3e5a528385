package services

import (
	"time"

	"github.com/pucklab/nhl-totals/internal/models"
)

// GameView is the presentation shape for one game on a slate.
type GameView struct {
	Index      int                      `json:"index"`
	Game       models.Game              `json:"game"`
	Starters   models.StarterAssignment `json:"starters"`
	Projection models.Projection        `json:"projection"`
}

// SlateView is the presentation shape for a whole slate.
type SlateView struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	EdgeThreshold float64    `json:"edge_threshold"`
	CreatedAt     time.Time  `json:"created_at"`
	Games         []GameView `json:"games"`
}

// View returns a consistent snapshot of the slate for presentation.
func (s *Slate) View() SlateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]GameView, len(s.Games))
	for i, g := range s.Games {
		games[i] = GameView{
			Index:      i,
			Game:       g,
			Starters:   s.Assignments[i],
			Projection: s.Projections[i],
		}
	}

	return SlateView{
		ID:            s.ID.String(),
		Date:          s.Date,
		EdgeThreshold: s.EdgeThreshold,
		CreatedAt:     s.CreatedAt,
		Games:         games,
	}
}
