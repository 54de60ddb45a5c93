package rentals

import (
	"log/slog"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for rentals.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[View, Draft] {
	return shared.NewResource[View, Draft]("rentals", logger, service, DraftFromView)
}
