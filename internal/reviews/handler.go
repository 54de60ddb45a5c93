package reviews

import (
	"log/slog"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for reviews.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[Review, Draft] {
	return shared.NewResource[Review, Draft]("reviews", logger, service, DraftFrom)
}
