package people

import (
	"log/slog"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for people.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[Person, Draft] {
	return shared.NewResource[Person, Draft]("people", logger, service, DraftFrom)
}
