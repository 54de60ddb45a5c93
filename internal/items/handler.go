package items

import (
	"log/slog"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for items.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[Item, Draft] {
	return shared.NewResource[Item, Draft]("items", logger, service, DraftFrom)
}
