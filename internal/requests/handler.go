package requests

import (
	"log/slog"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for item requests.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[Request, Draft] {
	return shared.NewResource[Request, Draft]("requests", logger, service, DraftFrom)
}
