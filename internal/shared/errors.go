package shared

import (
	"fmt"

	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

var (
	// ErrInvalidCredentials indicates admin login failure.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)
	// ErrInvalidID indicates an empty identifier.
	ErrInvalidID = fmt.Errorf("invalid ID: %w", httpx.ErrValidation)
)
