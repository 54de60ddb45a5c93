package shared

import "context"

// Invalidator is told about every committed admin write so derived caches can
// be refreshed.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func(ctx context.Context)

// Invalidate calls f(ctx).
func (f InvalidatorFunc) Invalidate(ctx context.Context) { f(ctx) }

// Invalidators fans one notification out to several caches.
type Invalidators []Invalidator

// Invalidate notifies each non-nil member in order.
func (list Invalidators) Invalidate(ctx context.Context) {
	for _, inv := range list {
		if inv != nil {
			inv.Invalidate(ctx)
		}
	}
}

// NopInvalidator ignores notifications.
type NopInvalidator struct{}

// Invalidate does nothing.
func (NopInvalidator) Invalidate(context.Context) {}
