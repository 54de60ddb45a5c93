package condominiums

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	selectionKey     = "rent:selected_condominium"
	selectionChannel = "rent.condominium.changed"
)

// Selection holds the condominium that scopes the catalog and request board.
// Without a Redis client it is a plain in-memory value; with one the value is
// persisted and every change is broadcast to the other processes.
type Selection struct {
	client *redis.Client
	logger *slog.Logger
	origin string

	mu      sync.RWMutex
	current string
	nextID  int
	subs    []subscriber
}

// selectionEvent is the pub/sub payload. Origin identifies the publishing
// Selection so a process skips the echo of its own changes.
type selectionEvent struct {
	Origin string `json:"origin"`
	ID     string `json:"condominio_id"`
}

type subscriber struct {
	id int
	fn func(id string)
}

// NewSelection constructs a Selection. client may be nil.
func NewSelection(client *redis.Client, logger *slog.Logger) *Selection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selection{client: client, logger: logger, origin: uuid.NewString()}
}

// Load reads the persisted selection, if any.
func (s *Selection) Load(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	id, err := s.client.Get(ctx, selectionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("condominiums: load selection: %w", err)
	}
	s.apply(id)
	return nil
}

// Current returns the selected condominium ID, or "" when none is selected.
func (s *Selection) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select makes id the current selection. An empty id clears it.
func (s *Selection) Select(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if s.client != nil {
		var err error
		if id == "" {
			err = s.client.Del(ctx, selectionKey).Err()
		} else {
			err = s.client.Set(ctx, selectionKey, id, 0).Err()
		}
		if err != nil {
			return fmt.Errorf("condominiums: persist selection: %w", err)
		}
	}
	if !s.apply(id) {
		return nil
	}
	if s.client != nil {
		payload, err := json.Marshal(selectionEvent{Origin: s.origin, ID: id})
		if err != nil {
			return fmt.Errorf("condominiums: encode selection: %w", err)
		}
		if err := s.client.Publish(ctx, selectionChannel, payload).Err(); err != nil {
			return fmt.Errorf("condominiums: publish selection: %w", err)
		}
	}
	return nil
}

// Clear removes the current selection.
func (s *Selection) Clear(ctx context.Context) error {
	return s.Select(ctx, "")
}

// Subscribe registers fn for selection changes. Subscribers run synchronously
// in registration order. The returned func unregisters fn.
func (s *Selection) Subscribe(fn func(id string)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Listen applies selection changes published by other processes until ctx is
// done. Events published by s itself are ignored. It returns once the
// subscription is confirmed.
func (s *Selection) Listen(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	pubsub := s.client.Subscribe(ctx, selectionChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("condominiums: subscribe selection: %w", err)
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event selectionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.logger.Warn("discarding selection event", slog.Any("error", err))
					continue
				}
				if event.Origin == s.origin {
					continue
				}
				id := strings.TrimSpace(event.ID)
				if s.apply(id) {
					s.logger.Debug("selection changed remotely", slog.String("condominio_id", id))
				}
			}
		}
	}()
	return nil
}

// apply stores id and notifies subscribers. It reports whether the value changed.
func (s *Selection) apply(id string) bool {
	s.mu.Lock()
	if s.current == id {
		s.mu.Unlock()
		return false
	}
	s.current = id
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(id)
	}
	return true
}
