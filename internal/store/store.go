package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/Tiliavir/mvw-cashier-app/internal/kv"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
)

// DefaultKey is the key the root state is persisted under.
const DefaultKey = "kassierer_app_v1"

// Store applies transitions and writes every resulting State as a whole.
// Writes are best effort: a failed write is logged and the returned State
// stays authoritative for the caller.
type Store struct {
	backend kv.Backend
	key     string
	logger  *zap.Logger
}

// New creates a Store persisting under key. An empty key uses DefaultKey.
func New(backend kv.Backend, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, key: key, logger: logger}
}

// Load reads the persisted state. A missing key or unreadable content is
// treated as a first run and yields the default state.
func (s *Store) Load(ctx context.Context) models.State {
	raw, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return models.DefaultState()
	}
	if err != nil {
		s.logger.Error("failed to read state, starting fresh",
			zap.String("key", s.key),
			zap.Error(err))
		return models.DefaultState()
	}

	state, err := decode(raw)
	if err != nil {
		s.logger.Warn("persisted state is corrupt, starting fresh",
			zap.String("key", s.key),
			zap.Error(err))
		return models.DefaultState()
	}
	return state
}

// Save writes state. Failures are logged, never returned.
func (s *Store) Save(ctx context.Context, state models.State) {
	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("failed to encode state",
			zap.String("key", s.key),
			zap.Error(err))
		return
	}
	if err := s.backend.Put(ctx, s.key, raw); err != nil {
		s.logger.Error("failed to save state",
			zap.String("key", s.key),
			zap.Error(err))
	}
}

// Reset drops the persisted state and returns the default one.
func (s *Store) Reset(ctx context.Context) models.State {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		s.logger.Error("failed to reset state",
			zap.String("key", s.key),
			zap.Error(err))
	}
	return models.DefaultState()
}

var errMissingEvents = errors.New("events list missing")

func decode(raw []byte) (models.State, error) {
	var state models.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.State{}, err
	}
	if state.Events == nil {
		return models.State{}, errMissingEvents
	}
	// the active id must name an open event
	if id := state.ActiveEventID; id != nil {
		if i := state.FindEvent(*id); i < 0 || state.Events[i].Closed {
			state.ActiveEventID = nil
		}
	}
	return state, nil
}

// commit persists next unless the transition was addressed at an unknown
// event.
func (s *Store) commit(ctx context.Context, prev models.State, eventID string, next models.State) models.State {
	if prev.FindEvent(eventID) < 0 {
		return prev
	}
	s.Save(ctx, next)
	return next
}

func (s *Store) AddEvent(ctx context.Context, state models.State, event models.Event) models.State {
	next := AddEvent(state, event)
	s.Save(ctx, next)
	return next
}

func (s *Store) SetActiveEvent(ctx context.Context, state models.State, eventID string) models.State {
	next := SetActiveEvent(state, eventID)
	if next.ActiveEventID == state.ActiveEventID {
		return state
	}
	s.Save(ctx, next)
	return next
}

func (s *Store) AddItemToEvent(ctx context.Context, state models.State, eventID string, item models.Item) models.State {
	return s.commit(ctx, state, eventID, AddItemToEvent(state, eventID, item))
}

func (s *Store) RemoveItemFromEvent(ctx context.Context, state models.State, eventID, itemID string) models.State {
	return s.commit(ctx, state, eventID, RemoveItemFromEvent(state, eventID, itemID))
}

func (s *Store) UpdateItemInEvent(ctx context.Context, state models.State, eventID string, item models.Item) models.State {
	return s.commit(ctx, state, eventID, UpdateItemInEvent(state, eventID, item))
}

func (s *Store) ReorderItemsInEvent(ctx context.Context, state models.State, eventID string, newOrder []models.Item) models.State {
	return s.commit(ctx, state, eventID, ReorderItemsInEvent(state, eventID, newOrder))
}

func (s *Store) MoveItemInEvent(ctx context.Context, state models.State, eventID, srcID, dstID string) models.State {
	return s.commit(ctx, state, eventID, MoveItemInEvent(state, eventID, srcID, dstID))
}

func (s *Store) AddTransaction(ctx context.Context, state models.State, eventID string, tx models.Transaction) models.State {
	return s.commit(ctx, state, eventID, AddTransaction(state, eventID, tx))
}

func (s *Store) CloseEvent(ctx context.Context, state models.State, eventID string) models.State {
	return s.commit(ctx, state, eventID, CloseEvent(state, eventID))
}

func (s *Store) DeleteEvent(ctx context.Context, state models.State, eventID string) models.State {
	return s.commit(ctx, state, eventID, DeleteEvent(state, eventID))
}
