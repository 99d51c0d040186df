// Package register is the cash register session: it owns the current
// state snapshot and the cart, and maps every operator intent to one core
// operation. Intents are serialised so the store only ever sees one
// writer.
package register

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/Tiliavir/mvw-cashier-app/internal/cart"
	"github.com/Tiliavir/mvw-cashier-app/internal/catalog"
	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
	"github.com/Tiliavir/mvw-cashier-app/internal/store"
)

// Options tune a Session.
type Options struct {
	// VerifyTotals recomputes every transaction total from the catalog as
	// persisted before it is appended. A catalog changed in storage by
	// another writer rejects the sale with models.ErrTotalMismatch.
	VerifyTotals bool
}

// Session is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	store  *store.Store
	state  models.State
	cart   cart.Cart
	logger *zap.Logger
	opts   Options
}

// NewSession loads the persisted state and starts with an empty cart.
func NewSession(ctx context.Context, st *store.Store, logger *zap.Logger, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	state := st.Load(ctx)
	logger.Info("register session started",
		zap.Int("events", len(state.Events)),
		zap.Bool("verify_totals", opts.VerifyTotals))
	return &Session{
		store:  st,
		state:  state,
		cart:   cart.New(),
		logger: logger,
		opts:   opts,
	}
}

// State returns the current snapshot.
func (s *Session) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Event returns the event with the given id.
func (s *Session) Event(eventID string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.event(eventID)
}

func (s *Session) event(eventID string) (models.Event, error) {
	event, ok := store.GetEvent(s.state, eventID)
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}
	return event, nil
}

// ActiveEvent returns the event open for selling.
func (s *Session) ActiveEvent() (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeEvent()
}

func (s *Session) activeEvent() (models.Event, error) {
	event, ok := store.GetActiveEvent(s.state)
	if !ok {
		return models.Event{}, models.ErrNoActiveEvent
	}
	return event, nil
}

// CreateEvent starts a new event with the given catalog and makes it the
// active one.
func (s *Session) CreateEvent(ctx context.Context, name string, items []models.Item) (models.Event, error) {
	event, err := events.Create(name)
	if err != nil {
		return models.Event{}, err
	}
	for _, item := range items {
		event.Items = catalog.AddItem(event.Items, item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.store.AddEvent(ctx, s.state, event)
	s.cart = s.cart.Reset()
	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("name", event.Name),
		zap.Int("items", len(event.Items)))
	return event, nil
}

// ImportEvent creates an event from an import file.
func (s *Session) ImportEvent(ctx context.Context, r io.Reader) (models.Event, error) {
	name, items, err := catalog.DecodeTemplate(r)
	if err != nil {
		return models.Event{}, err
	}
	return s.CreateEvent(ctx, name, items)
}

// SetActive opens an existing event for selling. The cart is cleared since
// it refers to the previous catalog.
func (s *Session) SetActive(ctx context.Context, eventID string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.event(eventID)
	if err != nil {
		return models.Event{}, err
	}
	if event.Closed {
		return models.Event{}, fmt.Errorf("%w: %s", models.ErrEventClosed, eventID)
	}
	if !s.state.IsActive(eventID) {
		s.cart = s.cart.Reset()
	}
	s.state = s.store.SetActiveEvent(ctx, s.state, eventID)
	return event, nil
}

// CloseEvent closes the event for good.
func (s *Session) CloseEvent(ctx context.Context, eventID string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.event(eventID); err != nil {
		return models.Event{}, err
	}
	if s.state.IsActive(eventID) {
		s.cart = s.cart.Reset()
	}
	s.state = s.store.CloseEvent(ctx, s.state, eventID)
	s.logger.Info("event closed", zap.String("event_id", eventID))
	return s.event(eventID)
}

// DeleteEvent removes the event and its history.
func (s *Session) DeleteEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.event(eventID); err != nil {
		return err
	}
	if s.state.IsActive(eventID) {
		s.cart = s.cart.Reset()
	}
	s.state = s.store.DeleteEvent(ctx, s.state, eventID)
	s.logger.Info("event deleted", zap.String("event_id", eventID))
	return nil
}

// AddItem creates an item and appends it to the event's catalog.
func (s *Session) AddItem(ctx context.Context, eventID, name, price, color string) (models.Item, error) {
	item, err := catalog.CreateItem(name, price, color)
	if err != nil {
		return models.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.event(eventID); err != nil {
		return models.Item{}, err
	}
	s.state = s.store.AddItemToEvent(ctx, s.state, eventID, item)
	return item, nil
}

// UpdateItem changes name, price and color of an existing item.
func (s *Session) UpdateItem(ctx context.Context, eventID, itemID, name, price, color string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.item(eventID, itemID)
	if err != nil {
		return models.Item{}, err
	}
	updated, err := catalog.EditItem(current, name, price, color)
	if err != nil {
		return models.Item{}, err
	}
	s.state = s.store.UpdateItemInEvent(ctx, s.state, eventID, updated)
	return updated, nil
}

// RemoveItem drops an item from the catalog and from the cart. Past
// transactions keep referencing it.
func (s *Session) RemoveItem(ctx context.Context, eventID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.item(eventID, itemID); err != nil {
		return err
	}
	s.state = s.store.RemoveItemFromEvent(ctx, s.state, eventID, itemID)
	if s.state.IsActive(eventID) {
		next := cart.New()
		for id, quantity := range s.cart {
			if id != itemID {
				next[id] = quantity
			}
		}
		s.cart = next
	}
	return nil
}

func (s *Session) item(eventID, itemID string) (models.Item, error) {
	event, err := s.event(eventID)
	if err != nil {
		return models.Item{}, err
	}
	item, ok := catalog.IndexByID(event.Items)[itemID]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: %s", models.ErrItemNotFound, itemID)
	}
	return item, nil
}

// ReorderItems arranges the catalog in the order of ids, which must name
// every item exactly once.
func (s *Session) ReorderItems(ctx context.Context, eventID string, ids []string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.event(eventID)
	if err != nil {
		return nil, err
	}
	ordered, err := catalog.OrderByIDs(event.Items, ids)
	if err != nil {
		return nil, err
	}
	s.state = s.store.ReorderItemsInEvent(ctx, s.state, eventID, ordered)
	return ordered, nil
}

// MoveItem drops the source item onto the position of the target item.
func (s *Session) MoveItem(ctx context.Context, eventID, srcID, dstID string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.item(eventID, srcID); err != nil {
		return nil, err
	}
	if _, err := s.item(eventID, dstID); err != nil {
		return nil, err
	}
	s.state = s.store.MoveItemInEvent(ctx, s.state, eventID, srcID, dstID)
	event, err := s.event(eventID)
	if err != nil {
		return nil, err
	}
	return event.Items, nil
}

// Cart returns the current selection.
func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// AddToCart selects one more of an item of the active event.
func (s *Session) AddToCart(itemID string) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.activeEvent()
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.IndexByID(event.Items)[itemID]; !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrItemNotFound, itemID)
	}
	s.cart = s.cart.Add(itemID)
	return s.cart, nil
}

// DecrementCart selects one less of an item.
func (s *Session) DecrementCart(itemID string) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.DecrementOrRemove(itemID)
	return s.cart
}

// ResetCart abandons the current selection.
func (s *Session) ResetCart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Reset()
	return s.cart
}

// Quote computes the figures for the current cart without recording
// anything.
func (s *Session) Quote(received money.Amount, manualTip *money.Amount) (cart.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.activeEvent()
	if err != nil {
		return cart.Quote{}, err
	}
	return cart.Calculate(s.cart, catalog.Prices(event.Items), received, manualTip), nil
}

// Finalize records the current cart as a transaction of the active event
// and clears the cart.
func (s *Session) Finalize(ctx context.Context, received money.Amount, manualTip *money.Amount) (models.Transaction, cart.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.activeEvent()
	if err != nil {
		return models.Transaction{}, cart.Quote{}, err
	}
	tx, quote, err := cart.Finalize(s.cart, catalog.Prices(event.Items), received, manualTip)
	if err != nil {
		return models.Transaction{}, cart.Quote{}, err
	}
	if s.opts.VerifyTotals {
		if err := s.verify(ctx, event.ID, tx); err != nil {
			s.logger.Error("transaction rejected",
				zap.String("event_id", event.ID),
				zap.Error(err))
			return models.Transaction{}, cart.Quote{}, err
		}
	}

	pieces := s.cart.Count()
	s.state = s.store.AddTransaction(ctx, s.state, event.ID, tx)
	s.cart = s.cart.Reset()
	s.logger.Info("transaction recorded",
		zap.String("event_id", event.ID),
		zap.Int("pieces", pieces),
		zap.Stringer("total", tx.Total),
		zap.Stringer("tip", tx.Tip))
	return tx, quote, nil
}

// verify checks tx against the persisted copy of the event rather than
// the snapshot the cart was priced from.
func (s *Session) verify(ctx context.Context, eventID string, tx models.Transaction) error {
	persisted := s.store.Load(ctx)
	i := persisted.FindEvent(eventID)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrEventNotFound, eventID)
	}
	return events.Verify(persisted.Events[i], tx)
}

// Reset wipes all persisted data and the cart.
func (s *Session) Reset(ctx context.Context) models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.store.Reset(ctx)
	s.cart = s.cart.Reset()
	s.logger.Warn("all data reset")
	return s.state
}
