// Package store owns the root state. Transitions are pure functions from
// one State to the next; they never modify the State they are given, so a
// caller holding an older snapshot keeps seeing it unchanged. Transitions
// addressed at an unknown event return the input as is.
package store

import (
	"github.com/Tiliavir/mvw-cashier-app/internal/catalog"
	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
)

// withEvent applies fn to a copy of the event with the given id.
func withEvent(state models.State, eventID string, fn func(models.Event) models.Event) models.State {
	i := state.FindEvent(eventID)
	if i < 0 {
		return state
	}
	list := make([]models.Event, len(state.Events))
	copy(list, state.Events)
	list[i] = fn(list[i])
	state.Events = list
	return state
}

// AddEvent appends event and makes it the active one.
func AddEvent(state models.State, event models.Event) models.State {
	list := make([]models.Event, 0, len(state.Events)+1)
	list = append(list, state.Events...)
	state.Events = append(list, event)
	id := event.ID
	state.ActiveEventID = &id
	return state
}

// SetActiveEvent activates an existing open event. Unknown or closed
// events leave the state unchanged.
func SetActiveEvent(state models.State, eventID string) models.State {
	i := state.FindEvent(eventID)
	if i < 0 || state.Events[i].Closed {
		return state
	}
	id := eventID
	state.ActiveEventID = &id
	return state
}

// GetActiveEvent returns the active event. It reports false when nothing
// is active or the active id is stale.
func GetActiveEvent(state models.State) (models.Event, bool) {
	if state.ActiveEventID == nil {
		return models.Event{}, false
	}
	i := state.FindEvent(*state.ActiveEventID)
	if i < 0 || state.Events[i].Closed {
		return models.Event{}, false
	}
	return state.Events[i], true
}

// GetEvent returns the event with the given id.
func GetEvent(state models.State, eventID string) (models.Event, bool) {
	i := state.FindEvent(eventID)
	if i < 0 {
		return models.Event{}, false
	}
	return state.Events[i], true
}

func AddItemToEvent(state models.State, eventID string, item models.Item) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		e.Items = catalog.AddItem(e.Items, item)
		return e
	})
}

func RemoveItemFromEvent(state models.State, eventID, itemID string) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		e.Items = catalog.RemoveItem(e.Items, itemID)
		return e
	})
}

func UpdateItemInEvent(state models.State, eventID string, item models.Item) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		e.Items = catalog.UpdateItem(e.Items, item)
		return e
	})
}

func ReorderItemsInEvent(state models.State, eventID string, newOrder []models.Item) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		e.Items = catalog.ReorderItems(e.Items, newOrder)
		return e
	})
}

// MoveItemInEvent moves one item onto the position of another.
func MoveItemInEvent(state models.State, eventID, srcID, dstID string) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		e.Items = catalog.MoveItem(e.Items, srcID, dstID)
		return e
	})
}

func AddTransaction(state models.State, eventID string, tx models.Transaction) models.State {
	return withEvent(state, eventID, func(e models.Event) models.Event {
		return events.AddTransaction(e, tx)
	})
}

// CloseEvent closes the event. Closing the active event leaves no event
// active.
func CloseEvent(state models.State, eventID string) models.State {
	if state.FindEvent(eventID) < 0 {
		return state
	}
	state = withEvent(state, eventID, events.Close)
	if state.IsActive(eventID) {
		state.ActiveEventID = nil
	}
	return state
}

// DeleteEvent removes the event whatever its state.
func DeleteEvent(state models.State, eventID string) models.State {
	if state.FindEvent(eventID) < 0 {
		return state
	}
	list := make([]models.Event, 0, len(state.Events))
	for _, e := range state.Events {
		if e.ID != eventID {
			list = append(list, e)
		}
	}
	if state.IsActive(eventID) {
		state.ActiveEventID = nil
	}
	state.Events = list
	return state
}
