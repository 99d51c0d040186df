// Package catalog manages the ordered item list of one event. Every
// function returns a fresh slice and leaves its input untouched.
package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// DefaultColor is used when an item arrives without a color.
const DefaultColor = "#cccccc"

// validateName validates that a name is not empty or just whitespace
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("name", "cannot be empty")
	}
	return nil
}

// CreateItem builds a new item with a fresh id. The price goes through
// money.Parse, so unparseable input becomes zero instead of failing.
func CreateItem(name, price, color string) (models.Item, error) {
	if err := validateName(name); err != nil {
		return models.Item{}, err
	}
	return models.Item{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Price: money.Parse(price),
		Color: strings.TrimSpace(color),
	}, nil
}

// EditItem applies new field values to item, keeping its id.
func EditItem(item models.Item, name, price, color string) (models.Item, error) {
	if err := validateName(name); err != nil {
		return models.Item{}, err
	}
	item.Name = strings.TrimSpace(name)
	item.Price = money.Parse(price)
	item.Color = strings.TrimSpace(color)
	return item, nil
}

// AddItem appends item.
func AddItem(items []models.Item, item models.Item) []models.Item {
	result := make([]models.Item, 0, len(items)+1)
	result = append(result, items...)
	return append(result, item)
}

// RemoveItem drops the item with the given id. Unknown ids are ignored.
func RemoveItem(items []models.Item, itemID string) []models.Item {
	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			result = append(result, item)
		}
	}
	return result
}

// UpdateItem replaces the item carrying updated.ID. Unknown ids are a no-op.
func UpdateItem(items []models.Item, updated models.Item) []models.Item {
	result := make([]models.Item, len(items))
	for i, item := range items {
		if item.ID == updated.ID {
			item = updated
		}
		result[i] = item
	}
	return result
}

// ReorderItems replaces the whole sequence with newOrder. The caller is
// trusted to pass a permutation; use OrderByIDs to get one checked.
func ReorderItems(_ []models.Item, newOrder []models.Item) []models.Item {
	result := make([]models.Item, len(newOrder))
	copy(result, newOrder)
	return result
}

// OrderByIDs arranges items in the order of ids. ids must name every item
// exactly once.
func OrderByIDs(items []models.Item, ids []string) ([]models.Item, error) {
	if len(ids) != len(items) {
		return nil, models.NewValidationError("order", "must list every item exactly once")
	}
	byID := IndexByID(items)
	result := make([]models.Item, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok || seen[id] {
			return nil, models.NewValidationError("order", "must list every item exactly once")
		}
		seen[id] = true
		result = append(result, item)
	}
	return result, nil
}

// MoveItem takes the source item out and inserts it where the target item
// was. Unknown ids or src == dst leave the order unchanged.
func MoveItem(items []models.Item, srcID, dstID string) []models.Item {
	result := make([]models.Item, len(items))
	copy(result, items)
	if srcID == dstID {
		return result
	}
	src, dst := indexOf(result, srcID), indexOf(result, dstID)
	if src < 0 || dst < 0 {
		return result
	}
	moved := result[src]
	result = append(result[:src], result[src+1:]...)
	result = append(result[:dst], append([]models.Item{moved}, result[dst:]...)...)
	return result
}

func indexOf(items []models.Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// IndexByID maps item ids to items.
func IndexByID(items []models.Item) map[string]models.Item {
	byID := make(map[string]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}

// Prices maps item ids to their current price.
func Prices(items []models.Item) map[string]money.Amount {
	prices := make(map[string]money.Amount, len(items))
	for _, item := range items {
		prices[item.ID] = item.Price
	}
	return prices
}
