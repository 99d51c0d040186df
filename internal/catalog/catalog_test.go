package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

func testItems() []models.Item {
	return []models.Item{
		{ID: "a", Name: "Bier", Price: 250, Color: "#e67e22"},
		{ID: "b", Name: "Wasser", Price: 150, Color: "#85c1e9"},
		{ID: "c", Name: "Pfand-", Price: -200, Color: "#95a5a6"},
	}
}

func ids(items []models.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestCreateItem(t *testing.T) {
	t.Run("trims name and color and parses price", func(t *testing.T) {
		item, err := CreateItem("  Bier ", "2.50", " #e67e22 ")

		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "Bier", item.Name)
		assert.Equal(t, money.Amount(250), item.Price)
		assert.Equal(t, "#e67e22", item.Color)
	})

	t.Run("negative price is allowed", func(t *testing.T) {
		item, err := CreateItem("Pfand-", "-2", "#95a5a6")

		require.NoError(t, err)
		assert.Equal(t, money.Amount(-200), item.Price)
	})

	t.Run("non-numeric price coerces to zero", func(t *testing.T) {
		item, err := CreateItem("Gratis", "free", "")

		require.NoError(t, err)
		assert.Equal(t, money.Zero, item.Price)
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		_, err := CreateItem("   ", "2.00", "#fff")

		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("ids are unique", func(t *testing.T) {
		first, err := CreateItem("A", "1", "")
		require.NoError(t, err)
		second, err := CreateItem("A", "1", "")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestEditItem(t *testing.T) {
	original := testItems()[0]

	t.Run("keeps the id", func(t *testing.T) {
		edited, err := EditItem(original, "Helles", "3", "#000000")

		require.NoError(t, err)
		assert.Equal(t, original.ID, edited.ID)
		assert.Equal(t, "Helles", edited.Name)
		assert.Equal(t, money.Amount(300), edited.Price)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := EditItem(original, "", "3", "#000000")

		assert.True(t, models.IsValidation(err))
	})
}

func TestItemCollection(t *testing.T) {
	t.Run("add appends without touching the input", func(t *testing.T) {
		items := testItems()
		result := AddItem(items, models.Item{ID: "d", Name: "Wein"})

		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(result))
		assert.Len(t, items, 3)
	})

	t.Run("remove drops by id", func(t *testing.T) {
		result := RemoveItem(testItems(), "b")

		assert.Equal(t, []string{"a", "c"}, ids(result))
	})

	t.Run("remove of unknown id keeps everything", func(t *testing.T) {
		assert.Equal(t, testItems(), RemoveItem(testItems(), "zzz"))
	})

	t.Run("update replaces by id", func(t *testing.T) {
		items := testItems()
		result := UpdateItem(items, models.Item{ID: "b", Name: "Sprudel", Price: 180})

		assert.Equal(t, "Sprudel", result[1].Name)
		assert.Equal(t, money.Amount(180), result[1].Price)
		assert.Equal(t, "Wasser", items[1].Name)
	})

	t.Run("update of unknown id is a no-op", func(t *testing.T) {
		assert.Equal(t, testItems(), UpdateItem(testItems(), models.Item{ID: "zzz", Name: "X"}))
	})

	t.Run("reorder replaces the sequence", func(t *testing.T) {
		items := testItems()
		result := ReorderItems(items, []models.Item{items[2], items[0], items[1]})

		assert.Equal(t, []string{"c", "a", "b"}, ids(result))
	})
}

func TestOrderByIDs(t *testing.T) {
	t.Run("arranges by the given ids", func(t *testing.T) {
		result, err := OrderByIDs(testItems(), []string{"b", "c", "a"})

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, ids(result))
	})

	for name, order := range map[string][]string{
		"missing id":   {"a", "b"},
		"unknown id":   {"a", "b", "x"},
		"duplicate id": {"a", "a", "b"},
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := OrderByIDs(testItems(), order)

			assert.True(t, models.IsValidation(err))
		})
	}
}

func TestMoveItem(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		want     []string
	}{
		{"forward", "a", "c", []string{"b", "c", "a"}},
		{"backward", "c", "a", []string{"c", "a", "b"}},
		{"neighbour", "a", "b", []string{"b", "a", "c"}},
		{"same id", "b", "b", []string{"a", "b", "c"}},
		{"unknown source", "x", "a", []string{"a", "b", "c"}},
		{"unknown target", "a", "x", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := testItems()
			assert.Equal(t, tt.want, ids(MoveItem(items, tt.src, tt.dst)))
			assert.Equal(t, []string{"a", "b", "c"}, ids(items))
		})
	}
}

func TestIndexes(t *testing.T) {
	items := testItems()

	byID := IndexByID(items)
	assert.Len(t, byID, 3)
	assert.Equal(t, "Wasser", byID["b"].Name)

	prices := Prices(items)
	assert.Equal(t, money.Amount(-200), prices["c"])
}
