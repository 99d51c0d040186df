package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// Template is the import/export file format: an event name and its items
// without ids.
type Template struct {
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

// TemplateItem is one catalog entry of a Template.
type TemplateItem struct {
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
	Color string       `json:"color"`
}

// rawTemplate keeps prices undecoded so they can go through money.Parse
// like any other user input.
type rawTemplate struct {
	Name  *string `json:"name"`
	Items []struct {
		Name  string          `json:"name"`
		Price json.RawMessage `json:"price"`
		Color string          `json:"color"`
	} `json:"items"`
}

var unsafeFileChars = regexp.MustCompile(`(?i)[^a-z0-9äöüß]`)

// DecodeTemplate reads an import file. Each item is rebuilt through
// CreateItem, so ids and unknown fields in the file are discarded.
func DecodeTemplate(r io.Reader) (string, []models.Item, error) {
	var raw rawTemplate
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return "", nil, fmt.Errorf("%w: %v", models.ErrInvalidImport, err)
	}
	if raw.Name == nil || raw.Items == nil {
		return "", nil, fmt.Errorf("%w: name and items are required", models.ErrInvalidImport)
	}

	items := make([]models.Item, 0, len(raw.Items))
	for i, it := range raw.Items {
		color := it.Color
		if color == "" {
			color = DefaultColor
		}
		price, _ := money.ParseRaw(it.Price)
		item, err := CreateItem(it.Name, price.String(), color)
		if err != nil {
			return "", nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return *raw.Name, items, nil
}

// Export strips ids from the event's catalog.
func Export(event models.Event) Template {
	items := make([]TemplateItem, 0, len(event.Items))
	for _, item := range event.Items {
		items = append(items, TemplateItem{Name: item.Name, Price: item.Price, Color: item.Color})
	}
	return Template{Name: event.Name, Items: items}
}

// ExportFileName derives a download file name from an event name.
func ExportFileName(eventName string) string {
	return unsafeFileChars.ReplaceAllString(eventName, "_") + ".json"
}

// Instantiate creates fresh items for every entry of t.
func (t Template) Instantiate() ([]models.Item, error) {
	items := make([]models.Item, 0, len(t.Items))
	for i, it := range t.Items {
		color := it.Color
		if color == "" {
			color = DefaultColor
		}
		item, err := CreateItem(it.Name, it.Price.String(), color)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ExampleItems is the preset festival catalog offered when setting up an
// event, including a deposit and its return.
func ExampleItems() Template {
	return Template{
		Name: "Vereinsfest",
		Items: []TemplateItem{
			{Name: "Softdrinks", Price: 200, Color: "#3498db"},
			{Name: "Bier", Price: 250, Color: "#e67e22"},
			{Name: "Wasser", Price: 150, Color: "#85c1e9"},
			{Name: "Wein", Price: 300, Color: "#9b59b6"},
			{Name: "Schorle", Price: 200, Color: "#27ae60"},
			{Name: "Pfand+", Price: 200, Color: "#95a5a6"},
			{Name: "Pfand-", Price: -200, Color: "#95a5a6"},
			{Name: "Grillwurst", Price: 350, Color: "#e67e22"},
			{Name: "Bratwurst", Price: 300, Color: "#d35400"},
			{Name: "Pommes", Price: 300, Color: "#f1c40f"},
			{Name: "Steak", Price: 600, Color: "#795548"},
			{Name: "Kaffee", Price: 200, Color: "#4e342e"},
			{Name: "Kuchen", Price: 250, Color: "#d7ccc8"},
			{Name: "Torte", Price: 300, Color: "#f48fb1"},
		},
	}
}
