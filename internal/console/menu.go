package console

import "sort"

// MenuItem mirrors one catalog entry returned by the comanda API.
type MenuItem struct {
	ID    string  `json:"id"`
	Nome  string  `json:"nome"`
	Valor float64 `json:"valor"`
}

// Menu is the session-cached catalog, keyed by item id. It is immutable once
// fetched; a failed fetch leaves the session without a catalog (no partials).
type Menu map[string]MenuItem

func (m Menu) Empty() bool {
	return len(m) == 0
}

// Item returns the catalog entry for id.
func (m Menu) Item(id string) (MenuItem, bool) {
	item, ok := m[id]
	return item, ok
}

// MenuOption is one selectable entry in the item picker.
type MenuOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Options renders the picker entries in a stable id order.
func (m Menu) Options() []MenuOption {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	options := make([]MenuOption, 0, len(ids))
	for _, id := range ids {
		item := m[id]
		options = append(options, MenuOption{
			ID:    id,
			Label: item.Nome + " (" + FormatBRL(item.Valor) + ")",
		})
	}
	return options
}
