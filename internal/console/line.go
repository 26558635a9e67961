package console

import (
	"encoding/json"
	"strings"
)

// Line is one launched item on a comanda. The id is unique within the order;
// it is generated client-side as a correlation token, but the server copy is
// always the canonical one.
type Line struct {
	ID            string  `json:"id"`
	ItemID        string  `json:"item_id"`
	Nome          string  `json:"nome"`
	ValorUnitario float64 `json:"valor_unitario"`
	Quantidade    int     `json:"quantidade"`
}

// Total is the line amount before any discount.
func (l Line) Total() float64 {
	return l.ValorUnitario * float64(l.Quantidade)
}

// UnmarshalJSON accepts both string and numeric line ids. Older clients sent
// millisecond timestamps as numbers; the server echoes whatever it received.
func (l *Line) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID            json.RawMessage `json:"id"`
		ItemID        string          `json:"item_id"`
		Nome          string          `json:"nome"`
		ValorUnitario float64         `json:"valor_unitario"`
		Quantidade    int             `json:"quantidade"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id := strings.TrimSpace(string(aux.ID))
	if strings.HasPrefix(id, `"`) {
		if err := json.Unmarshal(aux.ID, &id); err != nil {
			return err
		}
	} else if id == "null" {
		id = ""
	}

	*l = Line{
		ID:            id,
		ItemID:        aux.ItemID,
		Nome:          aux.Nome,
		ValorUnitario: aux.ValorUnitario,
		Quantidade:    aux.Quantidade,
	}
	return nil
}
