package bus

import "time"

const (
	// ComandaStatusTopic delivers close-out notifications emitted by the console.
	ComandaStatusTopic = "comandas.status"

	// EventComandaFechada identifies a closed-bill event payload.
	EventComandaFechada = "comanda.fechada"
)

// ComandaFechadaEvent carries the server-confirmed close-out summary so
// downstream consumers (cash register, reporting) never recompute totals.
type ComandaFechadaEvent struct {
	EventType     string    `json:"event_type"`
	MesaID        string    `json:"mesa_id"`
	Subtotal      float64   `json:"subtotal"`
	ValorDesconto float64   `json:"valor_desconto"`
	TotalFinal    float64   `json:"total_final"`
	Source        string    `json:"source,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
