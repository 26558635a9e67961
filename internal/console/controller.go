package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/bus"
)

const eventSource = "comanda-console"

// Result is what a controller operation hands to the thin adapter: the fresh
// render, an optional user-visible alert and, for close-out, a confirmation
// prompt that must be answered before anything is sent upstream.
type Result struct {
	View         *ComandaView `json:"view"`
	Alert        string       `json:"alert,omitempty"`
	NeedsConfirm bool         `json:"needs_confirm,omitempty"`
	Success      bool         `json:"success"`
}

// Controller drives one console session per call. It owns no session state
// itself, so any number of sessions can share one instance.
type Controller struct {
	api       ComandaAPI
	publisher events.Publisher
	logger    aqm.Logger
}

func NewController(api ComandaAPI, publisher events.Publisher, logger aqm.Logger) *Controller {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Controller{
		api:       api,
		publisher: publisher,
		logger:    logger,
	}
}

// LoadMenu fetches the catalog once for the session. There is no retry and no
// partial catalog; on failure the picker stays empty and staff get an alert.
func (c *Controller) LoadMenu(ctx context.Context, s *Session) *Result {
	menu, err := c.api.Cardapio(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		c.logger.Error("cannot load cardapio", "error", err)
		return &Result{View: RenderComanda(s), Alert: "Não foi possível carregar o cardápio."}
	}

	s.Menu = menu
	return &Result{View: RenderComanda(s), Success: true}
}

// SelectTable makes mesaID the single active table and reloads its order
// wholesale. A load failure resets the order to empty and re-renders; staff
// cannot tell it apart from "no order yet" (see DESIGN.md), so it is only
// logged here.
func (c *Controller) SelectTable(ctx context.Context, s *Session, mesaID string) *Result {
	s.mu.Lock()
	s.MesaID = mesaID
	s.Editing = nil
	gen := s.beginLoad()
	s.mu.Unlock()

	lines, err := c.api.Mesa(ctx, mesaID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loadCurrent(gen, mesaID) {
		c.logger.Info("discarding stale comanda load", "mesa_id", mesaID)
		return &Result{View: RenderComanda(s)}
	}

	if err != nil {
		c.logger.Error("cannot load comanda, resetting to empty", "error", err, "mesa_id", mesaID)
		s.Comanda = Comanda{}
		return &Result{View: RenderComanda(s), Success: true}
	}

	s.Comanda = Comanda{Lines: lines}
	return &Result{View: RenderComanda(s), Success: true}
}

// AddItem launches an item on the active table. Missing table, missing item
// or a quantity below one is a silent no-op: no request leaves the console.
func (c *Controller) AddItem(ctx context.Context, s *Session, itemID string, quantidade int) *Result {
	s.mu.Lock()

	if s.MesaID == "" || itemID == "" || quantidade < 1 {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s)}
	}

	if s.addInFlight {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s), Alert: "Lançamento anterior ainda em andamento."}
	}
	s.addInFlight = true

	mesaID := s.MesaID
	s.mu.Unlock()

	req := AdicionarItemRequest{
		MesaID:     mesaID,
		ItemID:     itemID,
		Quantidade: quantidade,
		ID:         uuid.NewString(),
	}
	line, err := c.api.AdicionarItem(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addInFlight = false

	if s.MesaID != mesaID {
		c.logger.Info("discarding add-item result for inactive table", "mesa_id", mesaID)
		return &Result{View: RenderComanda(s)}
	}

	if err != nil {
		c.logger.Error("cannot add item", "error", err, "mesa_id", mesaID, "item_id", itemID)
		return &Result{View: RenderComanda(s), Alert: "Erro ao adicionar item."}
	}

	s.Comanda.Append(*line)
	s.Quantidade = 1
	return &Result{View: RenderComanda(s), Success: true}
}

// OpenEditor selects one line for edit/remove. Re-opening with another line
// replaces the slot; there is never more than one.
func (c *Controller) OpenEditor(s *Session, lineID string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.Comanda.Find(lineID)
	if !ok {
		return &Result{View: RenderComanda(s)}
	}

	s.Editing = &line
	return &Result{View: RenderComanda(s), Success: true}
}

// CloseEditor clears the edit slot without touching the order.
func (c *Controller) CloseEditor(s *Session) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Editing = nil
	return &Result{View: RenderComanda(s), Success: true}
}

// RemoveItem removes the line currently under edit. On failure the order and
// the editor stay exactly as they were.
func (c *Controller) RemoveItem(ctx context.Context, s *Session) *Result {
	s.mu.Lock()

	if s.MesaID == "" || s.Editing == nil {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s)}
	}

	mesaID := s.MesaID
	lineID := s.Editing.ID
	s.mu.Unlock()

	err := c.api.RemoverItem(ctx, mesaID, lineID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MesaID != mesaID {
		c.logger.Info("discarding remove-item result for inactive table", "mesa_id", mesaID)
		return &Result{View: RenderComanda(s)}
	}

	if err != nil {
		c.logger.Error("cannot remove item", "error", err, "mesa_id", mesaID, "item_pedido_id", lineID)
		return &Result{View: RenderComanda(s), Alert: "Erro ao remover item."}
	}

	s.Comanda.Remove(lineID)
	s.Editing = nil
	return &Result{View: RenderComanda(s), Success: true}
}

// EditValue updates the unit price of the line under edit with the
// server-confirmed value. A price of zero or less never leaves the console.
func (c *Controller) EditValue(ctx context.Context, s *Session, novoValor float64) *Result {
	s.mu.Lock()

	if novoValor <= 0 {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s), Alert: "O valor deve ser maior que zero."}
	}

	if s.MesaID == "" || s.Editing == nil {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s)}
	}

	mesaID := s.MesaID
	lineID := s.Editing.ID
	s.mu.Unlock()

	confirmado, err := c.api.EditarValor(ctx, mesaID, lineID, novoValor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MesaID != mesaID {
		c.logger.Info("discarding edit-value result for inactive table", "mesa_id", mesaID)
		return &Result{View: RenderComanda(s)}
	}

	if err != nil {
		c.logger.Error("cannot edit value", "error", err, "mesa_id", mesaID, "item_pedido_id", lineID)
		return &Result{View: RenderComanda(s), Alert: "Erro ao editar valor."}
	}

	s.Comanda.SetUnitPrice(lineID, confirmado)
	s.Editing = nil
	return &Result{View: RenderComanda(s), Success: true}
}

// ApplyDiscount stores the raw discount inputs and recomputes the displayed
// totals. Nothing is sent upstream; the discount is only persisted at
// close-out. The announcement is suppressed during the silent re-apply that
// follows every render.
func (c *Controller) ApplyDiscount(s *Session, valor, tipo string, announce bool) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DescontoValor = valor
	if tipo == DiscountFixed || tipo == DiscountPercent {
		s.DescontoTipo = tipo
	}

	view := RenderComanda(s)
	result := &Result{View: view, Success: true}
	if announce {
		result.Alert = fmt.Sprintf("Desconto de %s aplicado. Total: %s",
			FormatBRL(view.DescontoAplicado), FormatBRL(view.TotalFinal))
	}
	return result
}

// CloseBill settles the active table. The first call answers with a
// confirmation prompt carrying the table and the locally computed total; only
// a confirmed call sends the raw discount inputs upstream for authoritative
// recomputation. Success resets the whole session; failure leaves every bit
// of state untouched.
func (c *Controller) CloseBill(ctx context.Context, s *Session, confirmado bool) *Result {
	s.mu.Lock()

	if s.MesaID == "" || s.Comanda.Empty() {
		defer s.mu.Unlock()
		return &Result{View: RenderComanda(s), Alert: "A comanda está vazia ou nenhuma mesa selecionada."}
	}

	if !confirmado {
		view := RenderComanda(s)
		s.mu.Unlock()
		return &Result{
			View:         view,
			NeedsConfirm: true,
			Alert:        fmt.Sprintf("Confirmar o fechamento da Mesa %s com Total de %s?", view.MesaID, view.TotalLabel),
		}
	}

	mesaID := s.MesaID
	descontoTipo := s.DescontoTipo
	descontoValor := ParseDiscountValue(s.DescontoValor)
	s.mu.Unlock()

	fechamento, err := c.api.FecharConta(ctx, mesaID, descontoTipo, descontoValor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.MesaID != mesaID {
		c.logger.Info("discarding close-bill result for inactive table", "mesa_id", mesaID)
		return &Result{View: RenderComanda(s)}
	}

	if err != nil {
		alert := "Erro ao fechar conta."
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			alert = "Erro de comunicação com o servidor ao fechar conta."
		}
		c.logger.Error("cannot close bill", "error", err, "mesa_id", mesaID)
		return &Result{View: RenderComanda(s), Alert: alert}
	}

	c.publishComandaFechada(ctx, mesaID, fechamento)

	s.reset()
	return &Result{
		View:    RenderComanda(s),
		Success: true,
		Alert: fmt.Sprintf("Conta da Mesa %s fechada! Subtotal: %s, Desconto: %s, Total Final: %s.",
			mesaID, FormatBRL(fechamento.Subtotal), FormatBRL(fechamento.ValorDesconto), FormatBRL(fechamento.TotalFinal)),
	}
}

// Render re-renders the current state without mutating anything.
func (c *Controller) Render(s *Session) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Result{View: RenderComanda(s), Success: true}
}

func (c *Controller) publishComandaFechada(ctx context.Context, mesaID string, fechamento *Fechamento) {
	if c.publisher == nil || fechamento == nil {
		return
	}

	event := bus.ComandaFechadaEvent{
		EventType:     bus.EventComandaFechada,
		MesaID:        mesaID,
		Subtotal:      fechamento.Subtotal,
		ValorDesconto: fechamento.ValorDesconto,
		TotalFinal:    fechamento.TotalFinal,
		Source:        eventSource,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("cannot marshal comanda closed event", "error", err, "mesa_id", mesaID)
		return
	}

	if err := c.publisher.Publish(ctx, bus.ComandaStatusTopic, payload); err != nil {
		c.logger.Error("cannot publish comanda closed event", "error", err, "mesa_id", mesaID)
	}
}
