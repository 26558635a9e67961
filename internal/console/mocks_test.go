package console

import (
	"context"
	"sync"
)

// MockAPI is a hand-rolled ComandaAPI double. Every call is recorded so tests
// can assert that validation no-ops never reach the wire.
type MockAPI struct {
	mu sync.Mutex

	CardapioFunc      func(ctx context.Context) (Menu, error)
	MesaFunc          func(ctx context.Context, mesaID string) ([]Line, error)
	AdicionarItemFunc func(ctx context.Context, req AdicionarItemRequest) (*Line, error)
	RemoverItemFunc   func(ctx context.Context, mesaID, itemPedidoID string) error
	EditarValorFunc   func(ctx context.Context, mesaID, itemPedidoID string, novoValor float64) (float64, error)
	FecharContaFunc   func(ctx context.Context, mesaID, tipo string, valor float64) (*Fechamento, error)

	CardapioCalls int
	MesaCalls     []string
	AddCalls      []AdicionarItemRequest
	RemoveCalls   [][2]string
	EditCalls     []float64
	CloseCalls    []CloseCall
}

type CloseCall struct {
	MesaID string
	Tipo   string
	Valor  float64
}

func NewMockAPI() *MockAPI {
	return &MockAPI{}
}

func (m *MockAPI) Cardapio(ctx context.Context) (Menu, error) {
	m.mu.Lock()
	m.CardapioCalls++
	m.mu.Unlock()
	if m.CardapioFunc != nil {
		return m.CardapioFunc(ctx)
	}
	return Menu{}, nil
}

func (m *MockAPI) Mesa(ctx context.Context, mesaID string) ([]Line, error) {
	m.mu.Lock()
	m.MesaCalls = append(m.MesaCalls, mesaID)
	m.mu.Unlock()
	if m.MesaFunc != nil {
		return m.MesaFunc(ctx, mesaID)
	}
	return []Line{}, nil
}

func (m *MockAPI) AdicionarItem(ctx context.Context, req AdicionarItemRequest) (*Line, error) {
	m.mu.Lock()
	m.AddCalls = append(m.AddCalls, req)
	m.mu.Unlock()
	if m.AdicionarItemFunc != nil {
		return m.AdicionarItemFunc(ctx, req)
	}
	return &Line{ID: req.ID, ItemID: req.ItemID, Quantidade: req.Quantidade}, nil
}

func (m *MockAPI) RemoverItem(ctx context.Context, mesaID, itemPedidoID string) error {
	m.mu.Lock()
	m.RemoveCalls = append(m.RemoveCalls, [2]string{mesaID, itemPedidoID})
	m.mu.Unlock()
	if m.RemoverItemFunc != nil {
		return m.RemoverItemFunc(ctx, mesaID, itemPedidoID)
	}
	return nil
}

func (m *MockAPI) EditarValor(ctx context.Context, mesaID, itemPedidoID string, novoValor float64) (float64, error) {
	m.mu.Lock()
	m.EditCalls = append(m.EditCalls, novoValor)
	m.mu.Unlock()
	if m.EditarValorFunc != nil {
		return m.EditarValorFunc(ctx, mesaID, itemPedidoID, novoValor)
	}
	return novoValor, nil
}

func (m *MockAPI) FecharConta(ctx context.Context, mesaID, tipo string, valor float64) (*Fechamento, error) {
	m.mu.Lock()
	m.CloseCalls = append(m.CloseCalls, CloseCall{MesaID: mesaID, Tipo: tipo, Valor: valor})
	m.mu.Unlock()
	if m.FecharContaFunc != nil {
		return m.FecharContaFunc(ctx, mesaID, tipo, valor)
	}
	return &Fechamento{}, nil
}

// MockPublisher is a mock implementation of events.Publisher for testing.
type MockPublisher struct {
	mu          sync.Mutex
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
	Published   []PublishedMsg
}

type PublishedMsg struct {
	Topic   string
	Payload []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedMsg{Topic: topic, Payload: msg})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	return nil
}
