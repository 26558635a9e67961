package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError is a non-2xx answer from the comanda API. Transport failures
// surface as plain wrapped errors; the two are distinct failure categories.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("comanda api returned status %d", e.Code)
}

// AdicionarItemRequest is the add-item payload. ID is the client-generated
// correlation token; the server remains the id authority.
type AdicionarItemRequest struct {
	MesaID     string `json:"mesa_id"`
	ItemID     string `json:"item_id"`
	Quantidade int    `json:"quantidade"`
	ID         string `json:"id"`
}

// Fechamento is the authoritative close-out summary computed upstream.
type Fechamento struct {
	Subtotal      float64 `json:"subtotal"`
	ValorDesconto float64 `json:"valor_desconto"`
	TotalFinal    float64 `json:"total_final"`
}

// ComandaAPI is the slice of the upstream REST surface the console uses.
type ComandaAPI interface {
	Cardapio(ctx context.Context) (Menu, error)
	Mesa(ctx context.Context, mesaID string) ([]Line, error)
	AdicionarItem(ctx context.Context, req AdicionarItemRequest) (*Line, error)
	RemoverItem(ctx context.Context, mesaID, itemPedidoID string) error
	EditarValor(ctx context.Context, mesaID, itemPedidoID string, novoValor float64) (float64, error)
	FecharConta(ctx context.Context, mesaID, descontoTipo string, descontoValor float64) (*Fechamento, error)
}

// APIClient talks to the comanda backend. The backend speaks plain JSON
// bodies (no response envelope); success is any 2xx status.
type APIClient struct {
	baseURL string
	httpc   *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
	}
}

func (c *APIClient) Cardapio(ctx context.Context) (Menu, error) {
	var raw map[string]struct {
		Nome  string  `json:"nome"`
		Valor float64 `json:"valor"`
	}
	if err := c.do(ctx, http.MethodGet, "/cardapio", nil, &raw); err != nil {
		return nil, err
	}

	menu := make(Menu, len(raw))
	for id, entry := range raw {
		menu[id] = MenuItem{ID: id, Nome: entry.Nome, Valor: entry.Valor}
	}
	return menu, nil
}

func (c *APIClient) Mesa(ctx context.Context, mesaID string) ([]Line, error) {
	var lines []Line
	path := "/mesa/" + url.PathEscape(mesaID)
	if err := c.do(ctx, http.MethodGet, path, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *APIClient) AdicionarItem(ctx context.Context, req AdicionarItemRequest) (*Line, error) {
	var resp struct {
		Item Line `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/adicionar_item", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (c *APIClient) RemoverItem(ctx context.Context, mesaID, itemPedidoID string) error {
	payload := map[string]string{
		"mesa_id":        mesaID,
		"item_pedido_id": itemPedidoID,
	}
	return c.do(ctx, http.MethodPost, "/remover_item", payload, nil)
}

func (c *APIClient) EditarValor(ctx context.Context, mesaID, itemPedidoID string, novoValor float64) (float64, error) {
	payload := map[string]interface{}{
		"mesa_id":        mesaID,
		"item_pedido_id": itemPedidoID,
		"novo_valor":     novoValor,
	}
	var resp struct {
		Item struct {
			ValorUnitario float64 `json:"valor_unitario"`
		} `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/editar_valor", payload, &resp); err != nil {
		return 0, err
	}
	return resp.Item.ValorUnitario, nil
}

func (c *APIClient) FecharConta(ctx context.Context, mesaID, descontoTipo string, descontoValor float64) (*Fechamento, error) {
	payload := map[string]interface{}{
		"mesa_id":        mesaID,
		"desconto_tipo":  descontoTipo,
		"desconto_valor": descontoValor,
	}
	var fechamento Fechamento
	if err := c.do(ctx, http.MethodPost, "/fechar_conta", payload, &fechamento); err != nil {
		return nil, err
	}
	return &fechamento, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("cannot encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("comanda api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}
	return nil
}
