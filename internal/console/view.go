package console

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a value in Brazilian currency format.
func FormatBRL(valor float64) string {
	return brlPrinter.Sprintf("R$ %.2f", valor)
}

// LineView is one rendered comanda line.
type LineView struct {
	ID         string `json:"id"`
	Quantidade int    `json:"quantidade"`
	Nome       string `json:"nome"`
	// Info is the "2x Pizza Calabresa (R$ 45,00)" label shown on the row.
	Info  string `json:"info"`
	Valor string `json:"valor"`
}

// EditorView is the single-slot edit/remove modal for one selected line.
type EditorView struct {
	LineID string `json:"line_id"`
	Titulo string `json:"titulo"`
	// NovoValor pre-fills the price field with the current unit price.
	NovoValor       string `json:"novo_valor"`
	ConfirmaRemocao string `json:"confirma_remocao"`
}

// ComandaView is the full render of the order panel. It is a pure function of
// the session state; repeated renders with unchanged state are identical.
type ComandaView struct {
	MesaID  string `json:"mesa_id"`
	Titulo  string `json:"titulo"`
	Visible bool   `json:"visible"`

	Linhas      []LineView `json:"linhas"`
	Placeholder string     `json:"placeholder,omitempty"`

	Subtotal         float64 `json:"subtotal"`
	DescontoAplicado float64 `json:"desconto_aplicado"`
	TotalFinal       float64 `json:"total_final"`

	SubtotalLabel string `json:"subtotal_label"`
	DescontoLabel string `json:"desconto_label"`
	TotalLabel    string `json:"total_label"`

	// Picker state: selectable catalog entries and the quantity input, which
	// resets to 1 after a successful add.
	Cardapio   []MenuOption `json:"cardapio"`
	Quantidade int          `json:"quantidade"`

	Editor *EditorView `json:"editor,omitempty"`
}

const emptyPlaceholder = "Nenhum item lançado."

// RenderComanda rebuilds the visible line list and recomputes the totals from
// the current order and discount inputs. The entered discount is re-applied
// silently; announcing is the caller's concern.
func RenderComanda(s *Session) *ComandaView {
	view := &ComandaView{
		MesaID:     s.MesaID,
		Visible:    s.MesaID != "",
		Cardapio:   s.Menu.Options(),
		Quantidade: s.Quantidade,
	}
	if s.MesaID != "" {
		view.Titulo = fmt.Sprintf("Comanda da Mesa %s", s.MesaID)
	}

	if s.Comanda.Empty() {
		view.Placeholder = emptyPlaceholder
		view.SubtotalLabel = FormatBRL(0)
		view.DescontoLabel = FormatBRL(0)
		view.TotalLabel = FormatBRL(0)
		view.Editor = renderEditor(s)
		return view
	}

	view.Linhas = make([]LineView, 0, s.Comanda.Len())
	for _, line := range s.Comanda.Lines {
		view.Linhas = append(view.Linhas, LineView{
			ID:         line.ID,
			Quantidade: line.Quantidade,
			Nome:       line.Nome,
			Info:       fmt.Sprintf("%dx %s (%s)", line.Quantidade, line.Nome, FormatBRL(line.ValorUnitario)),
			Valor:      FormatBRL(line.Total()),
		})
	}

	subtotal := s.Comanda.Subtotal()
	desconto, total := ComputeDiscount(s.DescontoValor, s.DescontoTipo, subtotal)

	view.Subtotal = subtotal
	view.DescontoAplicado = desconto
	view.TotalFinal = total
	view.SubtotalLabel = FormatBRL(subtotal)
	view.DescontoLabel = FormatBRL(desconto)
	view.TotalLabel = FormatBRL(total)
	view.Editor = renderEditor(s)
	return view
}

func renderEditor(s *Session) *EditorView {
	if s.Editing == nil {
		return nil
	}
	line := *s.Editing
	return &EditorView{
		LineID:          line.ID,
		Titulo:          fmt.Sprintf("%s (%s)", line.Nome, FormatBRL(line.ValorUnitario)),
		NovoValor:       fmt.Sprintf("%.2f", line.ValorUnitario),
		ConfirmaRemocao: fmt.Sprintf("Deseja realmente remover 1x %s?", line.Nome),
	}
}
