package console

import (
	"encoding/json"
	"net/http"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

const sessionCookie = "comanda_session"

// Handler is the thin adapter between HTTP and the controller. It carries no
// order logic: it resolves the session, forwards the operation and responds
// with the Result as-is.
type Handler struct {
	controller *Controller
	sessions   *SessionStore
	logger     aqm.Logger
	config     *aqm.Config
	tlm        *telemetry.HTTP
}

func NewHandler(controller *Controller, sessions *SessionStore, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		controller: controller,
		sessions:   sessions,
		logger:     logger,
		config:     config,
		tlm:        telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mesas/{id}/selecionar", h.SelectTable)

	r.Route("/comanda", func(r chi.Router) {
		r.Get("/", h.Render)
		r.Post("/itens", h.AddItem)
		r.Post("/itens/{id}/editor", h.OpenEditor)
		r.Delete("/editor", h.CloseEditor)
		r.Post("/editor/remover", h.RemoveItem)
		r.Post("/editor/valor", h.EditValue)
		r.Post("/desconto", h.ApplyDiscount)
		r.Post("/fechar", h.CloseBill)
	})
}

// Render returns the current view for the session, creating the session (and
// loading the catalog once) on first contact.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Render")
	defer finish()

	session, fresh := h.session(w, r)
	if fresh {
		result := h.controller.LoadMenu(r.Context(), session)
		aqm.RespondSuccess(w, result)
		return
	}

	aqm.RespondSuccess(w, h.controller.Render(session))
}

func (h *Handler) SelectTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SelectTable")
	defer finish()

	mesaID := chi.URLParam(r, "id")
	if mesaID == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Missing table id")
		return
	}

	session, fresh := h.session(w, r)
	if fresh {
		h.controller.LoadMenu(r.Context(), session)
	}

	aqm.RespondSuccess(w, h.controller.SelectTable(r.Context(), session, mesaID))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddItem")
	defer finish()

	var req struct {
		ItemID     string `json:"item_id"`
		Quantidade int    `json:"quantidade"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.AddItem(r.Context(), session, req.ItemID, req.Quantidade))
}

func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OpenEditor")
	defer finish()

	lineID := chi.URLParam(r, "id")
	if lineID == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Missing item id")
		return
	}

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.OpenEditor(session, lineID))
}

func (h *Handler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CloseEditor")
	defer finish()

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.CloseEditor(session))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveItem")
	defer finish()

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.RemoveItem(r.Context(), session))
}

func (h *Handler) EditValue(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.EditValue")
	defer finish()

	var req struct {
		NovoValor float64 `json:"novo_valor"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.EditValue(r.Context(), session, req.NovoValor))
}

func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ApplyDiscount")
	defer finish()

	var req struct {
		Valor string `json:"valor"`
		Tipo  string `json:"tipo"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.ApplyDiscount(session, req.Valor, req.Tipo, true))
}

func (h *Handler) CloseBill(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CloseBill")
	defer finish()

	var req struct {
		Confirmado bool `json:"confirmado"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	session, _ := h.session(w, r)
	aqm.RespondSuccess(w, h.controller.CloseBill(r.Context(), session, req.Confirmado))
}

// session resolves the console session from the cookie, creating one when
// absent or expired. The second return reports a freshly created session.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if session, err := h.sessions.Get(cookie.Value); err == nil {
			return session, false
		}
	}

	session := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.log(r).Debug("cannot decode request payload", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}
