// Package gateway serves a local JSON API over the bizdesk service. Every
// response is normalised to {"data": ...} or {"error": ...}, whatever
// envelope shape the backend endpoint used.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/buildinfo"
	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/service"
	"github.com/go-ports/bizdesk/internal/validate"
)

const maxBodyBytes = 1 << 20

// Handler routes gateway requests.
type Handler struct {
	router *chi.Mux
	svc    *service.Service
	log    zerolog.Logger
}

// New returns the gateway handler for svc.
func New(svc *service.Service, log zerolog.Logger) *Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(accessLog(log))
	router.Use(middleware.Recoverer)

	h := &Handler{router: router, svc: svc, log: log}
	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	h.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/dashboard", h.dashboard)
		r.Get("/sales", h.sales)
		r.Get("/banks/{id}/ledger", h.bankLedger)
		r.Get("/clients/{id}/statement", h.clientStatement)
		r.Get("/vendors/{id}", h.vendor)
		r.Get("/employees/{id}/salaries", h.salaryLedger)
		r.Get("/expenses/groups", h.expenseGroups)
		r.Get("/refs", h.searchRefs)
		r.Get("/{resource}", h.list)
		r.Post("/payments", h.createPayment)
		r.Post("/receipts", h.createReceipt)
		r.Post("/quotes/{kind}", h.quote)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("gateway listening")
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("gateway shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// accessLog logs one line per request.
func accessLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("gateway request")
		})
	}
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Data: v})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps err to a status: 400 for validation and blank ids, 404 for
// unknown records or resources, 502 for anything the backend did.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Problems})
		return
	case errors.Is(err, api.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrUnknownResource), errors.Is(err, api.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, service.ErrCacheDisabled):
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.log.Warn().Err(err).Str("path", r.URL.Path).Str("request_id", middleware.GetReqID(r.Context())).Msg("upstream failure")
	writeError(w, http.StatusBadGateway, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"api":     h.svc.API().DisplayURL(),
		"cache":   h.svc.CacheEnabled(),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context(), chi.URLParam(r, "resource"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

func dateRange(r *http.Request) api.DateRange {
	q := r.URL.Query()
	return api.DateRange{From: q.Get("from"), To: q.Get("to")}
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales(r.Context(), dateRange(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, sales)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d)
}

func (h *Handler) bankLedger(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ledger, err := h.svc.BankLedger(r.Context(), api.LedgerFilter{
		BankID:    models.ID(chi.URLParam(r, "id")),
		PartyType: q.Get("party_type"),
		PartyID:   models.ID(q.Get("party_id")),
		FromDate:  q.Get("from"),
		ToDate:    q.Get("to"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, ledger)
}

func (h *Handler) clientStatement(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.ClientStatement(r.Context(), models.ID(chi.URLParam(r, "id")), dateRange(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

func (h *Handler) vendor(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.VendorDetails(r.Context(), models.ID(chi.URLParam(r, "id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

func (h *Handler) salaryLedger(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	l, err := h.svc.SalaryLedger(r.Context(), api.SalaryFilter{
		EmployeeID: models.ID(chi.URLParam(r, "id")),
		Status:     q.Get("status"),
		StartDate:  q.Get("from"),
		EndDate:    q.Get("to"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, l)
}

func (h *Handler) expenseGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ExpenseGroups(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, groups)
}

func (h *Handler) searchRefs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := cache.ParseKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	refs, err := h.svc.SearchRefs(q.Get("q"), kind, 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, refs)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ack, err := h.svc.AddPayment(r.Context(), &in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, ack)
}

func (h *Handler) createReceipt(w http.ResponseWriter, r *http.Request) {
	var in models.ReceiptInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ack, err := h.svc.AddReceipt(r.Context(), &in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, ack)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var in models.SaleInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	in.ProductType = models.ProductType(strings.ToLower(chi.URLParam(r, "kind")))
	q, err := service.Quote(&in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusOK, q)
}
