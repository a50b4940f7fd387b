package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/circulation"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type StaffRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// Server exposes the circulation engine over HTTP. Write endpoints sit
// behind staff basic auth; /metrics and /health do not.
type Server struct {
	engine *circulation.Service
	staff  StaffRepo
	logger *zap.Logger
	server *http.Server
}

func New(engine *circulation.Service, staff StaffRepo, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		staff:  staff,
		logger: logger,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.basicAuthMiddleware)

	api.HandleFunc("/borrow", s.handleBorrow).Methods(http.MethodPost)
	api.HandleFunc("/returns", s.handleReturn).Methods(http.MethodPost)

	api.HandleFunc("/holds", s.handlePlaceHold).Methods(http.MethodPost)
	api.HandleFunc("/holds/{id}", s.handleGetHold).Methods(http.MethodGet)
	api.HandleFunc("/holds/{id}", s.handleCancelHold).Methods(http.MethodDelete)
	api.HandleFunc("/holds/{id}/checkout", s.handleCheckoutHold).Methods(http.MethodPost)

	api.HandleFunc("/loans/{id}", s.handleGetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/extend", s.handleExtendLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/return", s.handleReturnLoan).Methods(http.MethodPost)
	api.HandleFunc("/patrons/{patronID}/loans", s.handleListLoans).Methods(http.MethodGet)

	api.HandleFunc("/copies", s.handleAddCopy).Methods(http.MethodPost)
	api.HandleFunc("/copies/{id}", s.handleGetCopy).Methods(http.MethodGet)
	api.HandleFunc("/copies/{id}/retire", s.handleRetireCopy).Methods(http.MethodPost)
	api.HandleFunc("/items/{itemID}/copies", s.handleListCopies).Methods(http.MethodGet)
	api.HandleFunc("/items/{itemID}/queue", s.handleListQueue).Methods(http.MethodGet)

	return router
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		valid, err := s.staff.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, map[string]string{"error": message, "kind": kind})
}

// respondEngineError translates the engine's error taxonomy to HTTP status
// codes. The kind field keeps the two 409 families apart: "invalid_state" is
// a client mistake, "conflict" resolves by waiting. Anything outside the
// taxonomy is a 500 with a generic message.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, circulation.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, circulation.ErrForbidden), errors.Is(err, circulation.ErrPatronBlocked):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, circulation.ErrHoldExpired):
		respondError(w, http.StatusGone, "expired", err.Error())
	case errors.Is(err, circulation.ErrInvalidState):
		respondError(w, http.StatusConflict, "invalid_state", err.Error())
	case circulation.IsConflict(err):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.Error("Request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID       string `json:"item_id"`
		PatronID     string `json:"patron_id"`
		PatienceDays int    `json:"patience_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.ItemID == "" || req.PatronID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Missing item_id or patron_id")
		return
	}

	patience := time.Duration(req.PatienceDays) * 24 * time.Hour
	outcome, err := s.engine.RequestBorrow(r.Context(), req.ItemID, req.PatronID, patience)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	if outcome.Loan != nil {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"result": "loaned",
			"loan":   outcome.Loan,
		})
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"result":      "queued",
		"reservation": outcome.Reservation,
		"position":    outcome.Position,
	})
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CopyID string `json:"copy_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	copyID, err := uuid.Parse(req.CopyID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid copy_id")
		return
	}

	loan, err := s.engine.ReturnCopy(r.Context(), copyID)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (s *Server) handlePlaceHold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID       string `json:"item_id"`
		PatronID     string `json:"patron_id"`
		PatienceDays int    `json:"patience_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.ItemID == "" || req.PatronID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Missing item_id or patron_id")
		return
	}

	patience := time.Duration(req.PatienceDays) * 24 * time.Hour
	res, err := s.engine.PlaceHold(r.Context(), req.ItemID, req.PatronID, patience)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetHold(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid reservation ID")
		return
	}

	status, err := s.engine.GetHold(r.Context(), id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservation": status.Reservation,
		"position":    status.Position,
	})
}

func (s *Server) handleCancelHold(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid reservation ID")
		return
	}
	patronID := r.URL.Query().Get("patron_id")

	res, err := s.engine.CancelHold(r.Context(), id, patronID)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleCheckoutHold(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid reservation ID")
		return
	}

	var req struct {
		PatronID string `json:"patron_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.PatronID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Missing patron_id")
		return
	}

	loan, err := s.engine.Checkout(r.Context(), circulation.CheckoutRequest{
		PatronID:      req.PatronID,
		ReservationID: &id,
	})
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid loan ID")
		return
	}

	loan, err := s.engine.GetLoan(r.Context(), id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (s *Server) handleExtendLoan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid loan ID")
		return
	}

	var req struct {
		PatronID string `json:"patron_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.PatronID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Missing patron_id")
		return
	}

	loan, err := s.engine.ExtendLoan(r.Context(), id, req.PatronID)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (s *Server) handleReturnLoan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid loan ID")
		return
	}

	loan, err := s.engine.ReturnLoan(r.Context(), id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	patronID := mux.Vars(r)["patronID"]
	activeOnly := r.URL.Query().Get("active") == "true"

	loans, err := s.engine.ListLoansByPatron(r.Context(), patronID, 0, activeOnly)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (s *Server) handleAddCopy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID    string `json:"item_id"`
		ShelfCode string `json:"shelf_code"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Missing item_id")
		return
	}

	copy, err := s.engine.AddCopy(r.Context(), req.ItemID, req.ShelfCode, req.Note)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, copy)
}

func (s *Server) handleGetCopy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid copy ID")
		return
	}

	copy, err := s.engine.GetCopy(r.Context(), id)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, copy)
}

func (s *Server) handleRetireCopy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid copy ID")
		return
	}

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	status := repository.CopyStatus(req.Status)
	if !status.Retired() {
		respondError(w, http.StatusBadRequest, "bad_request", "status must be DAMAGED, LOST or MAINTENANCE")
		return
	}

	copy, err := s.engine.MarkUnavailable(r.Context(), id, status, req.Note)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, copy)
}

func (s *Server) handleListCopies(w http.ResponseWriter, r *http.Request) {
	copies, err := s.engine.ListCopies(r.Context(), mux.Vars(r)["itemID"])
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, copies)
}

func (s *Server) handleListQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := s.engine.ListQueue(r.Context(), mux.Vars(r)["itemID"])
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, queue)
}
