package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/krestenlaust/fappen/internal/service"
	apperrors "github.com/krestenlaust/fappen/pkg/errors"
	"github.com/krestenlaust/fappen/pkg/logger"
	"github.com/krestenlaust/fappen/pkg/pagination"
	"github.com/krestenlaust/fappen/pkg/validator"
)

// KioskHandler handles HTTP requests for the widget endpoints. Error logging
// uses the request-scoped logger stored in the context by the logging
// middleware.
type KioskHandler struct {
	service *service.KioskService
}

// NewKioskHandler creates a new widget HTTP handler.
func NewKioskHandler(svc *service.KioskService) *KioskHandler {
	return &KioskHandler{service: svc}
}

// --- Request DTOs ---

// SetQuantityRequest is the JSON body for overwriting a line quantity.
// Zero and negative quantities are accepted; they drop out of the buy
// string at checkout rather than being rejected here.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the JSON body for submitting the session cart.
type CheckoutRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

// --- Response envelope ---

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// --- Handlers ---

// StartSession handles POST /api/v1/widget/sessions
func (h *KioskHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StartSession(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: session})
}

// GetAccess handles GET /api/v1/widget/access
func (h *KioskHandler) GetAccess(w http.ResponseWriter, r *http.Request) {
	status := h.service.AccessStatus(r.Context())
	writeJSON(w, http.StatusOK, response{Data: map[string]any{"status": status}})
}

// GetCatalogue handles GET /api/v1/widget/catalogue
func (h *KioskHandler) GetCatalogue(w http.ResponseWriter, r *http.Request) {
	catalogue, err := h.service.Catalogue(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: catalogue})
}

// GetCart handles GET /api/v1/widget/sessions/{sessionID}/cart
func (h *KioskHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.service.CartSummary(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: summary})
}

// AddItem handles POST /api/v1/widget/sessions/{sessionID}/cart/items/{productID}
func (h *KioskHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be an integer"},
		})
		return
	}

	summary, err := h.service.AddItem(r.Context(), sessionID, productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: summary})
}

// SetItemQuantity handles PUT /api/v1/widget/sessions/{sessionID}/cart/items/{productID}
func (h *KioskHandler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be an integer"},
		})
		return
	}

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	summary, err := h.service.SetItemQuantity(r.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: summary})
}

// Checkout handles POST /api/v1/widget/sessions/{sessionID}/checkout
func (h *KioskHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	result, err := h.service.Checkout(r.Context(), sessionID, req.Username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// GetMember handles GET /api/v1/widget/members/{username}
func (h *KioskHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	member, err := h.service.MemberProfile(r.Context(), username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: member})
}

// GetBalance handles GET /api/v1/widget/members/{username}/balance
func (h *KioskHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	balance, err := h.service.MemberBalance(r.Context(), username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]int64{"balance": balance}})
}

// ListReceipts handles GET /api/v1/receipts/{memberID}
func (h *KioskHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "memberID must be an integer"},
		})
		return
	}

	params := pagination.FromRequest(r)

	result, err := h.service.Receipts(r.Context(), memberID, params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

// --- Helpers ---

func (h *KioskHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "NOT_FOUND"
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "INVALID_INPUT"
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnavailable):
		code = "UNAVAILABLE"
		message = "upstream service unavailable"
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: code, Message: message},
	})
}

func (h *KioskHandler) writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}
