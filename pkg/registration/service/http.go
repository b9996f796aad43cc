package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/vrsc-identity/pkg/app/errors"
	apphttp "github.com/chainsafe/vrsc-identity/pkg/app/http"
	"github.com/chainsafe/vrsc-identity/pkg/identity"
)

const maxRequestBody = 1 << 20

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the identity endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/identities", apphttp.HandleError(h.submit))
	r.Get("/identities/{id}", apphttp.HandleError(h.status))
}

func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req identity.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	sub, err := h.service.Submit(r.Context(), req)
	if err != nil {
		return err
	}

	return apphttp.WriteJSON(w, http.StatusAccepted, sub)
}

func (h *HTTP) status(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if id == "" {
		return apperrors.BadRequestError(nil, "id is required")
	}

	p, err := h.service.Status(r.Context(), id)
	if err != nil {
		return err
	}

	return apphttp.WriteJSON(w, http.StatusOK, p)
}
