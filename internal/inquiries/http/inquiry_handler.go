// Package http provides HTTP handlers for inquiry operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	"github.com/rmarques/marketgate/internal/httputil"
	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
	"github.com/rmarques/marketgate/internal/inquiries/http/dto"
	inquiriesUseCase "github.com/rmarques/marketgate/internal/inquiries/usecase"
)

// InquiryHandler handles HTTP requests for inquiry operations.
type InquiryHandler struct {
	inquiryUseCase inquiriesUseCase.InquiryUseCase
	logger         *slog.Logger
}

// NewInquiryHandler creates a new inquiry handler with required dependencies.
func NewInquiryHandler(inquiryUseCase inquiriesUseCase.InquiryUseCase, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryUseCase: inquiryUseCase,
		logger:         logger,
	}
}

// ListHandler returns one page of the account's inquiries.
// GET /v1/inquiries?status=&page=&limit= - Requires scope inquiries:read.
func (h *InquiryHandler) ListHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	page, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := inquiriesDomain.ListFilter{
		AccountID: identity.Account.ID,
		Page:      page,
		Limit:     limit,
	}
	if status := c.Query("status"); status != "" {
		s := inquiriesDomain.Status(status)
		filter.Status = &s
	}

	inquiries, total, err := h.inquiryUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	meta := httputil.NewMeta(page, limit, total)
	httputil.DataWithMeta(c, http.StatusOK, dto.MapInquiriesToResponse(inquiries), meta)
}

// GetHandler retrieves one of the account's inquiries.
// GET /v1/inquiries/:id - Requires scope inquiries:read.
func (h *InquiryHandler) GetHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	inquiryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid inquiry ID format: must be a valid UUID"),
			h.logger)
		return
	}

	inquiry, err := h.inquiryUseCase.Get(c.Request.Context(), inquiryID, identity.Account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusOK, dto.MapInquiryToResponse(inquiry))
}

// UpdateHandler applies a partial update to one of the account's inquiries.
// PATCH /v1/inquiries/:id - Requires scope inquiries:write.
// Setting status to replied with a reply_body queues the reply email.
func (h *InquiryHandler) UpdateHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	inquiryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid inquiry ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	inquiry, err := h.inquiryUseCase.Update(c.Request.Context(), inquiryID, identity.Account.ID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusOK, dto.MapInquiryToResponse(inquiry))
}
