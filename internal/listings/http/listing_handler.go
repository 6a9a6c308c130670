// Package http provides HTTP handlers for listing operations.
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
	"github.com/rmarques/marketgate/internal/listings/http/dto"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
	listingsUseCase "github.com/rmarques/marketgate/internal/listings/usecase"
	customValidation "github.com/rmarques/marketgate/internal/validation"
)

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	listingUseCase listingsUseCase.ListingUseCase
	logger         *slog.Logger
}

// NewListingHandler creates a new listing handler with required dependencies.
func NewListingHandler(listingUseCase listingsUseCase.ListingUseCase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		logger:         logger,
	}
}

// ListHandler returns one page of the account's listings.
// GET /v1/listings?status=&page=&limit= - Requires scope listings:read.
func (h *ListingHandler) ListHandler(c *gin.Context) {
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

	filter := listingsDomain.ListFilter{
		AccountID: identity.Account.ID,
		Page:      page,
		Limit:     limit,
	}
	if status := c.Query("status"); status != "" {
		s := listingsDomain.Status(status)
		filter.Status = &s
	}

	listings, total, err := h.listingUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	meta := httputil.NewMeta(page, limit, total)
	httputil.DataWithMeta(c, http.StatusOK, dto.MapListingsToResponse(listings), meta)
}

// CreateHandler creates a new listing for the account.
// POST /v1/listings - Requires scope listings:write.
// Returns 201 Created, or 409 Conflict when the plan quota is exhausted.
func (h *ListingHandler) CreateHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	listing, err := h.listingUseCase.Create(c.Request.Context(), identity.Account, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusCreated, dto.MapListingToResponse(listing))
}

// GetHandler retrieves one of the account's listings.
// GET /v1/listings/:id - Requires scope listings:read.
// Another tenant's listing yields the same 404 as a missing one.
func (h *ListingHandler) GetHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid listing ID format: must be a valid UUID"),
			h.logger)
		return
	}

	listing, err := h.listingUseCase.Get(c.Request.Context(), listingID, identity.Account.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusOK, dto.MapListingToResponse(listing))
}

// UpdateHandler applies a partial update to one of the account's listings.
// PATCH /v1/listings/:id - Requires scope listings:write.
// Only allow-listed fields are applied; unknown fields are ignored.
func (h *ListingHandler) UpdateHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid listing ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	listing, err := h.listingUseCase.Update(c.Request.Context(), listingID, identity.Account.ID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusOK, dto.MapListingToResponse(listing))
}

// DeleteHandler soft deletes one of the account's listings.
// DELETE /v1/listings/:id - Requires scope listings:write.
// Returns 204 No Content.
func (h *ListingHandler) DeleteHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid listing ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.listingUseCase.Delete(c.Request.Context(), listingID, identity.Account.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
