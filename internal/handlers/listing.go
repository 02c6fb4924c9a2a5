// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/i18n"
	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/services"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// GET /api/listings
func (h *ListingHandler) SearchListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.ListingFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Status:   models.ListingStatus(c.Query("status")),
		Sort:     params.Sort,
		Page:     params.Page,
		Limit:    params.Limit,
	}

	if raw := c.Query("owner"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid owner id", nil)
			return
		}
		filter.OwnerID = &ownerID
	}

	listings, total, err := h.listingService.SearchListings(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(listings, total, params))
}

// GET /api/listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "listing")
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// POST /api/listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), actorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// PATCH /api/listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	var req services.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), id, actorID, &req)
	if err != nil {
		handleServiceError(c, err, "listing")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingUpdated),
		"listing": listing,
	})
}

// DELETE /api/listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), id, actorID); err != nil {
		handleServiceError(c, err, "listing")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingDeleted),
	})
}

// GET /api/users/me/listings
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	h.listOwned(c, false)
}

// GET /api/listings/my-available
//
// The picker used when assembling an offer: only listings the actor could
// still attach as offered items.
func (h *ListingHandler) GetMyAvailableListings(c *gin.Context) {
	h.listOwned(c, true)
}

func (h *ListingHandler) listOwned(c *gin.Context, availableOnly bool) {
	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	listings, err := h.listingService.ListOwned(c.Request.Context(), actorID, availableOnly)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"listings": listings})
}
