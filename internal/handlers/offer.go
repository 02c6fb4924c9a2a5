// internal/handlers/offer.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/i18n"
	"github.com/the-exchanger/exchanger-backend/internal/services"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

type OfferHandler struct {
	offerService *services.OfferService
}

func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// POST /api/trade-offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), actorID, &req)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOfferCreated),
		"offer":   offer,
	})
}

// GET /api/trade-offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	offer, err := h.offerService.GetOffer(c.Request.Context(), id, actorID)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{"offer": offer})
}

// GET /api/trade-offers/listing/:id
func (h *OfferHandler) GetOffersForListing(c *gin.Context) {
	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid listing id", nil)
		return
	}

	offers, err := h.offerService.ListForListing(c.Request.Context(), listingID, actorID)
	if err != nil {
		handleServiceError(c, err, "listing")
		return
	}

	utils.SuccessResponse(c, gin.H{"offers": offers})
}

// GET /api/trade-offers/mine
func (h *OfferHandler) GetMyOffers(c *gin.Context) {
	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var listingID *uuid.UUID
	if raw := c.Query("listing_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid listing id", nil)
			return
		}
		listingID = &id
	}

	offers, err := h.offerService.ListMine(c.Request.Context(), actorID, listingID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"offers": offers})
}

// PATCH /api/trade-offers/:id/offered-items
func (h *OfferHandler) UpdateOfferedItems(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	var req services.UpdateOfferedItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	offer, err := h.offerService.UpdateOfferedItems(c.Request.Context(), id, actorID, &req)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyItemsUpdated),
		"offer":   offer,
	})
}

// POST /api/trade-offers/:id/messages
func (h *OfferHandler) PostMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	offer, err := h.offerService.PostMessage(c.Request.Context(), id, actorID, req.Text)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMessagePosted),
		"offer":   offer,
	})
}

// POST /api/trade-offers/:id/accept
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	offer, err := h.offerService.Accept(c.Request.Context(), id, actorID)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOfferAccepted),
		"offer":   offer,
	})
}

// POST /api/trade-offers/:id/decline
func (h *OfferHandler) DeclineOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	offer, err := h.offerService.Decline(c.Request.Context(), id, actorID)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOfferDeclined),
		"offer":   offer,
	})
}

// POST /api/trade-offers/:id/mark
func (h *OfferHandler) MarkOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actorID, ok := utils.GetActorID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid offer id", nil)
		return
	}

	var req services.MarkOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	offer, err := h.offerService.Mark(c.Request.Context(), id, actorID, &req)
	if err != nil {
		handleServiceError(c, err, "offer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOfferMarked),
		"offer":   offer,
	})
}
