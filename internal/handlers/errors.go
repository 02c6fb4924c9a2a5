// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/the-exchanger/exchanger-backend/internal/services"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// resource names the i18n key family for 404s ("listing", "offer", "user").
func handleServiceError(c *gin.Context, err error, resource string) {
	switch {
	case services.IsNotFound(err):
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			utils.NotFoundResponse(c, "listing")
		case errors.Is(err, services.ErrOfferNotFound):
			utils.NotFoundResponse(c, "offer")
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "user")
		default:
			utils.NotFoundResponse(c, resource)
		}
	case services.IsForbidden(err):
		utils.ForbiddenResponse(c, err.Error())
	case services.IsConflict(err):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrSelfOffer),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}
