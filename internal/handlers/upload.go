// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/the-exchanger/exchanger-backend/internal/i18n"
	"github.com/the-exchanger/exchanger-backend/internal/services"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /api/uploads/listing-images
func (h *UploadHandler) UploadListingImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := utils.GetActorID(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	images, err := h.storageService.UploadListingImages(files)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUploadComplete),
		"images":  images,
	})
}
