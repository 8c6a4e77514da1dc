package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/services"
)

type WeighingHandler struct {
	log      *logger.Logger
	weighing services.WeighingService
}

func NewWeighingHandler(weighing services.WeighingService, log *logger.Logger) *WeighingHandler {
	return &WeighingHandler{log: log.With("handler", "WeighingHandler"), weighing: weighing}
}

// Record accepts the weighing form: a "payload" JSON part plus optional
// "weighingProof" file parts.
func (h *WeighingHandler) Record(c *gin.Context) {
	var input services.RecordWeighingInput
	if !bindPayload(c, &input) {
		return
	}
	var photos []services.FileUpload
	if form, err := c.MultipartForm(); err == nil {
		photos = fileUploads(form.File["weighingProof"])
	}
	weighing, err := h.weighing.Record(c.Request.Context(), middleware.CurrentUser(c), input, photos)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Weighing recorded.", weighing)
}
