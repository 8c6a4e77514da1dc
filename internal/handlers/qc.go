package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/services"
)

type QcHandler struct {
	log *logger.Logger
	qc  services.QcService
}

func NewQcHandler(qc services.QcService, log *logger.Logger) *QcHandler {
	return &QcHandler{log: log.With("handler", "QcHandler"), qc: qc}
}

// Submit accepts the QC form: a "payload" JSON part plus "photos.<i>" file
// parts, where <i> is the index of the item the photos belong to.
func (h *QcHandler) Submit(c *gin.Context) {
	var input services.SubmitQcInput
	if !bindPayload(c, &input) {
		return
	}

	photos := make(map[uuid.UUID][]services.FileUpload)
	if form, err := c.MultipartForm(); err == nil {
		for i, item := range input.Items {
			if headers := form.File[fmt.Sprintf("photos.%d", i)]; len(headers) > 0 {
				photos[item.ArrivalItemID] = fileUploads(headers)
			}
		}
	}

	if err := h.qc.Submit(c.Request.Context(), middleware.CurrentUser(c), input, photos); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "QC submitted.", nil)
}

// History returns every QC submission for one item, newest first.
func (h *QcHandler) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	history, err := h.qc.HistoryByItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"history": history})
}
