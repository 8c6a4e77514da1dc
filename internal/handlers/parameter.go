package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/services"
)

type ParameterHandler struct {
	log        *logger.Logger
	parameters services.ParameterService
}

func NewParameterHandler(parameters services.ParameterService, log *logger.Logger) *ParameterHandler {
	return &ParameterHandler{log: log.With("handler", "ParameterHandler"), parameters: parameters}
}

func (h *ParameterHandler) List(c *gin.Context) {
	// ?all=true returns the unpaginated set the QC form needs.
	if c.Query("all") == "true" {
		items, err := h.parameters.GetAll(c.Request.Context())
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		respondOK(c, "", gin.H{"parameters": items, "total": int64(len(items))})
		return
	}
	offset, limit := pagination(c)
	items, total, err := h.parameters.List(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"parameters": items, "total": total})
}

func (h *ParameterHandler) Create(c *gin.Context) {
	var input services.ParameterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.parameters.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Parameter created.", item)
}

func (h *ParameterHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.ParameterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.parameters.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Parameter updated.", item)
}

func (h *ParameterHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.parameters.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Parameter deleted.", nil)
}
