package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/services"
)

// MasterDataHandler exposes the four reference catalogs. The endpoints are
// intentionally symmetric; only the input shape differs for suppliers.
type MasterDataHandler struct {
	log    *logger.Logger
	master services.MasterDataService
}

func NewMasterDataHandler(master services.MasterDataService, log *logger.Logger) *MasterDataHandler {
	return &MasterDataHandler{log: log.With("handler", "MasterDataHandler"), master: master}
}

// Suppliers

func (h *MasterDataHandler) ListSuppliers(c *gin.Context) {
	offset, limit := pagination(c)
	items, total, err := h.master.ListSuppliers(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"suppliers": items, "total": total})
}

func (h *MasterDataHandler) CreateSupplier(c *gin.Context) {
	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.CreateSupplier(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Supplier created.", item)
}

func (h *MasterDataHandler) UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.UpdateSupplier(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Supplier updated.", item)
}

func (h *MasterDataHandler) DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.master.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Supplier deleted.", nil)
}

// Materials

func (h *MasterDataHandler) ListMaterials(c *gin.Context) {
	offset, limit := pagination(c)
	items, total, err := h.master.ListMaterials(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"materials": items, "total": total})
}

func (h *MasterDataHandler) CreateMaterial(c *gin.Context) {
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.CreateMaterial(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Material created.", item)
}

func (h *MasterDataHandler) UpdateMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.UpdateMaterial(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Material updated.", item)
}

func (h *MasterDataHandler) DeleteMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.master.DeleteMaterial(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Material deleted.", nil)
}

// Conditions

func (h *MasterDataHandler) ListConditions(c *gin.Context) {
	offset, limit := pagination(c)
	items, total, err := h.master.ListConditions(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"conditions": items, "total": total})
}

func (h *MasterDataHandler) CreateCondition(c *gin.Context) {
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.CreateCondition(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Condition created.", item)
}

func (h *MasterDataHandler) UpdateCondition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.UpdateCondition(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Condition updated.", item)
}

func (h *MasterDataHandler) DeleteCondition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.master.DeleteCondition(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Condition deleted.", nil)
}

// QC statuses

func (h *MasterDataHandler) ListQcStatuses(c *gin.Context) {
	offset, limit := pagination(c)
	items, total, err := h.master.ListQcStatuses(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"qc_statuses": items, "total": total})
}

func (h *MasterDataHandler) CreateQcStatus(c *gin.Context) {
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.CreateQcStatus(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "QC status created.", item)
}

func (h *MasterDataHandler) UpdateQcStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.NamedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	item, err := h.master.UpdateQcStatus(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "QC status updated.", item)
}

func (h *MasterDataHandler) DeleteQcStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.master.DeleteQcStatus(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "QC status deleted.", nil)
}
