package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/services"
)

type ArrivalHandler struct {
	log      *logger.Logger
	arrivals services.ArrivalService
	gatepass services.GatePassService
}

func NewArrivalHandler(arrivals services.ArrivalService, gatepass services.GatePassService, log *logger.Logger) *ArrivalHandler {
	return &ArrivalHandler{
		log:      log.With("handler", "ArrivalHandler"),
		arrivals: arrivals,
		gatepass: gatepass,
	}
}

// Create handles the intake form: a typed JSON "payload" part plus
// "securityProof" file parts.
func (h *ArrivalHandler) Create(c *gin.Context) {
	var input services.CreateArrivalInput
	if !bindPayload(c, &input) {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "Invalid multipart form.")
		return
	}
	proofs := fileUploads(form.File["securityProof"])

	arrival, err := h.arrivals.Create(c.Request.Context(), middleware.CurrentUser(c), input, proofs)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondCreated(c, "Arrival registered.", arrival)
}

func (h *ArrivalHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	input := services.ListArrivalsInput{Offset: offset, Limit: limit}
	if dayStr := c.Query("day"); dayStr != "" {
		day, err := time.Parse("2006-01-02", dayStr)
		if err != nil {
			respondBadRequest(c, "Invalid day, expected YYYY-MM-DD.")
			return
		}
		input.Day = day
	}
	summaries, total, err := h.arrivals.List(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", gin.H{"arrivals": summaries, "total": total})
}

func (h *ArrivalHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	arrival, err := h.arrivals.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", arrival)
}

// GetByCode resolves a scanned gate-pass code.
func (h *ArrivalHandler) GetByCode(c *gin.Context) {
	arrival, err := h.arrivals.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", arrival)
}

func (h *ArrivalHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input services.ApproveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	warnings, err := h.arrivals.Approve(c.Request.Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "Arrival approved.", gin.H{"warnings": warnings})
}

// QR streams the printable gate-pass PNG.
func (h *ArrivalHandler) QR(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	png, err := h.gatepass.QRPng(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(200, "image/png", png)
}

func dashboardDay(c *gin.Context) (time.Time, bool) {
	dayStr := c.Query("day")
	if dayStr == "" {
		return time.Time{}, true
	}
	day, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		respondBadRequest(c, "Invalid day, expected YYYY-MM-DD.")
		return time.Time{}, false
	}
	return day, true
}

func (h *ArrivalHandler) SecurityDashboard(c *gin.Context) {
	day, ok := dashboardDay(c)
	if !ok {
		return
	}
	dash, err := h.arrivals.SecurityDashboard(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", dash)
}

func (h *ArrivalHandler) WeighingDashboard(c *gin.Context) {
	day, ok := dashboardDay(c)
	if !ok {
		return
	}
	dash, err := h.arrivals.WeighingDashboard(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", dash)
}

func (h *ArrivalHandler) QcDashboard(c *gin.Context) {
	day, ok := dashboardDay(c)
	if !ok {
		return
	}
	dash, err := h.arrivals.QcDashboard(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, "", dash)
}
