package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body.")
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	maxAge := int(h.auth.GetAccessTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
	respondOK(c, "Logged in.", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	respondOK(c, "Logged out.", nil)
}

func (h *AuthHandler) Session(c *gin.Context) {
	user := middleware.CurrentUser(c)
	respondOK(c, "Session active.", user)
}
