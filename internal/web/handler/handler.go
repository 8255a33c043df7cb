package handler

import (
	"net/http"

	"mindhaven/internal/config"
	"mindhaven/internal/middleware"
	"mindhaven/internal/session"
	"mindhaven/internal/user/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	service    *service.AuthService
	sessionCfg *config.SessionConfig
}

func NewPageHandler(service *service.AuthService, sessionCfg *config.SessionConfig) *PageHandler {
	return &PageHandler{
		service:    service,
		sessionCfg: sessionCfg,
	}
}

func (h *PageHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Landing)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.PostLogin)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.PostRegister)
	router.GET("/logout", h.Logout)

	router.GET("/admin", middleware.AdminOnly(), h.AdminDashboard)
	router.GET("/therapist", middleware.TherapistOnly(), h.TherapistDashboard)
	router.GET("/patient", middleware.PatientArea(), h.PatientDashboard)
}

// Landing renders the marketing page. The nav switches between
// login/register and dashboard/logout based on the session.
func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Session":       middleware.GetSession(c),
		"LogoutSuccess": c.Query("logout") == "success",
	})
}

func (h *PageHandler) AdminDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Session": middleware.GetSession(c),
	})
}

func (h *PageHandler) TherapistDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "therapist.html", gin.H{
		"Session": middleware.GetSession(c),
	})
}

func (h *PageHandler) PatientDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "patient.html", gin.H{
		"Session": middleware.GetSession(c),
	})
}

func (h *PageHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.sessionCfg.CookieName,
		token,
		int(h.sessionCfg.TTL.Seconds()),
		"/",
		"",
		h.sessionCfg.Secure,
		true,
	)
}

func (h *PageHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.Secure, true)
}

func currentSession(c *gin.Context) *session.Record {
	return middleware.GetSession(c)
}
