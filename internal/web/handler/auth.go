package handler

import (
	"errors"
	"net/http"

	"mindhaven/internal/logger"
	"mindhaven/internal/middleware"
	"mindhaven/internal/user/model"
	"mindhaven/internal/user/validator"
	appErrors "mindhaven/pkg/errors"
	"mindhaven/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// genericErrorMessage is shown instead of raw database errors, which are
// logged but never echoed to the page.
const genericErrorMessage = "Something went wrong. Please try again later."

func (h *PageHandler) ShowLogin(c *gin.Context) {
	if record := currentSession(c); record != nil {
		c.Redirect(http.StatusSeeOther, model.DashboardPath(record.Role))
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Registered": c.Query("registered") == "1",
		"Email":      "",
	})
}

func (h *PageHandler) PostLogin(c *gin.Context) {
	var form model.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Invalid form submission",
			"Email": "",
		})
		return
	}

	form.Email = utils.SanitizeEmail(form.Email)

	if fieldErrs := validator.ValidateLoginForm(&form); fieldErrs.HasErrors() {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Errors": fieldErrs,
			"Email":  form.Email,
		})
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Error": appErrors.ErrInvalidCredentials.Error(),
				"Email": form.Email,
			})
			return
		}

		logger.Error("Login failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": genericErrorMessage,
			"Email": form.Email,
		})
		return
	}

	h.setSessionCookie(c, result.SessionToken)
	c.Redirect(http.StatusSeeOther, result.RedirectPath)
}

func (h *PageHandler) ShowRegister(c *gin.Context) {
	if record := currentSession(c); record != nil {
		c.Redirect(http.StatusSeeOther, model.DashboardPath(record.Role))
		return
	}

	c.HTML(http.StatusOK, "register.html", emptyRegisterEcho())
}

func emptyRegisterEcho() gin.H {
	return gin.H{
		"FirstName": "",
		"LastName":  "",
		"Email":     "",
	}
}

func (h *PageHandler) PostRegister(c *gin.Context) {
	var form model.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		echo := emptyRegisterEcho()
		echo["Error"] = "Invalid form submission"
		c.HTML(http.StatusBadRequest, "register.html", echo)
		return
	}

	form.FirstName = utils.SanitizeString(form.FirstName)
	form.LastName = utils.SanitizeString(form.LastName)
	form.Email = utils.SanitizeEmail(form.Email)

	_, err := h.service.Register(c.Request.Context(), &form)
	if err != nil {
		// The sanitized input is echoed back so the user can correct it;
		// the password is never echoed.
		echo := gin.H{
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
		}

		var fieldErrs appErrors.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			echo["Errors"] = fieldErrs
			c.HTML(http.StatusOK, "register.html", echo)
		case errors.Is(err, appErrors.ErrDuplicateEmail):
			echo["Errors"] = appErrors.FieldErrors{"email": appErrors.ErrDuplicateEmail.Error()}
			c.HTML(http.StatusOK, "register.html", echo)
		default:
			logger.Error("Registration failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			echo["Error"] = genericErrorMessage
			c.HTML(http.StatusInternalServerError, "register.html", echo)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

func (h *PageHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		logger.Error("Logout failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}

	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/?logout=success")
}
