package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/farellandr/encuentro/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Email           string `form:"email" binding:"required,email,max=120"`
	Password        string `form:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	ProfileRequest
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"current_password" binding:"required"`
}

func (h *Handler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderRegister(c, http.StatusOK, profileForm{})
}

func (h *Handler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.AddFlash(c, middleware.FlashError, bindingMessage(err))
		h.renderRegister(c, http.StatusBadRequest, req.form(req.Email))
		return
	}

	user, err := h.Accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.profile(),
	})
	if err != nil {
		status, _ := helpers.ServiceError(err)
		middleware.AddFlash(c, middleware.FlashError, h.serviceFailure(c, "register", err))
		h.renderRegister(c, status, req.form(req.Email))
		return
	}

	if err := middleware.SignIn(c, user); err != nil {
		h.Log.Error("sign in after register failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	h.redirect(c, "/", middleware.FlashSuccess, "Registro exitoso. ¡Bienvenido!")
}

func (h *Handler) renderRegister(c *gin.Context, status int, form profileForm) {
	h.render(c, status, "register.html", "Registro de Usuario", gin.H{
		"Form":    form,
		"Options": views.ProfileOptions(),
	})
}

func (h *Handler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", "Iniciar Sesión", gin.H{
		"Next": safeNext(c.Query("next")),
	})
}

func (h *Handler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	next := safeNext(c.PostForm("next"))
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.AddFlash(c, middleware.FlashError, "Email o contraseña incorrectos.")
		h.render(c, http.StatusBadRequest, "login.html", "Iniciar Sesión", gin.H{"Next": next, "Email": req.Email})
		return
	}

	user, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Email o contraseña incorrectos."
		if !errors.Is(err, service.ErrInvalidCredentials) {
			status = http.StatusInternalServerError
			message = h.serviceFailure(c, "login", err)
		}
		middleware.AddFlash(c, middleware.FlashError, message)
		h.render(c, status, "login.html", "Iniciar Sesión", gin.H{"Next": next, "Email": req.Email})
		return
	}

	if err := middleware.SignIn(c, user); err != nil {
		h.Log.Error("sign in failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		h.redirect(c, "/login", middleware.FlashError, helpers.GenericErrorMessage)
		return
	}
	h.redirect(c, next, middleware.FlashSuccess, "Inicio de sesión exitoso.")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.SignOut(c); err != nil {
		h.Log.Warn("sign out failed", zap.Error(err))
	}
	h.redirect(c, "/", middleware.FlashInfo, "Has cerrado sesión.")
}
