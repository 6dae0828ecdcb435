package handlers

import (
	"fmt"
	"net/http"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/farellandr/encuentro/internal/views"
	"github.com/gin-gonic/gin"
)

type ProfileRequest struct {
	Name         string `form:"name" binding:"required,max=100"`
	Age          int    `form:"age" binding:"required,gte=1,lte=120"`
	Phone        string `form:"phone" binding:"required,numeric,min=7,max=15"`
	City         string `form:"city" binding:"required,state"`
	NeedsLodging string `form:"needs_lodging"`
	Transport    string `form:"transport" binding:"required,transport"`
	LocalName    string `form:"local_name" binding:"required,max=100"`
	Membership   string `form:"membership" binding:"required,membership"`
	Situation    string `form:"situation" binding:"required,situation"`
}

func (r ProfileRequest) profile() service.Profile {
	return service.Profile{
		Name:         helpers.SanitizeText(r.Name),
		Age:          r.Age,
		Phone:        r.Phone,
		City:         r.City,
		NeedsLodging: helpers.FormBool(r.NeedsLodging),
		Transport:    r.Transport,
		LocalName:    helpers.SanitizeText(r.LocalName),
		Membership:   r.Membership,
		Situation:    r.Situation,
	}
}

func (r ProfileRequest) form(email string) profileForm {
	return profileForm{
		Email:        email,
		Name:         r.Name,
		Age:          r.Age,
		Phone:        r.Phone,
		City:         r.City,
		NeedsLodging: helpers.FormBool(r.NeedsLodging),
		Transport:    r.Transport,
		LocalName:    r.LocalName,
		Membership:   r.Membership,
		Situation:    r.Situation,
	}
}

// profileForm is what the profile inputs are filled with.
type profileForm struct {
	Email        string
	Name         string
	Age          int
	Phone        string
	City         string
	NeedsLodging bool
	Transport    string
	LocalName    string
	Membership   string
	Situation    string
}

func formFromUser(user *models.User) profileForm {
	return profileForm{
		Email:        user.Email,
		Name:         user.Name,
		Age:          user.Age,
		Phone:        user.Phone,
		City:         user.City,
		NeedsLodging: user.NeedsLodging,
		Transport:    user.Transport,
		LocalName:    user.LocalName,
		Membership:   user.Membership,
		Situation:    user.Situation,
	}
}

func (h *Handler) Profile(c *gin.Context) {
	user := h.user(c)

	payments, err := h.Payments.ListPayments(c.Request.Context(), user)
	if err != nil {
		h.redirect(c, "/", middleware.FlashError, h.serviceFailure(c, "list payments", err))
		return
	}

	h.render(c, http.StatusOK, "profile.html", fmt.Sprintf("Perfil de %s", user.Name), gin.H{
		"Payments": payments,
	})
}

func (h *Handler) EditProfilePage(c *gin.Context) {
	h.renderEditProfile(c, http.StatusOK, formFromUser(h.user(c)))
}

func (h *Handler) EditProfile(c *gin.Context) {
	user := h.user(c)

	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.AddFlash(c, middleware.FlashError, bindingMessage(err))
		h.renderEditProfile(c, http.StatusBadRequest, req.form(user.Email))
		return
	}

	if err := h.Accounts.UpdateProfile(c.Request.Context(), user, req.profile()); err != nil {
		h.redirect(c, "/edit_profile", middleware.FlashError, h.serviceFailure(c, "update profile", err))
		return
	}
	h.redirect(c, "/profile", middleware.FlashSuccess, "Perfil actualizado exitosamente.")
}

func (h *Handler) renderEditProfile(c *gin.Context, status int, form profileForm) {
	h.render(c, status, "edit_profile.html", "Editar Perfil", gin.H{
		"Form":    form,
		"Options": views.ProfileOptions(),
	})
}
