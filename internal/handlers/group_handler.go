package handlers

import (
	"fmt"
	"net/http"

	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/gin-gonic/gin"
)

const groupPage = "/group_management"

type JoinGroupRequest struct {
	Code string `form:"code" binding:"required,max=10"`
}

func (h *Handler) GroupManagement(c *gin.Context) {
	overview, err := h.Membership.GroupOverview(c.Request.Context(), h.user(c))
	if err != nil {
		h.redirect(c, "/", middleware.FlashError, h.serviceFailure(c, "group overview", err))
		return
	}
	h.render(c, http.StatusOK, "group_management.html", "Gestión de Hospedaje en Grupos", gin.H{
		"Overview": overview,
	})
}

func (h *Handler) CreateGroup(c *gin.Context) {
	group, err := h.Membership.CreateGroup(c.Request.Context(), h.user(c))
	if err != nil {
		h.redirect(c, groupPage, middleware.FlashError, h.serviceFailure(c, "create group", err))
		return
	}
	h.redirect(c, groupPage, middleware.FlashSuccess,
		fmt.Sprintf("Grupo %q creado y te has unido exitosamente.", group.Code))
}

func (h *Handler) JoinGroup(c *gin.Context) {
	var req JoinGroupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirect(c, groupPage, middleware.FlashError, "Ingresa el código del grupo.")
		return
	}

	group, err := h.Membership.JoinGroup(c.Request.Context(), h.user(c), req.Code)
	if err != nil {
		h.redirect(c, groupPage, middleware.FlashError, h.serviceFailure(c, "join group", err))
		return
	}
	h.redirect(c, groupPage, middleware.FlashSuccess,
		fmt.Sprintf("Te has unido al grupo %q exitosamente.", group.Code))
}

func (h *Handler) LeaveGroup(c *gin.Context) {
	deleted, err := h.Membership.LeaveGroup(c.Request.Context(), h.user(c))
	if err != nil {
		h.redirect(c, groupPage, middleware.FlashError, h.serviceFailure(c, "leave group", err))
		return
	}
	if deleted {
		h.redirect(c, groupPage, middleware.FlashInfo, "Has salido del grupo y el grupo vacío ha sido eliminado.")
		return
	}
	h.redirect(c, groupPage, middleware.FlashSuccess, "Has salido del grupo exitosamente.")
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.Membership.DeleteGroup(c.Request.Context(), h.user(c)); err != nil {
		h.redirect(c, groupPage, middleware.FlashError, h.serviceFailure(c, "delete group", err))
		return
	}
	h.redirect(c, groupPage, middleware.FlashSuccess, "Has eliminado el grupo exitosamente.")
}
