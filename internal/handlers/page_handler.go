package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", "Encuentro Juvenil 2026", nil)
}

func (h *Handler) News(c *gin.Context) {
	h.render(c, http.StatusOK, "news.html", "Volviendo al Diseño", nil)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", "Página no encontrada", gin.H{
		"Message": "La página que buscas no existe.",
	})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
