package handlers

import (
	"net/http"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APILoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// APILogin issues the bearer token scanner devices use.
func (h *Handler) APILogin(c *gin.Context) {
	var req APILoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	user, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceFailure(c, "api login", err)
		helpers.RespondWithServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.JWTSecret, user, h.TokenTTL)
	if err != nil {
		h.Log.Error("sign token failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"name":       user.Name,
			"is_special": user.IsSpecial,
		},
	})
}

func (h *Handler) APICheckIn(c *gin.Context) {
	result, err := h.Attendance.CheckIn(c.Request.Context(), h.user(c), c.Param("id"))
	if err != nil {
		h.serviceFailure(c, "api check in", err)
		helpers.RespondWithServiceError(c, err)
		return
	}

	view := checkInOutcome(result, nil)
	c.JSON(http.StatusOK, gin.H{
		"status":  result.Status,
		"message": view.message,
		"detail":  view.detail,
		"attendee": gin.H{
			"id":             result.Target.ID,
			"name":           result.Target.Name,
			"payment_status": result.Target.PaymentStatus,
			"attendance":     result.Target.AttendanceRegistered,
		},
	})
}

func (h *Handler) APITotalAttendance(c *gin.Context) {
	total, err := h.Attendance.TotalAttendance(c.Request.Context())
	if err != nil {
		h.serviceFailure(c, "api total attendance", err)
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
