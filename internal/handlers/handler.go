package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/farellandr/encuentro/pkg/validator"
	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	Accounts   service.AccountService
	Membership service.MembershipService
	Payments   service.PaymentService
	Attendance service.AttendanceService

	Log    *zap.Logger
	Upload helpers.UploadConfig

	JWTSecret string
	TokenTTL  time.Duration
}

// page builds the data every template expects: title, signed-in user and
// pending flashes.
func (h *Handler) page(c *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}
	data["Flashes"] = middleware.Flashes(c)
	return data
}

func (h *Handler) render(c *gin.Context, status int, name, title string, data gin.H) {
	c.HTML(status, name, h.page(c, title, data))
}

func (h *Handler) redirect(c *gin.Context, to, category, message string) {
	if message != "" {
		middleware.AddFlash(c, category, message)
	}
	c.Redirect(http.StatusSeeOther, to)
}

// user returns the signed-in user. Routes using it sit behind
// RequireSignedIn.
func (h *Handler) user(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

// serviceFailure flashes the user facing message for err and logs anything
// that is not an expected domain outcome.
func (h *Handler) serviceFailure(c *gin.Context, op string, err error) string {
	_, message := helpers.ServiceError(err)
	if !service.IsDomainError(err) {
		fields := []zap.Field{zap.String("op", op), zap.Error(err)}
		if user, ok := middleware.CurrentUser(c); ok {
			fields = append(fields, zap.String("user_id", user.ID.String()))
		}
		h.Log.Error("request failed", fields...)
	}
	return message
}

func bindingMessage(err error) string {
	var verrs govalidator.ValidationErrors
	if errors.As(err, &verrs) {
		return validator.ParseValidationErrors(verrs).Error()
	}
	return "Revisa los datos del formulario."
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
