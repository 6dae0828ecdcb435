package helpers

import (
	"errors"
	"net/http"

	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

const GenericErrorMessage = "Ocurrió un error inesperado. Intenta de nuevo más tarde."

var serviceErrors = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrAlreadyMember, http.StatusConflict, "Ya perteneces a un grupo."},
	{service.ErrNotInGroup, http.StatusConflict, "No perteneces a ningún grupo."},
	{service.ErrNotResponsible, http.StatusForbidden, "Solo el responsable del grupo puede eliminarlo."},
	{service.ErrGroupNotFound, http.StatusNotFound, "No existe un grupo con ese código."},
	{service.ErrCodeSpaceExhausted, http.StatusServiceUnavailable, "No fue posible generar un código de grupo. Intenta de nuevo."},
	{service.ErrInvalidAmount, http.StatusBadRequest, "El monto debe ser un número válido."},
	{service.ErrNoPendingPayment, http.StatusConflict, "No hay un pago pendiente de revisión."},
	{service.ErrUnauthorized, http.StatusForbidden, "No tienes permiso para registrar asistencia."},
	{service.ErrInvalidTarget, http.StatusBadRequest, "El código QR no es válido."},
	{service.ErrTargetNotFound, http.StatusNotFound, "Usuario no encontrado."},
	{service.ErrEmailTaken, http.StatusConflict, "El correo electrónico ya está registrado."},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Correo o contraseña incorrectos."},
	{service.ErrUserNotFound, http.StatusNotFound, "Usuario no encontrado."},
}

// ServiceError maps an error returned by the service layer to an HTTP
// status and the message shown to the user. Anything unexpected becomes a
// 500 with a generic message; the caller is expected to log the cause.
func ServiceError(err error) (int, string) {
	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, GenericErrorMessage
}

func RespondWithServiceError(c *gin.Context, err error) {
	status, message := ServiceError(err)
	RespondWithError(c, status, message)
}
