package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) MyQRCode(c *gin.Context) {
	cred, err := h.Attendance.IssueAttendanceCredential(c.Request.Context(), h.user(c))
	if err != nil {
		h.serviceFailure(c, "issue credential", err)
		h.render(c, http.StatusInternalServerError, "error.html", "Error", gin.H{
			"Message": "No se pudo generar tu código QR. Intenta de nuevo más tarde.",
		})
		return
	}
	h.render(c, http.StatusOK, "qr_code.html", "Mi Código QR", gin.H{
		"Credential": cred,
	})
}

// MyQRCodeImage serves the credential PNG referenced by the QR page.
func (h *Handler) MyQRCodeImage(c *gin.Context) {
	cred, err := h.Attendance.IssueAttendanceCredential(c.Request.Context(), h.user(c))
	if err != nil {
		h.serviceFailure(c, "issue credential", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if cred == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", cred.PNG)
}

type checkInView struct {
	status  int
	kind    string
	message string
	detail  string
}

func checkInOutcome(result *service.CheckInResult, err error) checkInView {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return checkInView{http.StatusForbidden, "unauthorized", "No Autorizado", "No estás autorizado para registrar asistencia."}
	case errors.Is(err, service.ErrInvalidTarget), errors.Is(err, service.ErrTargetNotFound):
		status, _ := helpers.ServiceError(err)
		return checkInView{status, "error", "Error", "Código QR no válido o usuario no encontrado."}
	case err != nil:
		return checkInView{http.StatusInternalServerError, "system_error", "Error del Sistema", "Ocurrió un error al procesar el QR."}
	}

	name := result.Target.Name
	switch result.Status {
	case service.CheckInSuccess:
		return checkInView{http.StatusOK, string(result.Status), "Asistencia Registrada", fmt.Sprintf("¡Asistencia de %s registrada con éxito!", name)}
	case service.CheckInAlreadyRegistered:
		return checkInView{http.StatusOK, string(result.Status), "Asistencia YA Registrada", fmt.Sprintf("%s ya había registrado su asistencia.", name)}
	default:
		return checkInView{http.StatusOK, "error", "Error", "Pago pendiente."}
	}
}

// AttendanceCheck is the page a staff phone lands on after scanning a
// credential.
func (h *Handler) AttendanceCheck(c *gin.Context) {
	requester := h.user(c)
	result, err := h.Attendance.CheckIn(c.Request.Context(), requester, c.Param("id"))
	if err != nil && !service.IsDomainError(err) {
		h.serviceFailure(c, "check in", err)
	}
	if errors.Is(err, service.ErrUnauthorized) {
		h.Log.Warn("check in refused", zap.String("user_id", requester.ID.String()))
	}

	view := checkInOutcome(result, err)
	h.render(c, view.status, "attendance_check.html", "Registro de Asistencia", gin.H{
		"Status":  view.kind,
		"Message": view.message,
		"Detail":  view.detail,
	})
}

func (h *Handler) TotalAttendance(c *gin.Context) {
	data := gin.H{}
	total, err := h.Attendance.TotalAttendance(c.Request.Context())
	if err != nil {
		h.serviceFailure(c, "total attendance", err)
		data["Failed"] = true
	} else {
		data["Total"] = total
	}
	h.render(c, http.StatusOK, "total_attendance.html", "Panel de Control de la Aplicación", data)
}
