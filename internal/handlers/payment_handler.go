package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const receiptUploadType = "receipts"

type SubmitPaymentRequest struct {
	Amount          string `form:"monto" binding:"required,max=20"`
	Reference       string `form:"reference" binding:"required,max=100"`
	Concept         string `form:"concept" binding:"required,max=100"`
	BankIssuer      string `form:"bank_issuer" binding:"required,max=100"`
	TransactionDate string `form:"transaction_date" binding:"required,datetime=2006-01-02"`
	BankReceiver    string `form:"bank_receiver" binding:"required,bank"`
}

func (h *Handler) PaymentInfo(c *gin.Context) {
	h.render(c, http.StatusOK, "payment_info.html", "Información de Pago", gin.H{
		"Amount":       models.PaymentAmount,
		"Concept":      models.PaymentConcept,
		"BankAccounts": models.BankAccounts,
	})
}

func (h *Handler) SubmitPaymentPage(c *gin.Context) {
	h.render(c, http.StatusOK, "submit_payment.html", "Registrar Pago", gin.H{
		"Amount":    fmt.Sprintf("%.2f", models.PaymentAmount),
		"Concept":   models.PaymentConcept,
		"BankNames": models.BankNames(),
	})
}

func (h *Handler) SubmitPayment(c *gin.Context) {
	user := h.user(c)

	var req SubmitPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirect(c, "/submit_payment", middleware.FlashError, bindingMessage(err))
		return
	}

	var receiptPath string
	fileHeader, err := c.FormFile("receipt")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		h.redirect(c, "/submit_payment", middleware.FlashError, "No se pudo leer el comprobante.")
		return
	default:
		receiptPath, err = helpers.UploadFile(c, fileHeader, receiptUploadType, h.Upload)
		if err != nil {
			h.Log.Info("receipt rejected", zap.String("user_id", user.ID.String()), zap.Error(err))
			h.redirect(c, "/submit_payment", middleware.FlashError, "El comprobante debe ser una imagen o PDF de máximo 5 MB.")
			return
		}
	}

	_, err = h.Payments.SubmitPayment(c.Request.Context(), user, service.PaymentInput{
		Amount:          req.Amount,
		Reference:       helpers.SanitizeText(req.Reference),
		Concept:         helpers.SanitizeText(req.Concept),
		BankIssuer:      helpers.SanitizeText(req.BankIssuer),
		BankReceiver:    req.BankReceiver,
		TransactionDate: req.TransactionDate,
		ReceiptPath:     receiptPath,
	})
	if err != nil {
		if rmErr := helpers.DeleteFile(receiptPath); rmErr != nil {
			h.Log.Warn("remove orphaned receipt failed", zap.String("path", receiptPath), zap.Error(rmErr))
		}
		message := h.serviceFailure(c, "submit payment", err)
		if errors.Is(err, service.ErrInvalidAmount) {
			message = "Monto inválido. Asegúrate de que el valor sea numérico."
		}
		h.redirect(c, "/submit_payment", middleware.FlashError, message)
		return
	}

	h.redirect(c, "/profile", middleware.FlashSuccess, "Registro de pago exitoso. Su pago está pendiente de revisión manual.")
}
