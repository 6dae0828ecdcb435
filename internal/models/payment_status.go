package models

// PaymentStatus tracks where a user is in the manual payment review.
type PaymentStatus string

const (
	PaymentNoPaid    PaymentStatus = "NO_PAID"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentRejected  PaymentStatus = "REJECTED"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentNoPaid:    "Sin Pago Realizado",
	PaymentPending:   "Pendiente de Revisión",
	PaymentConfirmed: "Pago Confirmado",
	PaymentRejected:  "Rechazado",
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentStatusLabels[s]
	return ok
}

// Label is the text shown to attendees.
func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s PaymentStatus) String() string {
	return string(s)
}
