package views

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
)

//go:embed templates/*.html
var files embed.FS

// Load parses every page template. Pages are addressed by file name, e.g.
// "profile.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"paymentLabel": func(s models.PaymentStatus) string { return s.Label() },
		"reviewLabel":  reviewLabel,
		"money":        func(amount float64) string { return fmt.Sprintf("$%.2f MXN", amount) },
		"flashClass":   flashClass,
		"checkInClass": checkInClass,
		"options":      func(options []string, selected string) selectOptions { return selectOptions{options, selected} },
	}
}

type selectOptions struct {
	Options  []string
	Selected string
}

// Options feeds the select inputs of the profile forms.
type Options struct {
	States     []string
	Transport  []string
	Membership []string
	Situation  []string
}

func ProfileOptions() Options {
	return Options{
		States:     models.States,
		Transport:  models.TransportOptions,
		Membership: models.MembershipOptions,
		Situation:  models.SituationOptions,
	}
}

func reviewLabel(status string) string {
	switch status {
	case models.ReviewPending:
		return "Pendiente"
	case models.ReviewConfirmed:
		return "Aprobado"
	case models.ReviewRejected:
		return "Rechazado"
	}
	return status
}

func flashClass(category string) string {
	switch category {
	case "success":
		return "bg-green-100 text-green-800"
	case "error":
		return "bg-red-100 text-red-800"
	}
	return "bg-blue-100 text-blue-800"
}

func checkInClass(status string) string {
	switch service.CheckInStatus(status) {
	case service.CheckInSuccess:
		return "bg-green-100 text-green-900"
	case service.CheckInAlreadyRegistered:
		return "bg-yellow-100 text-yellow-900"
	}
	return "bg-red-100 text-red-900"
}
