package models

const (
	PaymentAmount  = 200.00
	PaymentConcept = "QR ASISTENCIA"
)

type BankAccount struct {
	BankName   string
	CLABE      string
	CardNumber string
	Owner      string
	StyleClass string
}

var BankAccounts = []BankAccount{
	{
		BankName:   "Banorte",
		CLABE:      "000000000000000001",
		CardNumber: "0000000000001010",
		Owner:      "Sujeto A",
		StyleClass: "bg-red-600",
	},
	{
		BankName:   "BBVA",
		CLABE:      "000000000000000002",
		CardNumber: "0000000000002020",
		Owner:      "Sujeto B",
		StyleClass: "bg-blue-800",
	},
}

var States = []string{
	"Aguascalientes",
	"Baja California",
	"Baja California Sur",
	"Campeche",
	"Chiapas",
	"Chihuahua",
	"Ciudad de México",
	"Coahuila",
	"Colima",
	"Durango",
	"Estado de México",
	"Guanajuato",
	"Guerrero",
	"Hidalgo",
	"Jalisco",
	"Michoacán",
	"Morelos",
	"Nayarit",
	"Nuevo León",
	"Oaxaca",
	"Puebla",
	"Querétaro",
	"Quintana Roo",
	"San Luis Potosí",
	"Sinaloa",
	"Sonora",
	"Tabasco",
	"Tamaulipas",
	"Tlaxcala",
	"Veracruz",
	"Yucatán",
	"Zacatecas",
	"Otro...",
}

var (
	TransportOptions  = []string{"Avión", "Autobús", "Coche", "Camión", "Otro"}
	MembershipOptions = []string{"Miembro", "Visitante"}
	SituationOptions  = []string{"Bautizado", "No bautizado"}
)

// BankNames lists the receiving banks offered on the payment form.
func BankNames() []string {
	names := make([]string, 0, len(BankAccounts))
	for _, account := range BankAccounts {
		names = append(names, account.BankName)
	}
	return names
}

func Contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
