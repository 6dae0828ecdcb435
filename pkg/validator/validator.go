package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	ErrFieldRequired      = "es obligatorio"
	ErrInvalidFormat      = "tiene un formato inválido"
	ErrInvalidOption      = "no es una opción válida"
	ErrFieldExceedsMaxLen = "es demasiado largo"
	ErrFieldBelowMinLen   = "es demasiado corto"
	ErrFieldExceedsMaxVal = "es demasiado grande"
	ErrFieldBelowMinVal   = "es demasiado pequeño"
	ErrFieldMismatch      = "no coincide"
	ErrUnknownValidation  = "no es válido"
)

// Register adds the event option tags to v and makes error namespaces use
// form field names. Call it on gin's binding engine so `binding:"state"`
// works in request structs.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(formName)
	_ = v.RegisterValidation("state", oneOf(models.States))
	_ = v.RegisterValidation("transport", oneOf(models.TransportOptions))
	_ = v.RegisterValidation("membership", oneOf(models.MembershipOptions))
	_ = v.RegisterValidation("situation", oneOf(models.SituationOptions))
	_ = v.RegisterValidation("bank", oneOf(models.BankNames()))
}

func oneOf(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return models.Contains(options, fl.Field().String())
	}
}

func formName(field reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// ParseValidationErrors reduces validator output to one readable message
// about the first failing field. Other errors pass through unchanged.
func ParseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) || len(vErrors) == 0 {
		return err
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required":
		msg = ErrFieldRequired
	case "email", "datetime", "numeric", "uuid":
		msg = ErrInvalidFormat
	case "state", "transport", "membership", "situation", "bank", "oneof":
		msg = ErrInvalidOption
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "lt", "lte":
		msg = ErrFieldExceedsMaxVal
	case "gt", "gte":
		msg = ErrFieldBelowMinVal
	case "eqfield":
		msg = ErrFieldMismatch
	default:
		msg = ErrUnknownValidation
	}
	return errors.New("El campo " + ve.Field() + " " + msg)
}
