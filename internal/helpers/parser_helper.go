package helpers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseUserID accepts the string, uuid.UUID and [16]byte shapes a user id
// takes after a round trip through a session cookie or JWT claims.
func ParseUserID(v interface{}) (uuid.UUID, error) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case string:
		return uuid.Parse(strings.TrimSpace(id))
	case [16]byte:
		return uuid.UUID(id), nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported user id type %T", v)
	}
}

// FormBool reads HTML checkbox and select values.
func FormBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes", "si", "sí":
		return true
	}
	return false
}
