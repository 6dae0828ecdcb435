package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUserGroupForeignKey(t *testing.T) {
	s, err := schema.Parse(&User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["Group"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, rel.Type)

	constraint := rel.ParseConstraint()
	require.NotNil(t, constraint)
	assert.Equal(t, "users", constraint.Schema.Table)
	assert.Equal(t, "groups", constraint.ReferenceSchema.Table)
	assert.Equal(t, "SET NULL", constraint.OnDelete)
	require.Len(t, constraint.ForeignKeys, 1)
	assert.Equal(t, "group_id", constraint.ForeignKeys[0].DBName)
}

func TestPaymentStatus(t *testing.T) {
	for _, status := range []PaymentStatus{PaymentNoPaid, PaymentPending, PaymentConfirmed, PaymentRejected} {
		assert.True(t, status.Valid(), status)
	}
	assert.False(t, PaymentStatus("").Valid())
	assert.False(t, PaymentStatus("Pago Confirmado").Valid())

	assert.Equal(t, "Pendiente de Revisión", PaymentPending.Label())
	assert.Equal(t, "UNKNOWN", PaymentStatus("UNKNOWN").Label())
}
