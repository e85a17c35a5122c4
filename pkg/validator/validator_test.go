package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

type nested struct {
	Type string `json:"type" validate:"required,oneof=all specific"`
}

type sample struct {
	Name   string   `json:"name" validate:"required,min=2"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Code   string   `json:"code" validate:"omitempty,len=3"`
	Target *nested  `json:"target" validate:"required"`
	Tags   []nested `json:"tags" validate:"omitempty,max=2,dive"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Name: "Acme", Target: &nested{Type: "all"}})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Name: "A", Email: "bad", Code: "ABCD"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	fields := domain.FieldErrors(err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "code", "target"}, names)
}

func TestStruct_NestedPath(t *testing.T) {
	err := Struct(sample{Name: "Acme", Target: &nested{Type: "x"}, Tags: []nested{{Type: "all"}, {Type: ""}}})
	require.Error(t, err)
	fields := domain.FieldErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "target.type", fields[0].Field)
	assert.Equal(t, "x", fields[0].Value)
	assert.Equal(t, "tags[1].type", fields[1].Field)
	assert.Nil(t, fields[1].Value)
}
