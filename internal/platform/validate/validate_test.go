package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Hours *int   `json:"hours" validate:"required,min=0,max=24"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func intPtr(v int) *int { return &v }

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "x", Email: "x@example.com", Hours: intPtr(0)}))
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want string
	}{
		{"blank name", sample{Name: "  ", Email: "x@example.com", Hours: intPtr(1)}, "name is required"},
		{"bad email", sample{Name: "x", Email: "nope", Hours: intPtr(1)}, "email must be a valid email address"},
		{"missing hours", sample{Name: "x", Email: "x@example.com"}, "hours is required"},
		{"hours too high", sample{Name: "x", Email: "x@example.com", Hours: intPtr(25)}, "hours must be at most 24"},
		{"hours negative", sample{Name: "x", Email: "x@example.com", Hours: intPtr(-1)}, "hours must be at least 0"},
		{"bad kind", sample{Name: "x", Email: "x@example.com", Hours: intPtr(1), Kind: "c"}, "kind must be one of: a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			require.Error(t, err)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNotBlankTag(t *testing.T) {
	assert.Error(t, std.Var(" \t\n", "notblank"))
	assert.Error(t, std.Var("", "notblank"))
	assert.NoError(t, std.Var(" x ", "notblank"))
}

func TestEchoValidator(t *testing.T) {
	assert.Error(t, EchoValidator{}.Validate(sample{}))
}

func TestStruct_FormatMessages(t *testing.T) {
	type booking struct {
		Date     string `json:"date" validate:"datetime=2006-01-02"`
		DoctorID string `json:"doctor_id" validate:"omitempty,uuid"`
	}
	err := Struct(booking{Date: "12/01/2025"})
	require.Error(t, err)
	assert.Equal(t, "date must match the format 2006-01-02", err.Error())

	err = Struct(booking{Date: "2025-12-01", DoctorID: "42"})
	require.Error(t, err)
	assert.Equal(t, "doctor_id must be a valid id", err.Error())
}
