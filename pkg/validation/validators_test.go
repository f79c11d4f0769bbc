package validation_test

import (
	"testing"

	"go-studio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"jane@example.com", "jane.doe+tag@mail.example.co.uk"}
	invalid := []string{"not-an-email", "jane@example", "jane @example.com", "@example.com", "jane@"}

	for _, addr := range valid {
		assert.True(t, validation.IsEmail(addr), addr)
	}
	for _, addr := range invalid {
		assert.False(t, validation.IsEmail(addr), addr)
	}
}

func TestContactEmailTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	assert.NoError(t, v.Var("jane@example.com", "contact_email"))
	assert.Error(t, v.Var("not-an-email", "contact_email"))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, validation.IsPhone("+4915123456789"))
	assert.True(t, validation.IsPhone("5551234567"))
	assert.False(t, validation.IsPhone("555-1234"))
	assert.False(t, validation.IsPhone("abc"))
}
