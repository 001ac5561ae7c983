package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFreeText(t *testing.T) {
	// empty is fine, the field is optional
	assert.NoError(t, ValidateFreeText(""))
	assert.NoError(t, ValidateFreeText("   "))

	assert.NoError(t, ValidateFreeText("I work a desk job and cook dinner most evenings."))
}

func TestValidateFreeTextRejectsJunk(t *testing.T) {
	cases := map[string]string{
		"too short":   "ab",
		"too long":    strings.Repeat("a healthy diet ", 40),
		"url":         "check out https://example.com/diet",
		"www url":     "visit www.example.com for tips",
		"digits only": "123 456 789",
		"key mashing": "aaaaaaaaaa",
	}

	for name, input := range cases {
		err := ValidateFreeText(input)
		assert.ErrorIs(t, err, ErrInvalidAnswer, name)
	}
}
