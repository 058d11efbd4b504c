package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "surrounding whitespace and suffix", input: "  Kigali Central ", expected: "kigali"},
		{name: "single token", input: "Single", expected: "single"},
		{name: "empty", input: "", expected: ""},
		{name: "blank", input: " \t ", expected: ""},
		{name: "tab separated", input: "Gasabo\tHC", expected: "gasabo"},
		{name: "already normalized", input: "nyamata", expected: "nyamata"},
		{name: "accented", input: "ÉCOLE Nyamirambo", expected: "école"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeNullable(t *testing.T) {
	assert.Equal(t, "", NormalizeNullable(nil))

	v := "Muhima Hospital"
	assert.Equal(t, "muhima", NormalizeNullable(&v))
}

func TestNormalize_SharedFirstWordCollides(t *testing.T) {
	// Distinct facilities sharing a first word map to the same key.
	assert.Equal(t, Normalize("Nyarugenge District Hospital"), Normalize("Nyarugenge Health Centre"))
}
