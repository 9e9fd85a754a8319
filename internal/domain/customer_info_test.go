package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCustomerInfo(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "structured_object",
			raw:      `{"name":"Maria Silva","address":"Rua 12","phone":"923111222"}`,
			expected: "Maria Silva",
		},
		{
			name:     "json_encoded_string",
			raw:      `"{\"name\":\"João Baptista\",\"phone\":\"923000111\"}"`,
			expected: "João Baptista",
		},
		{
			name:     "garbage",
			raw:      `{{{not json`,
			expected: FallbackCustomerName,
		},
		{
			name:     "empty",
			raw:      "",
			expected: FallbackCustomerName,
		},
		{
			name:     "object_without_name",
			raw:      `{"phone":"923000111"}`,
			expected: FallbackCustomerName,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := NormalizeCustomerInfo([]byte(tc.raw))
			assert.Equal(t, tc.expected, info.Name)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0 Kz", FormatPrice(0))
	assert.Equal(t, "950 Kz", FormatPrice(950))
	assert.Equal(t, "4.000 Kz", FormatPrice(4000))
	assert.Equal(t, "12.500 Kz", FormatPrice(12500))
	assert.Equal(t, "1.234.567 Kz", FormatPrice(1234567))
	assert.Equal(t, "-4.000 Kz", FormatPrice(-4000))
}
