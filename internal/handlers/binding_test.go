package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	FullName string `json:"full_name"`
	Amount   float64 `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "Nested envelope",
			key:      "member",
			body:     `{"member": {"full_name": "Juan Pérez", "amount": 50}}`,
			expected: bindTarget{FullName: "Juan Pérez", Amount: 50},
		},
		{
			name:     "Flat body",
			key:      "member",
			body:     `{"full_name": "Carlos Andrade", "amount": 25.5}`,
			expected: bindTarget{FullName: "Carlos Andrade", Amount: 25.5},
		},
		{
			name:     "Missing envelope key falls back to flat",
			key:      "member",
			body:     `{"other": "value", "full_name": "Pedro Mena", "amount": 10}`,
			expected: bindTarget{FullName: "Pedro Mena", Amount: 10},
		},
		{
			name:     "Different envelope key",
			key:      "monthly_payment",
			body:     `{"monthly_payment": {"full_name": "Luis Vélez", "amount": 100}}`,
			expected: bindTarget{FullName: "Luis Vélez", Amount: 100},
		},
		{
			name:        "Flat body with wrong field type",
			key:         "member",
			body:        `{"full_name": "Juan", "amount": "mucho"}`,
			expectError: true,
		},
		{
			name:        "Nested body with wrong field type",
			key:         "member",
			body:        `{"member": {"full_name": "Juan", "amount": "mucho"}}`,
			expectError: true,
		},
		{
			name:        "Envelope key holds a non-object",
			key:         "member",
			body:        `{"member": "Juan"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
