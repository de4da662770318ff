package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "Cero con 00/100"},
		{"Single digit", 5, "Cinco con 00/100"},
		{"Teens", 16, "Dieciséis con 00/100"},
		{"Twenties", 21.50, "Veintiuno con 50/100"},
		{"Tens with unit", 45, "Cuarenta y cinco con 00/100"},
		{"Exact hundred", 100, "Cien con 00/100"},
		{"Hundred with remainder", 101, "Ciento uno con 00/100"},
		{"Other hundreds", 550.25, "Quinientos cincuenta con 25/100"},
		{"Exact thousand", 1000, "Mil con 00/100"},
		{"Thousand with remainder", 1015.05, "Mil quince con 05/100"},
		{"Multiple thousands", 2500.50, "Dos mil quinientos con 50/100"},
		{"One million", 1000000, "Un millón con 00/100"},
		{"Millions with remainder", 2000350, "Dos millones trescientos cincuenta con 00/100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AmountToWords(tt.amount))
		})
	}
}

func TestAmountToWords_CentsRounding(t *testing.T) {
	// Floating point representations like 10.10 must not drop to 09 cents
	assert.Equal(t, "Diez con 10/100", AmountToWords(10.10))
	assert.Equal(t, "Noventa y nueve con 99/100", AmountToWords(99.99))
}
