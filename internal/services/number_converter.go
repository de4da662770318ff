package services

import (
	"fmt"
	"math"
	"strings"
)

// AmountToWords converts a float64 amount to Spanish words for the receipt
// amount line. Example: 1500.50 -> "Mil quinientos con 50/100"
func AmountToWords(amount float64) string {
	integerPart := int64(amount)
	decimalPart := int64(math.Round((amount - float64(integerPart)) * 100))

	words := numberInWords(integerPart)

	// Sentence case, cents always padded to two digits
	words = strings.ToUpper(words[:1]) + words[1:]
	return fmt.Sprintf("%s con %02d/100", words, decimalPart)
}

func numberInWords(n int64) string {
	if n == 0 {
		return "cero"
	}

	if n < 0 {
		return "menos " + numberInWords(-n)
	}

	if n < 10 {
		return units[n]
	}

	if n < 30 {
		return specials[n]
	}

	if n < 100 {
		u := n % 10
		t := n / 10
		if u == 0 {
			return tens[t]
		}
		return fmt.Sprintf("%s y %s", tens[t], units[u])
	}

	if n < 1000 {
		hundredsPart := n / 100
		remainder := n % 100
		if remainder == 0 {
			return hundreds[hundredsPart]
		}
		// "cien" is only exact 100; with a remainder it becomes "ciento"
		if hundredsPart == 1 {
			return "ciento " + numberInWords(remainder)
		}
		return fmt.Sprintf("%s %s", hundreds[hundredsPart], numberInWords(remainder))
	}

	if n < 1000000 {
		thousands := n / 1000
		remainder := n % 1000

		thousandsText := ""
		if thousands == 1 {
			thousandsText = "mil"
		} else {
			thousandsText = numberInWords(thousands) + " mil"
		}

		if remainder == 0 {
			return thousandsText
		}
		return fmt.Sprintf("%s %s", thousandsText, numberInWords(remainder))
	}

	if n < 1000000000000 {
		millions := n / 1000000
		remainder := n % 1000000

		millionsText := ""
		if millions == 1 {
			millionsText = "un millón"
		} else {
			millionsText = numberInWords(millions) + " millones"
		}

		if remainder == 0 {
			return millionsText
		}
		return fmt.Sprintf("%s %s", millionsText, numberInWords(remainder))
	}

	return "número muy grande"
}

var units = []string{
	"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
}

var specials = map[int64]string{
	10: "diez", 11: "once", 12: "doce", 13: "trece", 14: "catorce", 15: "quince",
	16: "dieciséis", 17: "diecisiete", 18: "dieciocho", 19: "diecinueve",
	20: "veinte", 21: "veintiuno", 22: "veintidós", 23: "veintitrés", 24: "veinticuatro",
	25: "veinticinco", 26: "veintiséis", 27: "veintisiete", 28: "veintiocho", 29: "veintinueve",
}

var tens = []string{
	"", "", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa",
}

var hundreds = []string{
	"", "cien", "doscientos", "trescientos", "cuatrocientos", "quinientos", "seiscientos", "setecientos", "ochocientos", "novecientos",
}
