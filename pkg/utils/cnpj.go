package utils

import "strings"

// NormalizeCNPJ strips the usual formatting characters from a CNPJ,
// leaving only digits. "12.345.678/0001-95" becomes "12345678000195".
func NormalizeCNPJ(cnpj string) string {
	var b strings.Builder
	b.Grow(len(cnpj))
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCNPJ reports whether the given string is a valid CNPJ after
// normalization: 14 digits, not all equal, with matching check digits.
func ValidateCNPJ(cnpj string) bool {
	s := NormalizeCNPJ(cnpj)
	if len(s) != 14 {
		return false
	}

	allEqual := true
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return cnpjCheckDigit(s, 12) == int(s[12]-'0') &&
		cnpjCheckDigit(s, 13) == int(s[13]-'0')
}

// cnpjCheckDigit computes the check digit over the first n digits using
// the official weight tables.
func cnpjCheckDigit(s string, n int) int {
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	offset := len(weights) - n

	sum := 0
	for i := 0; i < n; i++ {
		sum += int(s[i]-'0') * weights[offset+i]
	}

	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
