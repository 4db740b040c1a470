// Package brdoc formats and checks Brazilian document and contact fields
// (CPF, RG, CEP, phone). All formatters are idempotent: formatting an
// already-formatted value yields the same value.
package brdoc

import "strings"

// Digits strips everything but decimal digits.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders 11 digits as 000.000.000-00. Inputs without exactly 11
// digits are returned unchanged.
func FormatCPF(s string) string {
	d := Digits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatRG renders 8 or 9 digits in the common registry layout
// (00.000.000 or 00.000.000-0). Other lengths are returned unchanged,
// since RG formats vary by state.
func FormatRG(s string) string {
	d := Digits(s)
	switch len(d) {
	case 8:
		return d[0:2] + "." + d[2:5] + "." + d[5:8]
	case 9:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "-" + d[8:9]
	default:
		return s
	}
}

// FormatCEP renders 8 digits as 00000-000. Other lengths are returned
// unchanged.
func FormatCEP(s string) string {
	d := Digits(s)
	if len(d) != 8 {
		return s
	}
	return d[0:5] + "-" + d[5:8]
}

// FormatPhone renders 10 digits as (00) 0000-0000 and 11 digits as
// (00) 00000-0000. Other lengths are returned unchanged.
func FormatPhone(s string) string {
	d := Digits(s)
	switch len(d) {
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	default:
		return s
	}
}

// ValidCPF checks the CPF verification digits.
// PRE: s may be formatted or raw
// POST: Returns true only for 11 digits with both check digits correct
func ValidCPF(s string) bool {
	d := Digits(s)
	if len(d) != 11 {
		return false
	}
	// A repeated single digit passes the checksum but is not a valid CPF.
	allSame := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}
	if checkDigit(d, 9) != int(d[9]-'0') {
		return false
	}
	return checkDigit(d, 10) == int(d[10]-'0')
}

// checkDigit computes the CPF verification digit over the first n digits.
func checkDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// ValidCEP reports whether the value holds exactly 8 digits.
func ValidCEP(s string) bool {
	return len(Digits(s)) == 8
}

// ValidPhone reports whether the value holds a 10 or 11 digit number.
func ValidPhone(s string) bool {
	n := len(Digits(s))
	return n == 10 || n == 11
}
