package brdoc_test

import (
	"testing"

	"clubdesk/internal/domain/brdoc"
)

// TestFormatters tests each formatter against raw, formatted and odd input.
func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		in     string
		want   string
	}{
		{"cpf raw", brdoc.FormatCPF, "52998224725", "529.982.247-25"},
		{"cpf formatted", brdoc.FormatCPF, "529.982.247-25", "529.982.247-25"},
		{"cpf short unchanged", brdoc.FormatCPF, "1234", "1234"},
		{"rg nine digits", brdoc.FormatRG, "123456789", "12.345.678-9"},
		{"rg eight digits", brdoc.FormatRG, "12345678", "12.345.678"},
		{"rg formatted", brdoc.FormatRG, "12.345.678-9", "12.345.678-9"},
		{"rg odd length unchanged", brdoc.FormatRG, "12345", "12345"},
		{"cep raw", brdoc.FormatCEP, "01310100", "01310-100"},
		{"cep formatted", brdoc.FormatCEP, "01310-100", "01310-100"},
		{"cep short unchanged", brdoc.FormatCEP, "0131", "0131"},
		{"phone mobile", brdoc.FormatPhone, "11987654321", "(11) 98765-4321"},
		{"phone landline", brdoc.FormatPhone, "1132654321", "(11) 3265-4321"},
		{"phone formatted", brdoc.FormatPhone, "(11) 98765-4321", "(11) 98765-4321"},
		{"phone short unchanged", brdoc.FormatPhone, "4321", "4321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format(tt.in)
			if got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Idempotency: formatting the output again is a fixed point.
			if again := tt.format(got); again != got {
				t.Errorf("format not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// TestValidCPF tests check-digit validation.
func TestValidCPF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid raw", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"bad check digit", "52998224724", false},
		{"too short", "5299822472", false},
		{"repeated digit", "11111111111", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := brdoc.ValidCPF(tt.in); got != tt.want {
				t.Errorf("ValidCPF(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestValidCEPAndPhone tests the shape checks.
func TestValidCEPAndPhone(t *testing.T) {
	if !brdoc.ValidCEP("01310-100") {
		t.Error("ValidCEP rejected a well-formed CEP")
	}
	if brdoc.ValidCEP("1310-100") {
		t.Error("ValidCEP accepted a 7-digit CEP")
	}
	if !brdoc.ValidPhone("(11) 98765-4321") {
		t.Error("ValidPhone rejected a mobile number")
	}
	if !brdoc.ValidPhone("1132654321") {
		t.Error("ValidPhone rejected a landline number")
	}
	if brdoc.ValidPhone("12345") {
		t.Error("ValidPhone accepted a short number")
	}
}
