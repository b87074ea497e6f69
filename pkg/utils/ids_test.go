package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Kitchen Ware":   "kitchen-ware",
		"  Fancy   Soap": "fancy-soap",
		"Caffè Latte!":   "caff-latte",
		"---":            "",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGenerateInvoiceNo(t *testing.T) {
	a := GenerateInvoiceNo()
	b := GenerateInvoiceNo()
	if !strings.HasPrefix(a, "INV-") || len(a) != 12 {
		t.Errorf("unexpected invoice format: %q", a)
	}
	if a == b {
		t.Error("invoice numbers should be unique")
	}
}
