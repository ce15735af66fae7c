package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Анна ИвановЁ ", "анна иванове"},
		{"анна иванове", "анна иванове"},
		{"Boris", "boris"},
		{"\tЮлия\n Павликова\t", "юлия павликова"},
		{"ЁЛКИН Пётр", "елкин петр"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeNameCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "анна иванова", normalizeName("Анна   \t  Иванова"))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"  Анна ИвановЁ ", "Boris", "", "ЁЖ  ёж", "  a  b  c  "}

	for _, in := range inputs {
		once := normalizeName(in)
		assert.Equal(t, once, normalizeName(once), "input %q", in)
	}
}
