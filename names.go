/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
)

// normalizeName canonicalizes a participant name for matching: strip
// surrounding whitespace, lowercase, fold "ё" to "е", and collapse any
// run of whitespace to a single space. The display form shown back to
// users is kept separately; only this key is used for lookups.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ё", "е")

	return strings.Join(strings.Fields(s), " ")
}
