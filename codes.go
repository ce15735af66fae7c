/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
)

// codeAlphabet omits visually ambiguous characters (0/O and 1/I),
// so codes survive being read aloud or retyped from a screenshot.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newGameCode generates a crypto-random code of the given length and
// ensures it doesn't collide with any currently registered game. The
// code space is large relative to the number of live games, so the
// retry loop resolves almost immediately.
func newGameCode(length int, existing map[string]*Game) string {
	for {
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		out := make([]byte, length)
		for i := range out {
			out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
		}
		code := string(out)

		if _, exists := existing[code]; !exists {
			return code
		}
	}
}
