/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"math/rand/v2"
)

var errTooFewItems = errors.New("a derangement requires at least 2 items")

// derange returns a random permutation of items with no fixed point,
// so nobody ends up gifting themselves. Position i of the result is
// the recipient for items[i].
//
// Rejection sampling: reshuffle until no element lands on its own
// position. Acceptance probability approaches 1/e as the list grows,
// so a handful of attempts suffices for any roster a single chat
// message can hold.
func derange(items []string) ([]string, error) {
	if len(items) < 2 {
		return nil, errTooFewItems
	}

	shuffled := make([]string, len(items))
	copy(shuffled, items)

	for {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		fixed := false
		for i := range items {
			if shuffled[i] == items[i] {
				fixed = true
				break
			}
		}

		if !fixed {
			return shuffled, nil
		}
	}
}
