package main

import (
	"errors"
	"strings"
)

var errTooFewParticipants = errors.New("fewer than 2 unique participants remain after deduplication")

// Game owns a single Secret Santa round: the deduplicated roster, the
// giver → recipient assignment derived from a derangement of it, and
// the chat identities that have claimed a roster name so far.
//
// roster, nameIndex, and assignment never change after construction.
// bound grows as participants identify themselves; a display name may
// be claimed by more than one identity in sequence (last claim wins),
// since names are the only authentication the bot has.
type Game struct {
	organizer  string
	roster     []string          // unique display names, submission order
	nameIndex  map[string]string // normalized form → display form
	assignment map[string]string // giver → recipient, no fixed point
	bound      map[string]string // chat identity → display name
}

// newGame builds a Game from raw roster lines as the organizer sent
// them. Lines are trimmed, blank lines skipped, and duplicates (by
// normalized form) silently dropped, keeping the first display form
// seen. The registry is not touched; registering the result is the
// caller's job.
func newGame(organizer string, lines []string) (*Game, error) {
	nameIndex := make(map[string]string, len(lines))
	roster := make([]string, 0, len(lines))

	for _, line := range lines {
		display := strings.TrimSpace(line)
		if display == "" {
			continue
		}

		norm := normalizeName(display)
		if _, dup := nameIndex[norm]; dup {
			continue
		}

		nameIndex[norm] = display
		roster = append(roster, display)
	}

	if len(roster) < 2 {
		return nil, errTooFewParticipants
	}

	recipients, err := derange(roster)
	if err != nil {
		return nil, err
	}

	assignment := make(map[string]string, len(roster))
	for i, giver := range roster {
		assignment[giver] = recipients[i]
	}

	return &Game{
		organizer:  organizer,
		roster:     roster,
		nameIndex:  nameIndex,
		assignment: assignment,
		bound:      make(map[string]string),
	}, nil
}

// displayName resolves free-text input against the roster, returning
// the display form recorded at construction.
func (g *Game) displayName(text string) (string, bool) {
	display, ok := g.nameIndex[normalizeName(text)]

	return display, ok
}
