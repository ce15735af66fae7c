package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	cfg := &Config{codeLength: 4}

	return newEngine(cfg, newRegistry())
}

// one sends a single message and expects a single reply.
func one(t *testing.T, e *Engine, id, text string) Response {
	t.Helper()

	responses := e.Handle(id, text)
	require.Len(t, responses, 1)

	return responses[0]
}

// createGame runs the full organizer flow and returns the game code.
func createGame(t *testing.T, e *Engine, organizer, roster string) string {
	t.Helper()

	one(t, e, organizer, "/newgame")

	code := e.reg.pending[organizer]
	require.NotEmpty(t, code)

	reply := one(t, e, organizer, roster)
	require.Equal(t, msgGameCreated(code, len(e.reg.games[code].roster)), reply.Text)
	require.Equal(t, Organizing, e.reg.stateOf(organizer))

	return code
}

func TestGreetingsKeepState(t *testing.T) {
	e := testEngine()

	assert.Equal(t, msgStart, one(t, e, "tg:1", "/start").Text)
	assert.Equal(t, msgHelp, one(t, e, "tg:1", "/help").Text)
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.games)
}

func TestUnknownCommand(t *testing.T) {
	e := testEngine()

	assert.Equal(t, msgUnknownCommand, one(t, e, "tg:1", "/frobnicate").Text)
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:1"))
}

func TestNewGameReservesCode(t *testing.T) {
	e := testEngine()

	reply := one(t, e, "tg:1", "/newgame")
	code := e.reg.pending["tg:1"]

	require.Len(t, code, 4)
	assert.Equal(t, msgNewGame(code), reply.Text)
	assert.Equal(t, AwaitingRoster, e.reg.stateOf("tg:1"))
	// The game itself only materializes once a roster is accepted.
	assert.Empty(t, e.reg.games)
}

func TestRosterTooFewLines(t *testing.T) {
	e := testEngine()

	one(t, e, "tg:1", "/newgame")
	reply := one(t, e, "tg:1", "Анна")

	assert.Equal(t, msgRosterTooShort, reply.Text)
	assert.Equal(t, AwaitingRoster, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.games)
}

func TestRosterAllDuplicates(t *testing.T) {
	e := testEngine()

	one(t, e, "tg:1", "/newgame")
	reply := one(t, e, "tg:1", "Анна\nанна\n АННА ")

	assert.Equal(t, msgRosterRejected, reply.Text)
	assert.Equal(t, AwaitingRoster, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.games)
}

func TestRosterAcceptedAfterRetry(t *testing.T) {
	e := testEngine()

	one(t, e, "tg:1", "/newgame")
	one(t, e, "tg:1", "Анна\nанна")

	code := e.reg.pending["tg:1"]
	reply := one(t, e, "tg:1", "Анна\nБорис\nВера")

	assert.Equal(t, msgGameCreated(code, 3), reply.Text)
	assert.Equal(t, Organizing, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.pending)
	require.Contains(t, e.reg.games, code)
	assert.Len(t, e.reg.games[code].roster, 3)
}

func TestEndToEnd(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис\nВера")
	game := e.reg.games[code]

	// Participant joins by code.
	reply := one(t, e, "tg:2", code)
	assert.Equal(t, msgCodeAccepted(code), reply.Text)
	assert.Equal(t, AwaitingName, e.reg.stateOf("tg:2"))

	// Identifies themselves; spelling and case don't matter.
	reply = one(t, e, "tg:2", " анна ")
	assert.Equal(t, msgNameBound("Анна"), reply.Text)
	assert.Equal(t, KeyboardRecipient, reply.Keyboard)
	assert.Equal(t, Bound, e.reg.stateOf("tg:2"))

	// The button returns the assigned recipient, never themselves.
	reply = one(t, e, "tg:2", buttonGetRecipient)
	want := game.assignment["Анна"]
	assert.Equal(t, msgRecipient(want), reply.Text)
	assert.NotEqual(t, msgRecipient("Анна"), reply.Text)
	assert.Contains(t, []string{"Борис", "Вера"}, want)

	// Pressing again returns the same person.
	for range 5 {
		assert.Equal(t, msgRecipient(want), one(t, e, "tg:2", buttonGetRecipient).Text)
	}
}

func TestJoinUnknownCode(t *testing.T) {
	e := testEngine()

	reply := one(t, e, "tg:2", "ZZZZ")

	assert.Equal(t, msgCodeNotFound, reply.Text)
	assert.Equal(t, AwaitingCode, e.reg.stateOf("tg:2"))
	assert.Empty(t, e.reg.joined)
}

func TestJoinCodeIsCaseInsensitive(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	reply := one(t, e, "tg:2", " "+strings.ToLower(code)+" ")

	assert.Equal(t, msgCodeAccepted(code), reply.Text)
	assert.Equal(t, code, e.reg.joined["tg:2"])
}

func TestNameNotInRoster(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	one(t, e, "tg:2", code)

	reply := one(t, e, "tg:2", "Кто-то Левый")

	assert.Equal(t, msgNameNotFound, reply.Text)
	assert.Equal(t, AwaitingName, e.reg.stateOf("tg:2"))
}

func TestRebindLastWriteWins(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис\nВера")
	game := e.reg.games[code]

	one(t, e, "tg:2", code)
	one(t, e, "tg:2", "Анна")

	// Same name again is a no-op.
	one(t, e, "tg:2", "анна")
	assert.Equal(t, "Анна", game.bound["tg:2"])

	// A different roster name silently re-binds.
	one(t, e, "tg:2", "Борис")
	assert.Equal(t, "Борис", game.bound["tg:2"])

	reply := one(t, e, "tg:2", buttonGetRecipient)
	assert.Equal(t, msgRecipient(game.assignment["Борис"]), reply.Text)
}

func TestRecipientBeforeJoining(t *testing.T) {
	e := testEngine()

	assert.Equal(t, msgJoinFirst, one(t, e, "tg:2", buttonGetRecipient).Text)
}

func TestRecipientBeforeBindingName(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	one(t, e, "tg:2", code)

	assert.Equal(t, msgSendNameFirst, one(t, e, "tg:2", buttonGetRecipient).Text)
}

func TestResetWithNoGame(t *testing.T) {
	e := testEngine()

	assert.Equal(t, msgNothingToReset, one(t, e, "tg:1", "/reset").Text)
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.games)
}

func TestResetReleasesPendingCode(t *testing.T) {
	e := testEngine()

	one(t, e, "tg:1", "/newgame")
	code := e.reg.pending["tg:1"]

	assert.Equal(t, msgResetDone(code), one(t, e, "tg:1", "/reset").Text)
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:1"))
	assert.Empty(t, e.reg.pending)
}

func TestResetEvictsParticipants(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")

	one(t, e, "tg:2", code)
	one(t, e, "tg:2", "Анна")
	one(t, e, "tg:3", code)

	assert.Equal(t, msgResetDone(code), one(t, e, "tg:1", "/reset").Text)

	assert.Empty(t, e.reg.games)
	assert.Empty(t, e.reg.joined)
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:1"))
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:2"))
	assert.Equal(t, Unaffiliated, e.reg.stateOf("tg:3"))

	// Evicted participants are told to join a game first.
	assert.Equal(t, msgJoinFirst, one(t, e, "tg:2", buttonGetRecipient).Text)
}

func TestDeepLinkJoins(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	reply := one(t, e, "tg:2", "/start "+code)

	assert.Equal(t, msgCodeAccepted(code), reply.Text)
	assert.Equal(t, AwaitingName, e.reg.stateOf("tg:2"))
}

func TestDeepLinkWhenAlreadyJoined(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	one(t, e, "tg:2", code)

	reply := one(t, e, "tg:2", "/start "+code)

	assert.Equal(t, msgAlreadyJoined(code), reply.Text)
	assert.Equal(t, code, e.reg.joined["tg:2"])
}

func TestOrganizerCanJoinOwnGame(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис\nВера")
	game := e.reg.games[code]

	one(t, e, "tg:1", code)
	one(t, e, "tg:1", "Вера")

	reply := one(t, e, "tg:1", buttonGetRecipient)
	assert.Equal(t, msgRecipient(game.assignment["Вера"]), reply.Text)
}

func TestBrokenAssignmentSurfacesAsMessage(t *testing.T) {
	e := testEngine()

	code := createGame(t, e, "tg:1", "Анна\nБорис")
	game := e.reg.games[code]

	one(t, e, "tg:2", code)
	one(t, e, "tg:2", "Анна")

	// Corrupt the assignment to simulate a broken invariant; the
	// engine must answer with advice instead of panicking.
	delete(game.assignment, "Анна")

	assert.NotPanics(t, func() {
		assert.Equal(t, msgAssignmentBroken, one(t, e, "tg:2", buttonGetRecipient).Text)
	})
}

func TestStateStrings(t *testing.T) {
	for state, want := range map[State]string{
		Unaffiliated:   "unaffiliated",
		AwaitingRoster: "awaiting_roster",
		Organizing:     "organizing",
		AwaitingCode:   "awaiting_code",
		AwaitingName:   "awaiting_name",
		Bound:          "bound",
	} {
		assert.Equal(t, want, fmt.Sprint(state))
	}
}
