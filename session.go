// Santabox Secret Santa bot
//
// An organizer sends /newgame and receives a short game code, then
// submits the participant roster as one message, one name per line.
// Names are deduplicated by normalized form and a fixed-point-free
// random assignment (derangement) is drawn, so nobody gifts themselves.
// Participants join by sending the code, identify themselves by sending
// their roster name, and press the "🎁 Получить имя" button to learn
// their recipient. Only the organizer, who supplied the list, can ever
// see the full pairing.
//
// Features:
// - Per-identity conversational state machine over one shared registry
// - Collision-checked 4-char game codes from an unambiguous alphabet
// - Duplicate names dropped silently, first spelling wins
// - /reset tears the game down and evicts every joined participant
// - Repeated button presses always return the same recipient
// - Deep links: /start CODE joins directly (pairs with the /qr route)
// - Transport-agnostic: Telegram long poll, webhook, or the web console

package main

import (
	"fmt"
	"strings"
	"time"
)

// Response is one outbound reply for the transport shell to deliver.
type Response struct {
	Text     string
	Keyboard KeyboardHint
}

// KeyboardHint is an opaque hint the shell maps to its own UI
// affordance; the engine never renders keyboards itself.
type KeyboardHint int

const (
	KeyboardNone KeyboardHint = iota
	// KeyboardRecipient asks the shell to offer the "get recipient"
	// button alongside the reply.
	KeyboardRecipient
)

func replies(text string) []Response {
	return []Response{{Text: text}}
}

// Engine interprets inbound messages against the registry. It performs
// no I/O of its own; shells deliver whatever it returns.
type Engine struct {
	cfg *Config
	reg *Registry
}

func newEngine(cfg *Config, reg *Registry) *Engine {
	return &Engine{
		cfg: cfg,
		reg: reg,
	}
}

// Handle interprets one inbound message from a chat identity and
// returns the replies to deliver. Commands dispatch on exact text
// before anything else; all remaining text is routed by the identity's
// current state. Every outcome, including a broken assignment
// invariant, turns into a reply rather than a failure.
func (e *Engine) Handle(id, text string) []Response {
	text = strings.TrimSpace(text)

	e.reg.mu.Lock()
	defer e.reg.mu.Unlock()

	switch {
	case text == "/start":
		return replies(msgStart)
	case text == "/help":
		return replies(msgHelp)
	case text == "/newgame":
		return e.createGameLocked(id)
	case text == "/reset":
		return e.resetLocked(id)
	case text == buttonGetRecipient:
		return e.recipientLocked(id)
	case strings.HasPrefix(text, "/start "):
		// Deep link: t.me/<bot>?start=CODE arrives as "/start CODE".
		return e.joinLocked(id, strings.TrimPrefix(text, "/start "))
	case strings.HasPrefix(text, "/"):
		return replies(msgUnknownCommand)
	default:
		return e.textLocked(id, text)
	}
}

// textLocked routes non-command text by the sender's current state.
func (e *Engine) textLocked(id, text string) []Response {
	switch e.reg.states[id] {
	case AwaitingRoster:
		return e.rosterLocked(id, text)
	case AwaitingName, Bound:
		return e.bindNameLocked(id, text)
	default:
		return e.joinLocked(id, text)
	}
}

// createGameLocked reserves a fresh code for the organizer. The game
// itself is only materialized once a roster is accepted. Calling
// /newgame again before that simply reserves a new code.
func (e *Engine) createGameLocked(id string) []Response {
	code := newGameCode(e.cfg.codeLength, e.reg.games)
	e.reg.pending[id] = code
	e.reg.setStateLocked(id, AwaitingRoster)

	logf(e.cfg, "GAMES: %s reserved code %s", id, code)

	return replies(msgNewGame(code))
}

// rosterLocked handles the roster message an organizer owes after
// /newgame. On any rejection the organizer stays in AwaitingRoster and
// may resend the list.
func (e *Engine) rosterLocked(id, text string) []Response {
	code := e.reg.pending[id]

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return replies(msgRosterTooShort)
	}

	game, err := newGame(id, lines)
	if err != nil {
		return replies(msgRosterRejected)
	}

	e.reg.games[code] = game
	e.reg.active[id] = code
	delete(e.reg.pending, id)
	e.reg.setStateLocked(id, Organizing)

	logf(e.cfg, "GAMES: %s created game %s with %d participants", id, code, len(game.roster))

	return replies(msgGameCreated(code, len(game.roster)))
}

// resetLocked tears down the organizer's game: the game is deleted and
// every participant who joined it is evicted back to Unaffiliated.
// A reserved-but-unmaterialized code is released the same way.
func (e *Engine) resetLocked(id string) []Response {
	pendingCode, hasPending := e.reg.pending[id]
	activeCode, hasActive := e.reg.active[id]

	if !hasPending && !hasActive {
		return replies(msgNothingToReset)
	}

	code := activeCode
	if !hasActive {
		code = pendingCode
	}

	if _, live := e.reg.games[activeCode]; hasActive && live {
		for uid, joinedCode := range e.reg.joined {
			if joinedCode != activeCode {
				continue
			}
			delete(e.reg.joined, uid)
			e.reg.setStateLocked(uid, Unaffiliated)
		}
		delete(e.reg.games, activeCode)
	}

	delete(e.reg.pending, id)
	delete(e.reg.active, id)
	e.reg.setStateLocked(id, Unaffiliated)

	logf(e.cfg, "GAMES: %s reset game %s", id, code)

	return replies(msgResetDone(code))
}

// joinLocked treats text as a game code. A failed lookup leaves the
// sender free to retry; a successful one records the membership and
// asks for their roster name.
func (e *Engine) joinLocked(id, text string) []Response {
	if current, ok := e.reg.joined[id]; ok {
		return replies(msgAlreadyJoined(current))
	}

	code := strings.ToUpper(strings.TrimSpace(text))
	if _, ok := e.reg.games[code]; !ok {
		if e.reg.states[id] == Unaffiliated {
			e.reg.setStateLocked(id, AwaitingCode)
		}

		return replies(msgCodeNotFound)
	}

	e.reg.joined[id] = code
	e.reg.setStateLocked(id, AwaitingName)

	logf(e.cfg, "GAMES: %s joined game %s", id, code)

	return replies(msgCodeAccepted(code))
}

// bindNameLocked matches text against the joined game's roster and
// binds the sender to the matched display name. Re-sending a name
// re-binds (last write wins); the roster has no stronger way to tell
// two claimants apart.
func (e *Engine) bindNameLocked(id, text string) []Response {
	code := e.reg.joined[id]

	game, ok := e.reg.games[code]
	if !ok {
		return replies(msgGameGone)
	}

	display, ok := game.displayName(text)
	if !ok {
		return replies(msgNameNotFound)
	}

	game.bound[id] = display
	e.reg.setStateLocked(id, Bound)

	logf(e.cfg, "GAMES: %s identified as %q in game %s", id, display, code)

	return []Response{{Text: msgNameBound(display), Keyboard: KeyboardRecipient}}
}

// recipientLocked answers the "get recipient" trigger from any state:
// unjoined senders are told to join, senders of a reset game are told
// it's gone, unidentified senders are asked for their name first.
func (e *Engine) recipientLocked(id string) []Response {
	code, ok := e.reg.joined[id]
	if !ok {
		return replies(msgJoinFirst)
	}

	game, ok := e.reg.games[code]
	if !ok {
		return replies(msgGameGone)
	}

	name, ok := game.bound[id]
	if !ok {
		return replies(msgSendNameFirst)
	}

	recipient, ok := game.assignment[name]
	if !ok {
		// A bound name missing from the assignment means the game's
		// invariants are broken. Tell the user to have the game
		// reset, and log it unconditionally since it's a bug.
		fmt.Printf("%s | ERROR: no assignment for %q in game %s\n",
			time.Now().Format(logDate), name, code)

		return replies(msgAssignmentBroken)
	}

	return []Response{{Text: msgRecipient(recipient), Keyboard: KeyboardRecipient}}
}
