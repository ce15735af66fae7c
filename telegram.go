// Telegram transport for the Secret Santa engine.
//
// The Bot API is plain HTTPS + JSON, and this bot only needs two
// methods (getUpdates and sendMessage) plus a reply keyboard, so the
// calls are made directly with net/http rather than through an SDK.
// Two delivery modes: a long-poll loop (default), or a webhook route
// on the embedded HTTP server when --webhook-secret is set.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

const telegramAPI = "https://api.telegram.org"

type tgChat struct {
	ID int64 `json:"id"`
}

type tgMessage struct {
	MessageID int64  `json:"message_id"`
	Chat      tgChat `json:"chat"`
	Text      string `json:"text"`
}

type tgUpdate struct {
	UpdateID int64      `json:"update_id"`
	Message  *tgMessage `json:"message"`
}

type tgUpdatesResponse struct {
	OK          bool       `json:"ok"`
	Description string     `json:"description"`
	Result      []tgUpdate `json:"result"`
}

type tgKeyboardButton struct {
	Text string `json:"text"`
}

type tgReplyKeyboard struct {
	Keyboard       [][]tgKeyboardButton `json:"keyboard"`
	ResizeKeyboard bool                 `json:"resize_keyboard"`
}

type tgSendMessage struct {
	ChatID      int64            `json:"chat_id"`
	Text        string           `json:"text"`
	ReplyMarkup *tgReplyKeyboard `json:"reply_markup,omitempty"`
}

type TelegramBot struct {
	cfg    *Config
	engine *Engine
	api    string
	client *http.Client
	offset int64
}

func newTelegramBot(cfg *Config, engine *Engine) *TelegramBot {
	return &TelegramBot{
		cfg:    cfg,
		engine: engine,
		api:    telegramAPI,
		// The client timeout must outlast the long poll itself.
		client: &http.Client{Timeout: cfg.pollTimeout + timeout},
	}
}

// poll fetches and dispatches updates until ctx is canceled. A failed
// fetch backs off briefly instead of spinning, and no single bad
// update stops the loop.
func (b *TelegramBot) poll(ctx context.Context) {
	logf(b.cfg, "SANTA: Polling for updates")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("%s | ERROR: %v\n", time.Now().Format(logDate), err)
			time.Sleep(5 * time.Second)

			continue
		}

		for _, update := range updates {
			if update.UpdateID >= b.offset {
				b.offset = update.UpdateID + 1
			}
			b.dispatch(update)
		}
	}
}

func (b *TelegramBot) getUpdates(ctx context.Context) ([]tgUpdate, error) {
	params := url.Values{}
	params.Set("timeout", strconv.Itoa(int(b.cfg.pollTimeout.Seconds())))
	params.Set("offset", strconv.FormatInt(b.offset, 10))
	params.Set("allowed_updates", `["message"]`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		b.api+"/bot"+b.cfg.token+"/getUpdates?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed tgUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if !parsed.OK {
		return nil, fmt.Errorf("getUpdates: %s", parsed.Description)
	}

	return parsed.Result, nil
}

// dispatch routes one update through the engine and delivers the
// replies. Recovers from panics so a single message can't take down
// the dispatcher.
func (b *TelegramBot) dispatch(update tgUpdate) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("%s | ERROR: handler panic: %v\n", time.Now().Format(logDate), r)
		}
	}()

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	identity := "tg:" + strconv.FormatInt(chatID, 10)

	for _, response := range b.engine.Handle(identity, update.Message.Text) {
		if err := b.send(chatID, response); err != nil {
			fmt.Printf("%s | ERROR: send to %d: %v\n", time.Now().Format(logDate), chatID, err)
		}
	}
}

func (b *TelegramBot) send(chatID int64, response Response) error {
	payload := tgSendMessage{
		ChatID: chatID,
		Text:   response.Text,
	}

	if response.Keyboard == KeyboardRecipient {
		payload.ReplyMarkup = &tgReplyKeyboard{
			Keyboard:       [][]tgKeyboardButton{{{Text: buttonGetRecipient}}},
			ResizeKeyboard: true,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := b.client.Post(b.api+"/bot"+b.cfg.token+"/sendMessage",
		"application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("sendMessage: %s: %s", resp.Status, detail)
	}

	return nil
}

// webhookHandler accepts updates pushed by Telegram instead of the
// poll loop. The secret path segment is the only authentication, per
// Telegram's webhook guidance.
func (b *TelegramBot) webhookHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var update tgUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, "malformed update", http.StatusBadRequest)
			return
		}

		b.dispatch(update)
		w.WriteHeader(http.StatusOK)
	}
}
