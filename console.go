// Web console transport: a local browser chat that speaks to the same
// engine as Telegram does, for trying the bot without a token.
//
// Each browser is identified by a cookie, mirroring how Telegram chats
// keep a stable ID; messages and replies travel over a websocket.

package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

//go:embed console/index.html
var consoleHTML []byte

const chatCookieName = "santabox_id"

func getOrSetChatID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(chatCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     chatCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// consoleClient is one connected browser tab.
type consoleClient struct {
	conn   *websocket.Conn
	send   chan consoleReply
	chatID string
}

type consoleMessage struct {
	Text string `json:"text"`
}

type consoleReply struct {
	Text     string `json:"text"`
	Keyboard bool   `json:"keyboard,omitempty"`
}

func (c *consoleClient) readPump(engine *Engine) {
	defer func() {
		close(c.send)
		_ = c.conn.Close()
	}()

	for {
		var msg consoleMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}

		for _, response := range engine.Handle("web:"+c.chatID, msg.Text) {
			c.send <- consoleReply{
				Text:     response.Text,
				Keyboard: response.Keyboard == KeyboardRecipient,
			}
		}
	}
}

func (c *consoleClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func serveConsolePage(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		_ = getOrSetChatID(w, r)

		_, _ = w.Write(consoleHTML)
	}
}

func serveConsoleWS(cfg *Config, engine *Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		chatID := getOrSetChatID(w, r)
		if chatID == "" {
			http.Error(w, "unable to assign chat id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &consoleClient{
			conn:   conn,
			send:   make(chan consoleReply, 8),
			chatID: chatID,
		}

		logf(cfg, "CONSOLE: web:%s connected from %s", chatID, realIP(r))

		go client.writePump()
		client.readPump(engine)
	}
}

// registerConsole wires the local web chat:
//   - $prefix/console      → HTML client
//   - $prefix/console/ws   → per-browser websocket
//   - $prefix/assets/...   → shared css/js
func registerConsole(cfg *Config, engine *Engine, errs chan<- error, mux *httprouter.Router) {
	mux.GET(cfg.prefix+"/console", serveConsolePage(cfg))
	mux.GET(cfg.prefix+"/console/ws", serveConsoleWS(cfg, engine))
	mux.GET(cfg.prefix+"/assets/console/app.css", serveAssets(cfg, errs))
	mux.GET(cfg.prefix+"/assets/console/app.js", serveAssets(cfg, errs))
}
