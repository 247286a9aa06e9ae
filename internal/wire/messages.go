// Package wire defines the WebSocket protocol for live form sessions.
//
// Each connection owns one rendered form. The server sends "session" and an
// initial "view"; every accepted action and every applied lookup result is
// followed by a fresh "view" of the whole tree.
package wire

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/skemaform"
)

// Client action types.
const (
	TypeSet    = "set"    // text, number, toggle, or the whole value at "/"
	TypeAdd    = "add"    // list item or table row
	TypeRemove = "remove" // list item by index, multi-select entry by id
	TypeEdit   = "edit"   // open the table buffer on a row
	TypeSave   = "save"   // commit the table buffer
	TypeCancel = "cancel" // discard the table buffer
	TypeDelete = "delete" // delete a table row
	TypeChoose = "choose" // select an option by id
	TypeToggle = "toggle" // toggle a multi-select option by id
	TypeSearch = "search" // set the multi-select search term
	TypeSubmit = "submit" // hand the value to the submit hook
	TypePing   = "ping"
)

// Server message types.
const (
	TypeSession   = "session"
	TypeView      = "view"
	TypeSubmitted = "submitted"
	TypeError     = "error"
	TypePong      = "pong"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"`
	ID   string          `json:"id"` // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// ActionData addresses a field by the JSON Pointer of the value it edits.
// Only the members the action needs are read.
type ActionData struct {
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
	Index int    `json:"index,omitempty"`
	ID    string `json:"id,omitempty"`
	Term  string `json:"term,omitempty"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SessionData carries session information.
type SessionData struct {
	SessionID string `json:"session_id"`
}

// ViewData is the current tree and value. Non-finite numbers in Value are
// sent as null.
type ViewData struct {
	Root    *skemaform.View `json:"root"`
	Value   any             `json:"value"`
	Pending int             `json:"pending"`
}

// SubmittedData echoes the submitted value.
type SubmittedData struct {
	Value any `json:"value"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
