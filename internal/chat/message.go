package chat

import (
	"bytes"
	"encoding/json"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// DefaultTemperature is the sampling temperature sent with every request.
const DefaultTemperature = 0.7

// AutoLanguage makes the model answer in the language of the input text.
const AutoLanguage = "auto"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completion payload. Field order matches the wire format.
type Request struct {
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
}

// Encode renders the request as compact JSON without HTML escaping,
// so document text containing <, > or & is sent as written.
func (r Request) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
