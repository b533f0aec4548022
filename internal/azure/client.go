package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/earlysvahn/aiwriter/internal/chat"
	"github.com/earlysvahn/aiwriter/internal/utils"
)

const (
	Deployment = "gpt-35-turbo"
	APIVersion = "2023-05-15"
)

// Credentials identify the resource and secret for one call.
type Credentials struct {
	Endpoint string
	APIKey   string
}

type Client struct {
	Client *http.Client
	Log    func(string)
}

// NewClient returns a client without a request timeout; a call blocks until
// the endpoint answers or ctx is done.
func NewClient(log func(string)) *Client {
	return &Client{
		Client: &http.Client{},
		Log:    log,
	}
}

// CompletionsURL builds the chat-completions URL for the fixed deployment.
func CompletionsURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/openai/deployments/" + Deployment + "/chat/completions?api-version=" + APIVersion
}

func (c *Client) logf(format string, args ...any) {
	if c.Log != nil {
		c.Log(fmt.Sprintf(format, args...))
	}
}

// Complete sends one chat-completion request and returns the answer text.
// Every failure is a *TransportError.
func (c *Client) Complete(ctx context.Context, creds Credentials, req chat.Request) (string, error) {
	b, err := req.Encode()
	if err != nil {
		return "", &TransportError{Op: "marshal request", Err: err}
	}

	url := CompletionsURL(creds.Endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &TransportError{Op: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", creds.APIKey)

	c.logf("completion request start %s", url)
	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		c.logf("completion request failed: %v", err)
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logf("completion request non-2xx: %d", resp.StatusCode)
		return "", &TransportError{Op: "completion", StatusCode: resp.StatusCode, Err: statusError(body)}
	}

	answer, err := ParseAnswer(body)
	if err != nil {
		return "", &TransportError{Op: "completion", StatusCode: resp.StatusCode, Err: err}
	}
	c.logf("completion request ok (%d chars)", len(answer))
	return answer, nil
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type chatResp struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// ParseAnswer extracts choices[0].message.content from a response body.
func ParseAnswer(body []byte) (string, error) {
	var out chatResp
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &ParseError{Reason: "invalid JSON: " + err.Error()}
	}
	if out.Error != nil {
		return "", &ParseError{Reason: "api error: " + out.Error.describe()}
	}
	if len(out.Choices) == 0 {
		return "", &ParseError{Reason: "no choices in response"}
	}
	msg := out.Choices[0].Message
	if msg == nil {
		return "", &ParseError{Reason: "choices[0] has no message"}
	}
	if msg.Content == nil {
		return "", &ParseError{Reason: "choices[0].message has no content"}
	}
	return *msg.Content, nil
}

func (e *apiError) describe() string {
	switch {
	case e.Code != "" && e.Message != "":
		return e.Code + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	}
	return "unknown error"
}

const maxErrorBody = 200

func statusError(body []byte) error {
	var out struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error != nil {
		return errors.New(out.Error.describe())
	}
	msg := utils.Truncate(strings.TrimSpace(string(body)), maxErrorBody)
	if msg == "" {
		msg = "empty body"
	}
	return errors.New(msg)
}
