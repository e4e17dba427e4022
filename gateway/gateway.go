// Package gateway is the JSON client for the payment gateway's webservices
// API. It owns the session credentials and turns gateway error envelopes
// into Go errors; it knows nothing about schemas or request assembly.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// ErrNotLoggedIn is returned by Process before a successful Login.
var ErrNotLoggedIn = errors.New("not logged in")

// Error is a non-zero gateway error envelope.
type Error struct {
	Code    string
	Message string
	Data    string
}

func (e *Error) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s %s", e.Code, e.Message, e.Data)
}

// Envelope is the outer gateway response: one inner response per request
// type description that was processed.
type Envelope struct {
	Responses []Response `json:"responses"`
}

// Response is a single inner gateway response. The gateway sends numbers as
// strings on the wire.
type Response struct {
	ErrorCode              string              `json:"errorcode"`
	ErrorMessage           string              `json:"errormessage"`
	ErrorData              string              `json:"errordata"`
	Found                  string              `json:"found,omitempty"`
	Records                []map[string]string `json:"records,omitempty"`
	TransactionReference   string              `json:"transactionreference,omitempty"`
	RequestTypeDescription string              `json:"requesttypedescription,omitempty"`
	SettleStatus           string              `json:"settlestatus,omitempty"`
}

// Err maps a non-zero errorcode to an *Error; "0" means success.
func (r *Response) Err() error {
	if r.ErrorCode == "0" {
		return nil
	}
	return &Error{Code: r.ErrorCode, Message: r.ErrorMessage, Data: r.ErrorData}
}

// FoundCount parses the "found" counter, zero when absent or malformed.
func (r *Response) FoundCount() int {
	n := 0
	for _, ch := range r.Found {
		if ch < '0' || ch > '9' {
			return 0
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

// Client is a gateway session. Credentials are captured by a successful
// Login and sent as basic auth on every call.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger

	username string
	password string
	loggedIn bool
}

// New returns a client for the gateway at base. A nil http.Client gets a
// 30 second timeout default.
func New(base string, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   hc,
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// LoggedIn reports whether a Login has succeeded since the last Logout.
func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

// Logout drops the session credentials.
func (c *Client) Logout() {
	c.username = ""
	c.password = ""
	c.loggedIn = false
}

// Login verifies the credentials by running a transaction query for today's
// AUTH, REFUND and THREEDQUERY transactions. On success the client keeps
// the credentials and returns the probe's response so the caller can show
// today's transactions immediately.
func (c *Client) Login(ctx context.Context, username, password string) (*Response, error) {
	today := time.Now().Format("2006-01-02")
	probe := map[string]any{
		"requesttypedescriptions": []string{"TRANSACTIONQUERY"},
		"filter": map[string]any{
			"starttimestamp": []map[string]string{{"value": today + " 00:00:00"}},
			"endtimestamp":   []map[string]string{{"value": today + " 23:59:59"}},
			"requesttypedescription": []map[string]string{
				{"value": "AUTH"}, {"value": "REFUND"}, {"value": "THREEDQUERY"},
			},
		},
	}
	env, err := c.send(ctx, username, password, probe)
	if err != nil {
		return nil, err
	}
	if len(env.Responses) == 0 {
		return nil, fmt.Errorf("gateway returned an empty envelope")
	}
	resp := env.Responses[0]
	if err := resp.Err(); err != nil {
		c.logger.Error("login rejected", slog.Any("err", err))
		return nil, fmt.Errorf("logging in: %w", err)
	}
	c.username = username
	c.password = password
	c.loggedIn = true
	c.logger.Debug("login successful", slog.String("user", username))
	return &resp, nil
}

// Process posts an assembled request payload to the gateway and returns the
// decoded envelope. Inner error codes are left for the caller to interpret
// per response; transport and decode failures come back as errors.
func (c *Client) Process(ctx context.Context, payload map[string]any) (*Envelope, error) {
	if !c.loggedIn {
		return nil, ErrNotLoggedIn
	}
	return c.send(ctx, c.username, c.password, payload)
}

func (c *Client) send(ctx context.Context, username, password string, payload map[string]any) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	requestID := uuid.New().String()
	c.logger.Debug("sending request",
		slog.String("request_id", requestID),
		slog.String("payload", string(body)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/json/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.SetBasicAuth(username, password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	c.logger.Debug("received response",
		slog.String("request_id", requestID),
		slog.Int("responses", len(env.Responses)))
	return &env, nil
}
