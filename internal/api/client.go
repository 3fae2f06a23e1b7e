// Package api provides a client for the FinanceFlow REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

const (
	apiPrefix      = "/api/v1"
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrNoToken indicates the client has no auth token configured.
	ErrNoToken = errors.New("api: no auth token")
	// ErrUnauthorized indicates the token is expired or invalid.
	ErrUnauthorized = errors.New("api: unauthorized (token expired or invalid)")
	// ErrRateLimited indicates the backend rate limit was hit.
	ErrRateLimited = errors.New("api: rate limited")
)

// Client talks to the FinanceFlow backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given server base URL. The token may be
// empty; authenticated calls then fail with ErrNoToken, which callers treat
// as "not logged in" rather than a transport failure.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{},
	}
}

// HasToken reports whether the client carries an auth token.
func (c *Client) HasToken() bool { return c.token != "" }

// SetToken replaces the auth token, e.g. after login.
func (c *Client) SetToken(token string) { c.token = strings.TrimSpace(token) }

// loginResponse is the wire shape of a successful login.
type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    model.Member `json:"user"`
}

// Login authenticates with phone number and password. On success the
// returned token is also installed on the client.
func (c *Client) Login(ctx context.Context, phoneNumber, password string) (string, model.Member, error) {
	body, err := c.do(ctx, http.MethodPost, "/users/login", map[string]string{
		"phoneNumber": phoneNumber,
		"password":    password,
	}, false)
	if err != nil {
		return "", model.Member{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", model.Member{}, fmt.Errorf("api: parsing login response: %w", err)
	}
	if !resp.Success || resp.Token == "" {
		return "", model.Member{}, fmt.Errorf("api: login failed: %s", resp.Message)
	}

	c.token = resp.Token
	return resp.Token, resp.User, nil
}

// FetchGroups returns the groups the current user belongs to.
func (c *Client) FetchGroups(ctx context.Context) ([]model.Group, error) {
	body, err := c.do(ctx, http.MethodGet, "/groups/get-groups", nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool          `json:"success"`
		Groups  []model.Group `json:"groups"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("api: parsing groups: %w", err)
	}
	return resp.Groups, nil
}

// FetchGroupBalances returns the per-member balance rows for a group.
func (c *Client) FetchGroupBalances(ctx context.Context, groupID string) ([]model.MemberBalance, error) {
	path := "/splits/get-group-balances?groupId=" + url.QueryEscape(groupID)
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool `json:"success"`
		Balances struct {
			Members []model.MemberBalance `json:"members"`
		} `json:"balances"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("api: parsing group balances: %w", err)
	}
	return resp.Balances.Members, nil
}

// FetchSettlementStatus returns the user's settlement ledger for a group.
func (c *Client) FetchSettlementStatus(ctx context.Context, groupID, userID string) (*model.SettlementLedger, error) {
	path := fmt.Sprintf("/splits/settlement-status/%s/%s", url.PathEscape(groupID), url.PathEscape(userID))
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success          bool                   `json:"success"`
		SettlementStatus model.SettlementLedger `json:"settlementStatus"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("api: parsing settlement status: %w", err)
	}
	return &resp.SettlementStatus, nil
}

// FetchTransactions returns one page of a group's transaction history.
func (c *Client) FetchTransactions(ctx context.Context, groupID string, page, limit int) (*model.TransactionPage, error) {
	path := "/splits/get-transactions?groupId=" + url.QueryEscape(groupID) +
		"&page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool `json:"success"`
		model.TransactionPage
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("api: parsing transactions: %w", err)
	}
	return &resp.TransactionPage, nil
}

// FetchSpendingSummary returns the spending rollup for a group.
func (c *Client) FetchSpendingSummary(ctx context.Context, groupID string) (*model.SpendingSummary, error) {
	path := "/splits/spending-summary?groupId=" + url.QueryEscape(groupID)
	body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool                  `json:"success"`
		Summary model.SpendingSummary `json:"summary"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("api: parsing spending summary: %w", err)
	}
	return &resp.Summary, nil
}

// ConfirmSettlement marks all of a counterparty's paid settlements toward the
// current user as success (confirmed=true) or pushes them back to pending
// (confirmed=false, a rejection).
func (c *Client) ConfirmSettlement(ctx context.Context, groupID, userID string, confirmed bool) error {
	body, err := c.do(ctx, http.MethodPut, "/splits/confirm-settlement", map[string]any{
		"groupId":   groupID,
		"userId":    userID,
		"confirmed": confirmed,
	}, true)
	if err != nil {
		return err
	}
	return checkEnvelope(body, "confirm settlement")
}

// UpdateSettlementStatus records that the current user has paid the given
// amount toward a counterparty (pending -> paid).
func (c *Client) UpdateSettlementStatus(ctx context.Context, groupID, userID string, amount decimal.Decimal) error {
	body, err := c.do(ctx, http.MethodPut, "/splits/update-settlement-status", map[string]any{
		"groupId": groupID,
		"userId":  userID,
		"amount":  amount,
	}, true)
	if err != nil {
		return err
	}
	return checkEnvelope(body, "update settlement status")
}

func checkEnvelope(body []byte, op string) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("api: parsing %s response: %w", op, err)
	}
	if !resp.Success {
		return fmt.Errorf("api: %s failed: %s", op, resp.Message)
	}
	return nil
}

// do performs one request against the backend and returns the response body.
// Writes (non-GET) carry an idempotency key so a retried or double-submitted
// mutation is deduplicated server-side.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	if authed && c.token == "" {
		return nil, ErrNoToken
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("api: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
