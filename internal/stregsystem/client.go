package stregsystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/krestenlaust/fappen/internal/domain"
	"github.com/krestenlaust/fappen/pkg/httpclient"
)

// Doer is the HTTP surface the client depends on. Both httpclient.Client
// and httpclient.BreakerClient satisfy it.
type Doer interface {
	Get(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error)
}

const serviceName = "stregsystem"

// Client issues typed requests against the stregsystem REST API.
type Client struct {
	http    Doer
	baseURL string
	rootURL string
}

// NewClient creates a client for the given API base URL, e.g.
// "https://stregsystem.fklub.dk/api". The service root used by Ping is
// derived by dropping the last path segment of the API URL.
func NewClient(httpDoer Doer, baseURL string) (*Client, error) {
	base := strings.TrimRight(baseURL, "/")

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q missing scheme or host", baseURL)
	}

	root := *u
	if i := strings.LastIndex(root.Path, "/"); i >= 0 {
		root.Path = root.Path[:i]
	}

	return &Client{
		http:    httpDoer,
		baseURL: base,
		rootURL: root.String() + "/",
	}, nil
}

// MemberID resolves a username to its numeric member id.
func (c *Client) MemberID(ctx context.Context, username string) (int, error) {
	endpoint := fmt.Sprintf("%s/member/get_id?username=%s", c.baseURL, url.QueryEscape(username))

	var payload struct {
		MemberID int `json:"member_id"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, fmt.Errorf("get member id for %q: %w", username, err)
	}

	return payload.MemberID, nil
}

// Member fetches member info by id. The username is not part of the
// upstream response; callers composing a full profile set it themselves.
func (c *Client) Member(ctx context.Context, memberID int) (*domain.Member, error) {
	endpoint := fmt.Sprintf("%s/member?member_id=%d", c.baseURL, memberID)

	var payload struct {
		Name    string `json:"name"`
		Active  bool   `json:"active"`
		Balance int64  `json:"balance"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("get member %d: %w", memberID, err)
	}

	return &domain.Member{
		ID:      memberID,
		Name:    payload.Name,
		Active:  payload.Active,
		Balance: payload.Balance,
	}, nil
}

// Balance fetches the member's balance in øre.
func (c *Client) Balance(ctx context.Context, memberID int) (int64, error) {
	endpoint := fmt.Sprintf("%s/member/balance?member_id=%d", c.baseURL, memberID)

	var payload struct {
		Balance int64 `json:"balance"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, fmt.Errorf("get balance for member %d: %w", memberID, err)
	}

	return payload.Balance, nil
}

// ActiveProducts fetches the active-product catalogue for a room.
func (c *Client) ActiveProducts(ctx context.Context, roomID int) (*domain.Catalogue, error) {
	endpoint := fmt.Sprintf("%s/products/active_products?room_id=%d", c.baseURL, roomID)

	var catalogue domain.Catalogue
	if err := c.getJSON(ctx, endpoint, &catalogue); err != nil {
		return nil, fmt.Errorf("get active products for room %d: %w", roomID, err)
	}

	return &catalogue, nil
}

// SubmitSale posts a sale for the given buy string, room, and member.
func (c *Client) SubmitSale(ctx context.Context, buyString string, roomID, memberID int) (*domain.SaleResult, error) {
	endpoint := c.baseURL + "/sale"

	reqBody := struct {
		BuyString string `json:"buy_string"`
		Room      int    `json:"room"`
		MemberID  int    `json:"member_id"`
	}{
		BuyString: buyString,
		Room:      roomID,
		MemberID:  memberID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal sale request: %w", err)
	}

	resp, err := c.http.Post(ctx, endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit sale: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}

	var result domain.SaleResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sale result: %w", err)
	}

	return &result, nil
}

// Ping checks reachability of the service root. Only the status class
// matters; the body is discarded.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.rootURL)
	if err != nil {
		return fmt.Errorf("ping service root: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ping service root: unexpected status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, serviceName)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
