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
	"strings"

	"github.com/finmate-app/finmate/internal/client/session"
	"github.com/finmate-app/finmate/internal/common"
)

// HTTPClient talks JSON over HTTP to the FinMate backend. Per-call
// deadlines are the caller's responsibility (contexts); the embedded
// http.Client carries no timeout of its own so a context deadline is the
// single cancellation mechanism.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewHTTPClient(baseURL string, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// detailBody is the error shape every backend failure response carries.
type detailBody struct {
	Detail string `json:"detail"`
}

func readDetail(body io.Reader) string {
	var d detailBody
	if err := json.NewDecoder(body).Decode(&d); err != nil {
		return ""
	}
	return d.Detail
}

// mapTransportError classifies request errors: a deadline hit is a
// timeout, anything else that kept the request from completing is a
// network failure. By the time either is returned the request has been
// cancelled, so a late response can no longer be observed.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrNetwork, err)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := readDetail(resp.Body)
		if detail == "" {
			detail = "login failed"
		}
		// only a 401 states the credentials were wrong; a 422 or a 5xx is
		// some other rejection and must not read as "bad password"
		if resp.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %s", common.ErrInvalidCredentials, detail)
		}
		return "", fmt.Errorf("%w: %s", common.ErrRejected, detail)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding login response: %v", common.ErrNetwork, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", common.ErrRejected)
	}
	return body.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password, fullName string) error {
	payload := map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register", bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := readDetail(resp.Body)
		if detail == "" {
			detail = "registration failed"
		}
		return fmt.Errorf("%w: %s", common.ErrRejected, detail)
	}
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) ListExpenses(ctx context.Context, from, to string) ([]Expense, error) {
	path := "/api/expenses/expenses"
	q := url.Values{}
	if from != "" {
		q.Set("start_date", from)
	}
	if to != "" {
		q.Set("end_date", to)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var expenses []Expense
	if err := c.do(ctx, http.MethodGet, path, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (c *HTTPClient) AddExpense(ctx context.Context, e Expense) (*Expense, error) {
	var created Expense
	if err := c.do(ctx, http.MethodPost, "/api/expenses/expenses", e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/expenses/expenses/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ExpenseSummary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := c.do(ctx, http.MethodGet, "/api/expenses/expenses/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) ListGoals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, http.MethodGet, "/api/savings/goals", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *HTTPClient) AddGoal(ctx context.Context, g Goal) (*Goal, error) {
	var created Goal
	if err := c.do(ctx, http.MethodPost, "/api/savings/goals", g, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateGoalAmount(ctx context.Context, id string, amount float64) (*Goal, error) {
	var updated Goal
	payload := map[string]float64{"current_amount": amount}
	if err := c.do(ctx, http.MethodPut, "/api/savings/goals/"+url.PathEscape(id), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/savings/goals/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) MonthlyTarget(ctx context.Context, id string) (*MonthlyTarget, error) {
	var target MonthlyTarget
	if err := c.do(ctx, http.MethodGet, "/api/savings/goals/"+url.PathEscape(id)+"/monthly-target", nil, &target); err != nil {
		return nil, err
	}
	return &target, nil
}

func (c *HTTPClient) Chat(ctx context.Context, message string) (string, error) {
	var reply struct {
		Reply string `json:"reply"`
	}
	payload := map[string]string{"message": message}
	if err := c.do(ctx, http.MethodPost, "/api/ai/chat", payload, &reply); err != nil {
		return "", err
	}
	return reply.Reply, nil
}

func (c *HTTPClient) Insights(ctx context.Context) ([]Insight, error) {
	var insights []Insight
	if err := c.do(ctx, http.MethodGet, "/api/smart/insights", nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// do performs one JSON request against a protected endpoint, attaching the
// current bearer token. out may be nil when the response body is not
// needed.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrNetwork, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrNetwork, err)
	}
	return nil
}

// mapStatus classifies non-2xx responses on protected endpoints. A 401
// means the token is no longer accepted; there is no refresh flow, the
// user has to log in again.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		detail := readDetail(resp.Body)
		if detail == "" {
			detail = "not found"
		}
		return fmt.Errorf("%w: %s", common.ErrorNotFound, detail)
	default:
		detail := readDetail(resp.Body)
		if detail == "" {
			detail = resp.Status
		}
		return fmt.Errorf("%w: %s", common.ErrRejected, detail)
	}
}
