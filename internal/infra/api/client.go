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
	"time"

	"github.com/Spok95/material-report-bot/internal/domain/report"
)

var ErrUnauthorized = errors.New("api: unauthorized")

// Error ответ сервера с кодом ошибки. Status == 0 — до сервера не дошли.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d - %s", e.Status, e.Message)
}

// Is 401 сравнивается с ErrUnauthorized.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Session данные авторизации, передаются в каждый запрос явно.
type Session struct {
	Token string
}

type Client struct {
	baseURL string
	sort    string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration, sort string) *Client {
	if sort == "" {
		sort = "name"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		sort:    sort,
		http:    &http.Client{Timeout: timeout},
	}
}

// Materials GET /reports/reports/materials за период.
func (c *Client) Materials(ctx context.Context, s Session, p report.Period) ([]report.MaterialRecord, error) {
	q := url.Values{}
	q.Set("sort", c.sort)
	q.Set("start", p.StartDate())
	q.Set("end", p.EndDate())

	body, err := c.do(ctx, s, http.MethodGet, "/reports/reports/materials?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}
	recs, err := report.DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}
	return recs, nil
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token *struct {
		Token string `json:"token"`
	} `json:"token"`
}

// SignIn POST /hr/user/sign-in?include=token, возвращает токен.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(signInRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	body, err := c.do(ctx, Session{}, http.MethodPost, "/hr/user/sign-in?include=token", payload)
	if err != nil {
		return "", err
	}
	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode sign-in: %w", err)
	}
	if resp.Token == nil || resp.Token.Token == "" {
		return "", errors.New("invalid response from server")
	}
	return resp.Token.Token, nil
}

func (c *Client) do(ctx context.Context, s Session, method, path string, payload []byte) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("read body: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(body, resp.StatusCode)}
	}
	return body, nil
}

// serverMessage поле message из тела ответа, иначе стандартный текст.
func serverMessage(body []byte, status int) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &m) == nil && m.Message != "" {
		return m.Message
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}
