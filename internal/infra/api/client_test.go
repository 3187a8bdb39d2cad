package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/material-report-bot/internal/domain/report"
)

var october = report.MonthOf(2026, time.October, time.UTC)

func TestMaterials_SendsPeriodAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/reports/materials", r.URL.Path)
		assert.Equal(t, "name", r.URL.Query().Get("sort"))
		assert.Equal(t, "2026-10-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2026-10-31", r.URL.Query().Get("end"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"parent":"A","category":"X","remind_end_sum":100},{"category":"Y"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/v1/", time.Second, "")
	recs, err := c.Materials(context.Background(), Session{Token: "secret"}, october)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].EndSum.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, report.UnknownGroup, recs[1].Parent)
}

func TestMaterials_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	recs, err := New(srv.URL, time.Second, "name").Materials(context.Background(), Session{}, october)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMaterials_ServerErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "DB unavailable"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "name").Materials(context.Background(), Session{Token: "t"}, october)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "DB unavailable", apiErr.Message)
	assert.Equal(t, "500 - DB unavailable", err.Error())
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestMaterials_UnauthorizedAndPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, "name").Materials(context.Background(), Session{Token: "old"}, october)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "401 - Request failed with status code 401", err.Error())
}

func TestMaterials_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second, "name").Materials(context.Background(), Session{}, october)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hr/user/sign-in", r.URL.Path)
		assert.Equal(t, "token", r.URL.Query().Get("include"))

		var body signInRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Username == "admin" && body.Password == "pass" {
			_, _ = w.Write([]byte(`{"token":{"token":"abc"}}`))
			return
		}
		if body.Username == "empty" {
			_, _ = w.Write([]byte(`{"token":null}`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Неверный логин или пароль"}`))
	}))
	defer srv.Close()
	c := New(srv.URL, time.Second, "name")

	tok, err := c.SignIn(context.Background(), "admin", "pass")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = c.SignIn(context.Background(), "admin", "wrong")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Неверный логин или пароль", apiErr.Message)

	_, err = c.SignIn(context.Background(), "empty", "x")
	assert.EqualError(t, err, "invalid response from server")
}
