package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Deliver_Success(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"received":true}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(5 * time.Second)
	out := c.Deliver(context.Background(), Request{
		URL:  srv.URL,
		Body: map[string]string{"message": "hello"},
	})

	assert.True(t, out.Succeeded)
	assert.Equal(t, http.StatusOK, out.HTTPStatus)
	assert.Empty(t, out.TransportError)
	assert.JSONEq(t, `{"received":true}`, string(out.ResponseBody))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "hello", gotBody["message"])
}

func TestHTTPClient_Deliver_Non2xxIsFailedOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(5 * time.Second)
	out := c.Deliver(context.Background(), Request{URL: srv.URL, Body: map[string]string{}})

	assert.False(t, out.Succeeded)
	assert.Equal(t, http.StatusServiceUnavailable, out.HTTPStatus)
	assert.Empty(t, out.TransportError)
	assert.JSONEq(t, `{"error":"maintenance"}`, string(out.ResponseBody))
}

func TestHTTPClient_Deliver_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(5 * time.Second)
	out := c.Deliver(context.Background(), Request{URL: url, Body: map[string]string{}})

	assert.False(t, out.Succeeded)
	assert.Zero(t, out.HTTPStatus)
	assert.NotEmpty(t, out.TransportError)
}

func TestHTTPClient_Deliver_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(50 * time.Millisecond)
	out := c.Deliver(context.Background(), Request{URL: srv.URL, Body: map[string]string{}})

	assert.False(t, out.Succeeded)
	assert.NotEmpty(t, out.TransportError)
}

func TestHTTPClient_Deliver_NonJSONBodyIsQuoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewHTTPClient(5 * time.Second)
	out := c.Deliver(context.Background(), Request{URL: srv.URL, Body: map[string]string{}})

	assert.True(t, out.Succeeded)
	assert.True(t, json.Valid(out.ResponseBody))
	assert.Equal(t, `"OK"`, string(out.ResponseBody))
}

func TestHTTPClient_Deliver_DefaultsToPost(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer srv.Close()

	c := NewHTTPClient(5 * time.Second)
	c.Deliver(context.Background(), Request{URL: srv.URL, Body: map[string]string{}})

	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestSnapshotJSON(t *testing.T) {
	assert.Nil(t, snapshotJSON(nil))
	assert.Equal(t, `{"a":1}`, string(snapshotJSON([]byte(`{"a":1}`))))
	assert.Equal(t, `"plain text"`, string(snapshotJSON([]byte("plain text"))))
}
