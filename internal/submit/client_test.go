// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/signup-tui/internal/form"
)

func sampleEntries() []form.Entry {
	return []form.Entry{
		{Name: "first_name", Value: "Ana"},
		{Name: "phone", Value: "+15551234567"},
		{Name: "address", Value: "12 Long Street"},
		{Name: "email", Value: "ana@example.com"},
		{Name: "password1", Value: "Abcdef1!"},
		{Name: "password2", Value: "Abcdef1!"},
		{Name: "profile_pic", File: true},
	}
}

func TestSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/signup/", r.URL.Path)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("X-CSRFToken"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ana", r.FormValue("first_name"))
		assert.Equal(t, "ana@example.com", r.FormValue("email"))
		assert.Equal(t, "Abcdef1!", r.FormValue("password2"))
		assert.Empty(t, r.MultipartForm.File["profile_pic"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success": true, "name": "Ana", "redirect": "/"}`)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	resp, err := c.Submit(context.Background(), sampleEntries())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.RequestID)
	assert.True(t, resp.Result.Success)
	assert.Equal(t, "Ana", resp.Result.Name)
}

func TestSubmitFormErrorsOnBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success": false, "form_errors": {"email": ["Already registered."]}}`)
	}))
	defer srv.Close()

	resp, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), sampleEntries())
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, resp.Result.Success)
	assert.Equal(t, []string{"Already registered."}, resp.Result.FormErrors["email"])
}

func TestSubmitStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "<h1>Server Error (500)</h1>")
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), sampleEntries())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
	assert.Contains(t, err.Error(), "500")
}

func TestSubmitNonJSONSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>welcome</html>")
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), sampleEntries())
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestSubmitOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error": "`)
		fmt.Fprint(w, strings.Repeat("x", MaxResponseSize))
		fmt.Fprint(w, `"}`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), sampleEntries())
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestSubmitNotConfigured(t *testing.T) {
	for _, base := range []string{"", "   ", "not a url", "/relative/only"} {
		c := NewClient(Options{BaseURL: base})
		assert.Empty(t, c.Endpoint())
		_, err := c.Submit(context.Background(), sampleEntries())
		assert.ErrorIs(t, err, ErrNotConfigured, "base %q", base)
	}
}

func TestSubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(Options{BaseURL: url}).Submit(context.Background(), sampleEntries())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidResponse))
	assert.False(t, errors.Is(err, ErrThrottled))
	assert.Contains(t, err.Error(), "signup request failed")
}

func TestSubmitThrottled(t *testing.T) {
	var posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		fmt.Fprint(w, `{"success": false}`)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, RatePerMinute: 1, Burst: 1})
	_, err := c.Submit(context.Background(), sampleEntries())
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), sampleEntries())
	assert.ErrorIs(t, err, ErrThrottled)
	assert.Equal(t, int32(1), posts.Load())
}

func TestSubmitCSRFPriming(t *testing.T) {
	var gets, posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok123", Path: "/"})
			fmt.Fprint(w, "<form></form>")
		case http.MethodPost:
			posts.Add(1)
			assert.Equal(t, "tok123", r.Header.Get("X-CSRFToken"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "tok123", r.FormValue("csrfmiddlewaretoken"))
			assert.NotEmpty(t, r.Header.Get("Referer"))
			fmt.Fprint(w, `{"success": true, "name": "Ana"}`)
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, CSRF: true})
	for i := 0; i < 2; i++ {
		resp, err := c.Submit(context.Background(), sampleEntries())
		require.NoError(t, err)
		assert.True(t, resp.Result.Success)
	}
	assert.Equal(t, int32(1), gets.Load(), "token should be reused from the jar")
	assert.Equal(t, int32(2), posts.Load())
}

func TestSubmitCSRFWithoutCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			return
		}
		assert.Empty(t, r.Header.Get("X-CSRFToken"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["csrfmiddlewaretoken"]
		assert.False(t, present)
		fmt.Fprint(w, `{"success": false, "error": "CSRF verification failed."}`)
	}))
	defer srv.Close()

	resp, err := NewClient(Options{BaseURL: srv.URL, CSRF: true}).Submit(context.Background(), sampleEntries())
	require.NoError(t, err)
	assert.Equal(t, "CSRF verification failed.", resp.Result.Error)
}

func TestSubmitAttachesProfilePicture(t *testing.T) {
	dir := t.TempDir()
	pic := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(pic, []byte("\x89PNG fake"), 0600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("profile_pic")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "me.png", hdr.Filename)
		assert.Equal(t, "\x89PNG fake", string(data))
		fmt.Fprint(w, `{"success": true, "name": "Ana"}`)
	}))
	defer srv.Close()

	entries := sampleEntries()
	entries[len(entries)-1].Value = pic

	resp, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), entries)
	require.NoError(t, err)
	assert.True(t, resp.Result.Success)
}

func TestSubmitMissingProfilePicture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	entries := sampleEntries()
	entries[len(entries)-1].Value = filepath.Join(t.TempDir(), "gone.png")

	_, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile_pic")
}

func TestSubmitSanitizesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "name": "<b>Ana</b>"}`)
	}))
	defer srv.Close()

	resp, err := NewClient(Options{BaseURL: srv.URL}).Submit(context.Background(), sampleEntries())
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Result.Name)
}

func TestSubmitLogsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "name": "Ana"}`)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	resp, err := NewClient(Options{BaseURL: srv.URL, Logger: zap.New(core)}).Submit(context.Background(), sampleEntries())
	require.NoError(t, err)

	entries := logs.FilterMessage("signup response").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, resp.RequestID, fields["request_id"])
	assert.Equal(t, true, fields["success"])
	for _, v := range fields {
		assert.NotEqual(t, "Abcdef1!", v)
	}
}

func TestEndpointAndRedirect(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://example.test:8000"})
	assert.Equal(t, "http://example.test:8000/users/signup/", c.Endpoint())
	assert.Equal(t, "http://example.test:8000/", c.ResolveRedirect(""))
	assert.Equal(t, "http://example.test:8000/dash/", c.ResolveRedirect("/dash/"))
	assert.Equal(t, "https://other.test/x", c.ResolveRedirect("https://other.test/x"))

	custom := NewClient(Options{BaseURL: "http://example.test/app/", SignupPath: "accounts/register/"})
	assert.Equal(t, "http://example.test/app/accounts/register/", custom.Endpoint())

	none := NewClient(Options{})
	assert.Equal(t, "/", none.ResolveRedirect(""))
}
