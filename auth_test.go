package main

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

func TestOAuthConfig(t *testing.T) {
	creds := &Credentials{ClientID: "12345", ClientSecret: "s3cr3t"}
	cfg := oauthConfig(creds, 8000)

	assert.Equal(t, "12345", cfg.ClientID)
	assert.Equal(t, "s3cr3t", cfg.ClientSecret)
	assert.Equal(t, endpoints.Strava, cfg.Endpoint)
	assert.Equal(t, "http://localhost:8000/", cfg.RedirectURL)
	assert.Equal(t, []string{"activity:read_all"}, cfg.Scopes)
}

func TestAuthCodeURLForcesReapproval(t *testing.T) {
	cfg := oauthConfig(&Credentials{ClientID: "12345", ClientSecret: "s3cr3t"}, 8000)
	authURL := cfg.AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "force"))

	assert.Contains(t, authURL, "https://www.strava.com/oauth/authorize")
	assert.Contains(t, authURL, "approval_prompt=force")
	assert.Contains(t, authURL, "response_type=code")
	assert.Contains(t, authURL, "scope=activity%3Aread_all")
	assert.Contains(t, authURL, "client_id=12345")
}

func TestCallbackHandlerExtractsCode(t *testing.T) {
	codes := make(chan string, 1)
	handler := callbackHandler(codes)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/?code=abc123&scope=activity:read_all", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication successful")
	assert.Equal(t, "abc123", <-codes)
}

func TestCallbackHandlerMissingCode(t *testing.T) {
	codes := make(chan string, 1)
	handler := callbackHandler(codes)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/?error=access_denied", nil))

	assert.Contains(t, rec.Body.String(), "Authentication failed")
	assert.Equal(t, "", <-codes)
}

func TestCallbackHandlerIgnoresOtherPaths(t *testing.T) {
	codes := make(chan string, 1)
	handler := callbackHandler(codes)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/favicon.ico", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	select {
	case code := <-codes:
		t.Fatalf("unexpected code from favicon request: %q", code)
	default:
	}
}

func TestWaitForAuthCodeReceivesCallback(t *testing.T) {
	const port = 18723
	cfg := oauthConfig(&Credentials{ClientID: "12345", ClientSecret: "s3cr3t"}, port)

	// Play the part of the redirected browser once the listener is up.
	go func() {
		url := fmt.Sprintf("http://localhost:%d/?code=test-code", port)
		for i := 0; i < 100; i++ {
			resp, err := http.Get(url)
			if err == nil {
				resp.Body.Close()
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	code, err := waitForAuthCode(cfg, port, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "test-code", code)
}

func TestWaitForAuthCodeTimesOut(t *testing.T) {
	const port = 18724
	cfg := oauthConfig(&Credentials{ClientID: "12345", ClientSecret: "s3cr3t"}, port)

	_, err := waitForAuthCode(cfg, port, 100*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestWaitForAuthCodePortInUse(t *testing.T) {
	const port = 18725
	l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	require.NoError(t, err)
	defer l.Close()

	cfg := oauthConfig(&Credentials{ClientID: "12345", ClientSecret: "s3cr3t"}, port)
	_, err = waitForAuthCode(cfg, port, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback listener")
}
