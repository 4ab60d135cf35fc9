// ABOUTME: One-shot OAuth handshake against Strava.
// ABOUTME: Opens the browser, captures the callback code on a short-lived local listener, exchanges it for a token.

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	successPage = "<html><body>Authentication successful! You can close this window.</body></html>"
	failurePage = "<html><body>Authentication failed. Please try again.</body></html>"
)

func oauthConfig(creds *Credentials, port int) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoints.Strava,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/", port),
		Scopes:       []string{"activity:read_all"},
	}
}

// authenticate runs the browser authorization handshake and exchanges
// the resulting code for an access/refresh token pair. The token lives
// in memory for this run only.
func authenticate(creds *Credentials, port int, timeout time.Duration) (*oauth2.Token, error) {
	cfg := oauthConfig(creds, port)

	code, err := waitForAuthCode(cfg, port, timeout)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	return token, nil
}

// waitForAuthCode serves the redirect URI until one callback arrives or
// the timeout elapses. Exactly one code is ever consumed.
func waitForAuthCode(cfg *oauth2.Config, port int, timeout time.Duration) (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return "", fmt.Errorf("callback listener on port %d: %w", port, err)
	}

	codes := make(chan string, 1)
	server := &http.Server{Handler: callbackHandler(codes)}
	go func() {
		// Serve returns ErrServerClosed after Shutdown.
		_ = server.Serve(listener)
	}()

	authURL := cfg.AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "force"))
	if err := browser.OpenURL(authURL); err != nil {
		fmt.Fprintf(os.Stderr, "Could not open a browser; visit this URL to authorize:\n%s\n", authURL)
	}

	var code string
	var waitErr error
	select {
	case code = <-codes:
		if code == "" {
			waitErr = fmt.Errorf("authorization callback did not include a code")
		}
	case <-time.After(timeout):
		waitErr = fmt.Errorf("timed out after %s waiting for the authorization callback", timeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	return code, waitErr
}

// callbackHandler answers the OAuth redirect with a static HTML page
// and hands the code query parameter over the channel. Requests off
// the redirect path (favicons mostly) are ignored so they cannot race
// out the real callback.
func callbackHandler(codes chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		code := r.URL.Query().Get("code")

		w.Header().Set("Content-Type", "text/html")
		if code != "" {
			fmt.Fprint(w, successPage)
		} else {
			fmt.Fprint(w, failurePage)
		}

		select {
		case codes <- code:
		default:
		}
	}
}
