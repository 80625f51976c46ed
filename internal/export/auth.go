package export

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Authenticator signs the user in to Google with the drive.file scope and
// caches the token on disk. Sign-in is interactive: the consent URL is
// written to out and the authorization code is read from in.
type Authenticator struct {
	config    *oauth2.Config
	tokenFile string
	in        io.Reader
	out       io.Writer
}

func NewAuthenticatorFromFile(credentialsFile, tokenFile string, in io.Reader, out io.Writer) (*Authenticator, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("google.ConfigFromJSON: %w", err)
	}

	return NewAuthenticator(cfg, tokenFile, in, out), nil
}

func NewAuthenticator(cfg *oauth2.Config, tokenFile string, in io.Reader, out io.Writer) *Authenticator {
	return &Authenticator{
		config:    cfg,
		tokenFile: tokenFile,
		in:        in,
		out:       out,
	}
}

// IsSignedIn reports whether a usable cached token exists.
func (a *Authenticator) IsSignedIn() bool {
	tok, err := a.loadToken()
	return err == nil && usable(tok)
}

// TokenSource returns a source for the cached token, domain.ErrNotSignedIn
// when there is none.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := a.loadToken()
	if err != nil {
		return nil, err
	}
	if !usable(tok) {
		return nil, domain.ErrNotSignedIn
	}
	return a.config.TokenSource(ctx, tok), nil
}

// EnsureSignedIn returns the cached token source or runs SignIn first.
func (a *Authenticator) EnsureSignedIn(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := a.TokenSource(ctx)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, domain.ErrNotSignedIn) {
		return nil, err
	}

	if err := a.SignIn(ctx); err != nil {
		return nil, err
	}
	return a.TokenSource(ctx)
}

// SignIn blocks until the user pastes the authorization code or ctx is done.
func (a *Authenticator) SignIn(ctx context.Context) error {
	state, err := randomState()
	if err != nil {
		return err
	}

	url := a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "Open the following link in your browser and sign in:\n\n  %s\n\nPaste the authorization code: ", url)

	code, err := a.readCode(ctx)
	if err != nil {
		return err
	}

	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("config.Exchange: %w", err)
	}

	return a.saveToken(tok)
}

func (a *Authenticator) readCode(ctx context.Context) (string, error) {
	type result struct {
		code string
		err  error
	}
	ch := make(chan result, 1)

	// A read cannot be interrupted: on cancellation this goroutine lives
	// until in yields a line or is closed.
	go func() {
		scanner := bufio.NewScanner(a.in)
		if scanner.Scan() {
			ch <- result{code: strings.TrimSpace(scanner.Text())}
			return
		}
		err := scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		ch <- result{err: fmt.Errorf("read authorization code: %w", err)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", r.err
		}
		if r.code == "" {
			return "", fmt.Errorf("authorization code is empty")
		}
		return r.code, nil
	}
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotSignedIn
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		// a broken cache only means signing in again
		return nil, domain.ErrNotSignedIn
	}
	return &tok, nil
}

func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0o700); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	if err := os.WriteFile(a.tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}

func usable(tok *oauth2.Token) bool {
	return tok != nil && (tok.Valid() || tok.RefreshToken != "")
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
