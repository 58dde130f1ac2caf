package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/openfunnel/mailtriage/config"
)

func oauthConfig(cfg *config.MailboxConfig) (*oauth2.Config, error) {
	b, err := os.ReadFile(cfg.GmailCredentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read client secret file")
	}
	oc, err := google.ConfigFromJSON(b, gmail.GmailModifyScope)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse client secret file to config")
	}
	return oc, nil
}

// oauthClient builds an HTTP client from the persisted token. A missing or
// unreadable token is an error; authorization is a separate, explicit step.
func oauthClient(ctx context.Context, cfg *config.MailboxConfig) (*http.Client, error) {
	oc, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(cfg.GmailTokenFile)
	if err != nil {
		return nil, errors.Wrapf(err, "no usable token in %s, run the auth command first", cfg.GmailTokenFile)
	}

	return oc.Client(ctx, tok), nil
}

// Authorize runs the one-time interactive consent flow and persists the
// resulting token for the server to pick up.
func Authorize(ctx context.Context, cfg *config.MailboxConfig) error {
	oc, err := oauthConfig(cfg)
	if err != nil {
		return err
	}

	authURL := oc.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return errors.Wrap(err, "unable to read authorization code")
	}

	tok, err := oc.Exchange(ctx, authCode)
	if err != nil {
		return errors.Wrap(err, "unable to retrieve token from web")
	}

	return saveToken(cfg.GmailTokenFile, tok)
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "unable to save oauth token")
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
