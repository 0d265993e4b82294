package notify

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofish-bot/hostkeeper/log"
)

const PushoverEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover sends one-shot messages through the Pushover API. Delivery is
// best effort: failures are logged and never returned.
type Pushover struct {
	Endpoint string
	Token    string
	User     string
	Title    string
	Client   *http.Client
}

func NewPushover(token, user, title string) *Pushover {
	return &Pushover{
		Endpoint: PushoverEndpoint,
		Token:    token,
		User:     user,
		Title:    title,
		Client:   http.DefaultClient,
	}
}

// Enabled reports whether both credentials are set.
func (p *Pushover) Enabled() bool {
	return p.Token != "" && p.User != ""
}

// Notify posts message and reports whether Pushover accepted it.
func (p *Pushover) Notify(ctx context.Context, message string) bool {
	if !p.Enabled() {
		log.G(ctx).Warn("Notification skipped: NOTIFICATION_TOKEN and NOTIFICATION_USER must both be set")
		return false
	}

	form := url.Values{}
	form.Set("token", p.Token)
	form.Set("user", p.User)
	form.Set("message", message)
	if p.Title != "" {
		form.Set("title", p.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.G(ctx).Errorf("notification send error: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.G(ctx).Errorf("notification send error: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(ioutil.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.G(ctx).Errorf("notification send error: %s", resp.Status)
		return false
	}
	log.G(ctx).Info("successfully send notification")
	return true
}
