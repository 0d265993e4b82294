package githubrelease

import (
	"context"
	"fmt"
	"net/http"

	ghApi "github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"

	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
)

// NetworkError means the latest release could not be fetched or understood.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client struct {
	GitHub *ghApi.Client
}

// NewHTTPClient returns an oauth2 client when a token is set, nil otherwise
// so go-github falls back to its default client.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return nil
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(ctx, ts)
}

func NewClient(ctx context.Context, token string) *Client {
	return &Client{
		GitHub: ghApi.NewClient(NewHTTPClient(ctx, token)),
	}
}

// LatestRelease fetches the latest published release of the app in a single
// attempt. Any failure is returned as a *NetworkError.
func (c *Client) LatestRelease(ctx context.Context, app models.AppSpec) (*models.Release, error) {
	url := c.GitHub.BaseURL.String() + fmt.Sprintf("repos/%s/%s/releases/latest", app.Owner, app.Repo)
	log.G(ctx).Debugf("Fetching latest release: %s", url)

	release, resp, err := c.GitHub.Repositories.GetLatestRelease(ctx, app.Owner, app.Repo)
	if err != nil {
		netErr := &NetworkError{URL: url, Err: err}
		if resp != nil {
			netErr.StatusCode = resp.StatusCode
		}
		return nil, netErr
	}

	tag := release.GetTagName()
	if tag == "" {
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("release without tag_name")}
	}

	return &models.Release{
		Tag:         tag,
		Version:     models.NormalizeVersion(tag),
		Name:        release.GetName(),
		HTMLURL:     release.GetHTMLURL(),
		PublishedAt: release.GetPublishedAt().Time,
	}, nil
}
