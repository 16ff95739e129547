package curseforge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packdiff/pkg/integrations"
	"github.com/matzehuels/packdiff/pkg/modpack"
)

const (
	// DefaultBaseURL is the current CurseForge site.
	DefaultBaseURL = "https://www.curseforge.com/minecraft/mc-mods"
	// DefaultLegacyURL is the legacy site, which addresses projects as "p{id}".
	DefaultLegacyURL = "https://legacy.curseforge.com/minecraft/mc-mods"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration // Per-request timeout (default: integrations.DefaultTimeout)
	UserAgent string        // Browser User-Agent (default: integrations.DefaultUserAgent)
	BaseURL   string        // Current site root (default: DefaultBaseURL)
	LegacyURL string        // Legacy site root (default: DefaultLegacyURL)
	Logger    *log.Logger   // Receives per-candidate failures at debug level
}

// Client scrapes CurseForge project and file pages.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL   string
	legacyURL string
	logger    *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.LegacyURL == "" {
		opts.LegacyURL = DefaultLegacyURL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Client{
		Client:    integrations.NewClient(opts.Timeout, integrations.BrowserHeaders(opts.UserAgent)),
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		legacyURL: strings.TrimRight(opts.LegacyURL, "/"),
		logger:    opts.Logger,
	}
}

// ProjectURLs returns the candidate pages for a project, in the order they
// are tried.
func (c *Client) ProjectURLs(projectID int) []string {
	return []string{
		fmt.Sprintf("%s/%d", c.baseURL, projectID),
		fmt.Sprintf("%s/p%d", c.legacyURL, projectID),
	}
}

// FileURLs returns the candidate pages for a file, in the order they are
// tried.
func (c *Client) FileURLs(key modpack.FileKey) []string {
	projects := c.ProjectURLs(key.ProjectID)
	urls := make([]string, len(projects))
	for i, u := range projects {
		urls[i] = fmt.Sprintf("%s/files/%d", u, key.FileID)
	}
	return urls
}

// FetchProject looks up the display name of a project. If no candidate
// page can be read, the result is a placeholder named "Project-{id}"
// pointing at the first candidate. The only error is ctx's own, returned
// once ctx ends before a name was found.
func (c *Client) FetchProject(ctx context.Context, projectID int) (ProjectInfo, error) {
	urls := c.ProjectURLs(projectID)
	name, url, err := c.scrape(ctx, urls, ProjectSelectors, ProjectLabel(projectID))
	if err != nil {
		return ProjectInfo{}, err
	}
	return ProjectInfo{ID: projectID, Name: name, URL: url}, nil
}

// FetchFile looks up the display name of a file. Like FetchProject it
// falls back to a placeholder named "File-{id}" and fails only on ctx.
func (c *Client) FetchFile(ctx context.Context, key modpack.FileKey) (FileInfo, error) {
	urls := c.FileURLs(key)
	name, url, err := c.scrape(ctx, urls, FileSelectors, FileLabel(key.FileID))
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{ID: key.FileID, FileName: name, DisplayName: name, URL: url}, nil
}

// scrape returns the extracted name and the URL it came from. A readable
// page without a matching selector yields label and that page's URL; no
// readable page yields label and urls[0]. A cancelled ctx is reported
// instead of a placeholder.
func (c *Client) scrape(ctx context.Context, urls []string, selectors []Selector, label string) (string, string, error) {
	for _, u := range urls {
		page, err := c.GetText(ctx, u)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", "", ctxErr
			}
			c.logger.Debug("candidate failed", "url", u, "err", err)
			continue
		}
		if text, ok := ExtractText(page, selectors); ok {
			return text, u, nil
		}
		return label, u, nil
	}
	c.logger.Debug("all candidates failed", "label", label)
	return label, urls[0], nil
}
