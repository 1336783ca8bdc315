// Package ghclient implements the GitHub-backed activity data source.
//
// It talks to the REST search API the same way the rest of the tool treats
// time: every instant is normalized to UTC. Responses are cached through
// the configured cache store keyed by a request digest, so repeated runs
// over the same window do not re-fetch.
package ghclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"golang.org/x/oauth2"
)

const (
	searchPageSize = 100
	// cacheVersion is bumped whenever the cached payload shape changes.
	cacheVersion = 1
)

// Client fetches activity records from the GitHub REST API.
type Client struct {
	http      *http.Client
	apiURL    string
	userAgent string
	cache     contract.CacheStore
	cacheTTL  time.Duration
	now       func() time.Time
}

var _ contract.ActivityDataSource = (*Client)(nil) // Compile-time check

// Option customizes a Client.
type Option func(*Client)

// WithCache attaches a fetch cache with the given entry lifetime.
func WithCache(store contract.CacheStore, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client authenticated with the given token.
func New(token, apiURL, userAgent string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &Client{
		http:      oauth2.NewClient(context.Background(), src),
		apiURL:    strings.TrimRight(apiURL, "/"),
		userAgent: userAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User returns the subject's profile.
func (c *Client) User(ctx context.Context, username string) (schema.UserProfile, error) {
	var raw struct {
		Login       string    `json:"login"`
		Name        string    `json:"name"`
		AvatarURL   string    `json:"avatar_url"`
		HTMLURL     string    `json:"html_url"`
		PublicRepos int       `json:"public_repos"`
		Followers   int       `json:"followers"`
		Following   int       `json:"following"`
		CreatedAt   time.Time `json:"created_at"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.apiURL, url.PathEscape(username)), &raw); err != nil {
		return schema.UserProfile{}, fmt.Errorf("fetching user %s: %w", username, err)
	}
	return schema.UserProfile{
		Login:       raw.Login,
		Name:        raw.Name,
		AvatarURL:   raw.AvatarURL,
		HTMLURL:     raw.HTMLURL,
		PublicRepos: raw.PublicRepos,
		Followers:   raw.Followers,
		Following:   raw.Following,
		CreatedAt:   raw.CreatedAt.UTC(),
	}, nil
}

// Records returns the raw records of one event kind for the subject,
// consulting the fetch cache first.
func (c *Client) Records(ctx context.Context, username string, kind schema.EventKind, opts contract.QueryOptions) ([]schema.RawRecord, error) {
	key := c.cacheKey(username, kind, opts)
	if records, ok := c.cacheGet(key); ok {
		return records, nil
	}

	var records []schema.RawRecord
	var err error
	switch kind {
	case schema.CommitEvent:
		records, err = c.fetchCommits(ctx, username, opts)
	case schema.PullRequestEvent:
		records, err = c.fetchIssueLike(ctx, username, opts, true)
	case schema.IssueEvent:
		records, err = c.fetchIssueLike(ctx, username, opts, false)
	case schema.ReviewEvent:
		records, err = c.fetchReviews(ctx, username, opts)
	default:
		return nil, fmt.Errorf("unsupported event kind: %s", kind)
	}
	if err != nil {
		return nil, err
	}

	c.cacheSet(key, records)
	return records, nil
}

// commitSearchItem is the slice of the commit search response we consume.
type commitSearchItem struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	HTMLURL    string `json:"html_url"`
	Repository struct {
		FullName string `json:"full_name"`
		Owner    struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// fetchCommits searches commits authored by the subject, then pulls each
// commit's detail for the additions/deletions stats. A detail fetch that
// fails degrades that commit to zero line counts rather than failing the
// whole window.
func (c *Client) fetchCommits(ctx context.Context, username string, opts contract.QueryOptions) ([]schema.RawRecord, error) {
	q := fmt.Sprintf("author:%s committer-date:%s..%s", username, opts.Since.UTC().Format("2006-01-02"), opts.Until.UTC().Format("2006-01-02"))
	q = applyRepoQualifiers(q, username, opts)

	var items []commitSearchItem
	if err := c.searchAll(ctx, "/search/commits", q, "", &items); err != nil {
		return nil, fmt.Errorf("fetching commits for %s: %w", username, err)
	}

	records := make([]schema.RawRecord, 0, len(items))
	for _, item := range items {
		add, del := c.commitStats(ctx, item.Repository.FullName, item.SHA)
		records = append(records, schema.RawRecord{
			Timestamp:    item.Commit.Author.Date,
			Repository:   item.Repository.FullName,
			Title:        firstLine(item.Commit.Message),
			URL:          item.HTMLURL,
			Additions:    add,
			Deletions:    del,
			OwnedByActor: strings.EqualFold(item.Repository.Owner.Login, username),
		})
	}
	return records, nil
}

// issueSearchItem is the slice of the issue search response we consume.
type issueSearchItem struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	State         string `json:"state"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
}

// fetchIssueLike searches issues or pull requests created by the subject.
func (c *Client) fetchIssueLike(ctx context.Context, username string, opts contract.QueryOptions, pullRequests bool) ([]schema.RawRecord, error) {
	typeQualifier := "is:issue"
	if pullRequests {
		typeQualifier = "is:pr"
	}
	q := fmt.Sprintf("author:%s %s created:%s..%s", username, typeQualifier, opts.Since.UTC().Format("2006-01-02"), opts.Until.UTC().Format("2006-01-02"))
	q = applyRepoQualifiers(q, username, opts)

	var items []issueSearchItem
	if err := c.searchAll(ctx, "/search/issues", q, "created", &items); err != nil {
		return nil, fmt.Errorf("fetching %s for %s: %w", typeQualifier, username, err)
	}

	records := make([]schema.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, schema.RawRecord{
			Timestamp:    item.CreatedAt,
			Repository:   repoFromAPIURL(item.RepositoryURL),
			Title:        item.Title,
			State:        item.State,
			URL:          item.HTMLURL,
			OwnedByActor: strings.EqualFold(ownerFromAPIURL(item.RepositoryURL), username),
		})
	}
	return records, nil
}

// fetchReviews searches pull requests reviewed by the subject. The search
// API only exposes updated_at for reviewed PRs, so review events carry that
// instant.
func (c *Client) fetchReviews(ctx context.Context, username string, opts contract.QueryOptions) ([]schema.RawRecord, error) {
	q := fmt.Sprintf("reviewed-by:%s is:pr updated:%s..%s", username, opts.Since.UTC().Format("2006-01-02"), opts.Until.UTC().Format("2006-01-02"))
	q = applyRepoQualifiers(q, username, opts)

	var items []issueSearchItem
	if err := c.searchAll(ctx, "/search/issues", q, "", &items); err != nil {
		return nil, fmt.Errorf("fetching reviews for %s: %w", username, err)
	}

	records := make([]schema.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, schema.RawRecord{
			Timestamp:    item.UpdatedAt,
			Repository:   repoFromAPIURL(item.RepositoryURL),
			Title:        item.Title,
			State:        item.State,
			URL:          item.HTMLURL,
			OwnedByActor: strings.EqualFold(ownerFromAPIURL(item.RepositoryURL), username),
		})
	}
	return records, nil
}

// commitStats fetches additions/deletions for one commit. Failures degrade
// to zero counts; a missing stat must not abort the aggregation run.
func (c *Client) commitStats(ctx context.Context, repo, sha string) (int, int) {
	if repo == "" || sha == "" {
		return 0, 0
	}
	var raw struct {
		Stats struct {
			Additions int `json:"additions"`
			Deletions int `json:"deletions"`
		} `json:"stats"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/commits/%s", c.apiURL, repo, sha), &raw); err != nil {
		return 0, 0
	}
	return raw.Stats.Additions, raw.Stats.Deletions
}

// searchAll walks every page of a search endpoint and appends items.
func (c *Client) searchAll(ctx context.Context, path, query, sortBy string, items any) error {
	// items is *[]T; decode page by page into a raw message list first.
	collected := make([]json.RawMessage, 0, searchPageSize)
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("q", query)
		params.Set("per_page", fmt.Sprint(searchPageSize))
		params.Set("page", fmt.Sprint(page))
		if sortBy != "" {
			params.Set("sort", sortBy)
			params.Set("order", "desc")
		}

		var body struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := c.getJSON(ctx, c.apiURL+path+"?"+params.Encode(), &body); err != nil {
			return err
		}
		collected = append(collected, body.Items...)
		if len(body.Items) < searchPageSize {
			break
		}
	}

	joined, err := json.Marshal(collected)
	if err != nil {
		return err
	}
	return json.Unmarshal(joined, items)
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", rawURL, resp.Status, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// cacheKey derives a stable digest for one fetch request.
func (c *Client) cacheKey(username string, kind schema.EventKind, opts contract.QueryOptions) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%t",
		username, kind,
		opts.Since.UTC().Format("2006-01-02"), opts.Until.UTC().Format("2006-01-02"),
		opts.Repository, opts.ExcludePersonal)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// cacheGet returns a cached record list if present, version-compatible and
// within the TTL.
func (c *Client) cacheGet(key string) ([]schema.RawRecord, bool) {
	if c.cache == nil {
		return nil, false
	}
	value, version, ts, err := c.cache.Get(key)
	if err != nil || version != cacheVersion {
		return nil, false
	}
	if c.cacheTTL > 0 && c.now().UTC().Sub(time.Unix(ts, 0)) > c.cacheTTL {
		return nil, false
	}
	var records []schema.RawRecord
	if err := json.Unmarshal(value, &records); err != nil {
		return nil, false
	}
	return records, true
}

// cacheSet stores a fetched record list; cache failures are non-fatal.
func (c *Client) cacheSet(key string, records []schema.RawRecord) {
	if c.cache == nil {
		return
	}
	value, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.cache.Set(key, value, cacheVersion, c.now().UTC().Unix()); err != nil {
		contract.LogWarn("could not write fetch cache", err)
	}
}

// applyRepoQualifiers appends the repository filter or the personal-repo
// exclusion to a search query. The two are mutually exclusive; an explicit
// repository filter wins.
func applyRepoQualifiers(q, username string, opts contract.QueryOptions) string {
	if opts.Repository != "" {
		return q + " repo:" + opts.Repository
	}
	if opts.ExcludePersonal {
		return q + " -user:" + username
	}
	return q
}

// repoFromAPIURL extracts "owner/name" from an API repository URL like
// https://api.github.com/repos/owner/name.
func repoFromAPIURL(apiURL string) string {
	parts := strings.Split(strings.TrimRight(apiURL, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

// ownerFromAPIURL extracts the owner segment from an API repository URL.
func ownerFromAPIURL(apiURL string) string {
	parts := strings.Split(strings.TrimRight(apiURL, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// firstLine returns the first line of a commit message, for recent-item
// display.
func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
