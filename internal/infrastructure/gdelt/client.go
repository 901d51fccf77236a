package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/domain"
	"github.com/geoecon/newsradar/internal/ports"
)

// chunkSize bounds the keywords per request; larger groups push GDELT past
// its effective query complexity limit and time out.
const chunkSize = 2

const defaultSource = "gdelt"

// rawArticle mirrors the provider item shape, including the alternate field
// names seen across format variations.
type rawArticle struct {
	Title       string `json:"title"`
	TitlePlain  string `json:"titleplain"`
	URL         string `json:"url"`
	URLAPI      string `json:"urlapi"`
	Snippet     string `json:"snippet"`
	Description string `json:"description"`
	SeenDate    string `json:"seendate"`
	PublishDate string `json:"publishdate"`
	PubDate     string `json:"pubDate"`
	Domain      string `json:"domain"`
	Source      string `json:"source"`
}

// response tolerates both top-level key names the provider has used.
type response struct {
	Articles []rawArticle `json:"articles"`
	ArtList  []rawArticle `json:"artlist"`
}

// Client fetches and normalizes article lists from the GDELT doc API. One
// HTTP GET is issued per keyword chunk; a failed chunk is logged and skipped
// so a single upstream hiccup never aborts the whole fetch.
type Client struct {
	cfg      config.ProviderConfig
	keywords []string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets the configured timeout.
func NewClient(cfg config.ProviderConfig, keywords []string, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, keywords: keywords, client: client, logger: logger}
}

// FetchAll queries every keyword chunk and returns the records deduplicated
// by URL, first occurrence winning. An empty result is a valid outcome.
func (c *Client) FetchAll(ctx context.Context) ([]domain.NormalizedRecord, error) {
	var records []domain.NormalizedRecord
	seen := map[string]struct{}{}

	for _, chunk := range chunkKeywords(c.keywords, chunkSize) {
		chunkRecords, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			c.warn("chunk fetch failed", "keywords", chunk, "error", err)
			continue
		}

		for _, record := range chunkRecords {
			if _, ok := seen[record.URL]; ok {
				continue
			}
			seen[record.URL] = struct{}{}
			records = append(records, record)
		}
	}

	return records, nil
}

func (c *Client) fetchChunk(ctx context.Context, keywords []string) ([]domain.NormalizedRecord, error) {
	endpoint, err := c.buildChunkURL(keywords)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request chunk: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gdelt returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}

	rawList := parsed.Articles
	if len(rawList) == 0 {
		rawList = parsed.ArtList
	}

	records := make([]domain.NormalizedRecord, 0, len(rawList))
	for _, raw := range rawList {
		records = append(records, normalize(raw))
	}
	return records, nil
}

func (c *Client) buildChunkURL(keywords []string) (string, error) {
	parsed, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", c.cfg.BaseURL, err)
	}

	query := parsed.Query()
	query.Set("query", BuildQuery(keywords))
	query.Set("mode", "artlist")
	query.Set("format", "json")
	query.Set("maxrecords", strconv.Itoa(c.cfg.MaxRecords))
	if !c.cfg.LanguageAll() {
		query.Set("sourcelang", c.cfg.Language)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// normalize maps a raw item onto the fixed record shape. All five fields are
// always present; missing values collapse to empty strings.
func normalize(raw rawArticle) domain.NormalizedRecord {
	return domain.NormalizedRecord{
		Title:          firstNonEmpty(raw.Title, raw.TitlePlain),
		URL:            firstNonEmpty(raw.URL, raw.URLAPI),
		Snippet:        firstNonEmpty(raw.Snippet, raw.Description),
		PublishedAtRaw: firstNonEmpty(raw.SeenDate, raw.PublishDate, raw.PubDate),
		Source:         firstNonEmpty(raw.Domain, raw.Source, defaultSource),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
