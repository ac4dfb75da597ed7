package balldontlie

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/resilience"
	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

const (
	defaultBaseURL = "https://api.balldontlie.io"
	pageSize       = 100
	maxBodyBytes   = 6 << 20

	SportBasketball       = "basketball"
	SportAmericanFootball = "american_football"
)

var ErrUnsupportedSport = crerr.New("unsupported sport")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	// RequestDelay spaces every request made by the client.
	RequestDelay time.Duration
	Logger       *logging.Logger
}

// Client reads NBA and NFL games from balldontlie. Both leagues share the
// same payload shape and cursor pagination.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retry      resilience.RetryPolicy
	pacer      *resilience.Pacer
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		retry:      resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0)},
		pacer:      resilience.NewPacer(cfg.RequestDelay),
		logger:     logger,
	}
}

// FetchResults returns every game played on the given dates (YYYY-MM-DD).
func (c *Client) FetchResults(ctx context.Context, sport string, dates []string) ([]usecase.ExternalGame, error) {
	path, err := gamesPath(sport)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, date := range dates {
		query.Add("dates[]", date)
	}
	return c.collect(ctx, path, query, nil)
}

// FetchSeason pages through a whole season, waiting pageDelay between pages.
// A failing page stops pagination; the games read so far are returned with
// the error.
func (c *Client) FetchSeason(ctx context.Context, sport string, season int, pageDelay time.Duration) ([]usecase.ExternalGame, error) {
	path, err := gamesPath(sport)
	if err != nil {
		return nil, err
	}
	if season <= 0 {
		return nil, crerr.Newf("season must be greater than zero, got %d", season)
	}

	query := url.Values{}
	query.Set("seasons[]", strconv.Itoa(season))
	return c.collect(ctx, path, query, resilience.NewPacer(pageDelay))
}

func (c *Client) collect(ctx context.Context, path string, query url.Values, pacer *resilience.Pacer) ([]usecase.ExternalGame, error) {
	out := make([]usecase.ExternalGame, 0, pageSize)
	var cursor int64
	for page := 1; ; page++ {
		if err := pacer.Wait(ctx); err != nil {
			return out, err
		}

		pageQuery := cloneValues(query)
		pageQuery.Set("per_page", strconv.Itoa(pageSize))
		if cursor > 0 {
			pageQuery.Set("cursor", strconv.FormatInt(cursor, 10))
		}

		var body gamesEnvelope
		if err := c.doJSON(ctx, path, pageQuery, &body); err != nil {
			return out, crerr.Wrapf(err, "fetch %s page=%d", path, page)
		}
		for _, item := range body.Data {
			out = append(out, item.toExternal())
		}

		c.logger.DebugContext(ctx, "balldontlie page fetched",
			"path", path,
			"page", page,
			"games", len(body.Data),
		)
		if body.Meta.NextCursor == nil || *body.Meta.NextCursor <= 0 || *body.Meta.NextCursor == cursor {
			return out, nil
		}
		cursor = *body.Meta.NextCursor
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return err
	}

	var raw []byte
	err := resilience.Retry(ctx, c.retry, func(attempt int) error {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil {
			if resilience.IsTransient(reqErr) {
				c.logger.WarnContext(ctx, "balldontlie request failed, retrying",
					"path", path,
					"attempt", attempt+1,
					"error", reqErr,
				)
			}
			return reqErr
		}
		raw = body
		return nil
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, resilience.MarkTransient(crerr.Newf("send request: %s", c.redact(err.Error())))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resilience.MarkTransient(crerr.Wrap(err, "read response body"))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	statusErr := crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	if isRetryableStatus(resp.StatusCode) {
		return nil, resilience.MarkTransient(statusErr)
	}
	return nil, statusErr
}

func (c *Client) redact(value string) string {
	if c.token == "" {
		return value
	}
	return strings.ReplaceAll(value, c.token, "REDACTED")
}

func gamesPath(sport string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(sport)) {
	case SportBasketball:
		return "/v1/games", nil
	case SportAmericanFootball:
		return "/nfl/v1/games", nil
	default:
		return "", crerr.Wrapf(ErrUnsupportedSport, "sport %q", sport)
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values)+2)
	for key, items := range values {
		out[key] = append([]string(nil), items...)
	}
	return out
}
