package footballdata

import (
	"context"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://api.football-data.org/v4"
	maxBodyBytes   = 6 << 20
)

var ErrInvalidPayload = crerr.New("football-data payload is not valid json")

type ClientConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client fetches raw competition payloads from football-data.org. Bodies are
// returned untouched so they can be cached as-is.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	token   string
	timeout time.Duration
	retry   resilience.RetryPolicy
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "agenda-fc",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		},
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		retry:   resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0)},
		logger:  logger,
	}
}

func (c *Client) FetchStandings(ctx context.Context, code string) ([]byte, error) {
	return c.get(ctx, "/competitions/"+url.PathEscape(strings.TrimSpace(code))+"/standings", nil)
}

func (c *Client) FetchScheduledMatches(ctx context.Context, code string) ([]byte, error) {
	query := url.Values{}
	query.Set("status", "SCHEDULED")
	return c.get(ctx, "/competitions/"+url.PathEscape(strings.TrimSpace(code))+"/matches", query)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := resilience.Retry(ctx, c.retry, func(attempt int) error {
		body, reqErr := c.execute(ctx, fullURL)
		if reqErr != nil {
			if resilience.IsTransient(reqErr) {
				c.logger.WarnContext(ctx, "football-data request failed",
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
		return nil, crerr.Wrapf(err, "fetch %s", path)
	}
	if !sonic.Valid(raw) {
		return nil, crerr.Wrapf(ErrInvalidPayload, "fetch %s", path)
	}
	return raw, nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Auth-Token", c.token)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, resilience.MarkTransient(crerr.Wrap(err, "send request"))
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return body, nil
	}

	statusErr := crerr.Newf("provider status=%d body=%s", status, abbreviateBody(body))
	if status == fasthttp.StatusTooManyRequests || status >= 500 {
		return nil, resilience.MarkTransient(statusErr)
	}
	return nil, statusErr
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
