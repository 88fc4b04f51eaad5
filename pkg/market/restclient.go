package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// RESTClient talks to the private asset and ticker routes of one exchange.
// It keeps the session cookie issued by Login in its own jar.
type RESTClient struct {
	baseURL    string
	exchange   string
	httpClient *http.Client
}

func NewRESTClient(baseURL, exchange string, timeout time.Duration) *RESTClient {
	// cookiejar.New only fails on a non-nil PublicSuffixList
	jar, _ := cookiejar.New(nil)
	return &RESTClient{
		baseURL:  baseURL,
		exchange: exchange,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *RESTClient) Exchange() string {
	return c.exchange
}

// Login establishes a session through POST /session.
func (c *RESTClient) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}

	var env Envelope
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/session", body, &env); err != nil {
		return err
	}
	if env.Status != StatusSuccess {
		return fmt.Errorf("%w: login: %s", ErrUpstreamRequestFailed, env.Result)
	}
	return nil
}

// GetAssets fetches every asset priced in base.
func (c *RESTClient) GetAssets(ctx context.Context, base string) ([]Asset, error) {
	var assets []Asset
	if err := c.do(ctx, http.MethodGet, c.assetsURL(base), nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetTickers fetches the latest tickers for base keyed by vcType.
func (c *RESTClient) GetTickers(ctx context.Context, base string) (map[string]Ticker, error) {
	endpoint := fmt.Sprintf("%s/private/markets/%s/tickers/%s",
		c.baseURL, url.PathEscape(c.exchange), url.PathEscape(base))

	tickers := make(map[string]Ticker)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// CreateAsset stores a new asset under its base.
func (c *RESTClient) CreateAsset(ctx context.Context, asset Asset) (*Asset, error) {
	var created Asset
	if err := c.do(ctx, http.MethodPost, c.assetsURL(asset.Base), asset, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAsset removes one asset and returns the removed record.
func (c *RESTClient) DeleteAsset(ctx context.Context, base, vcType, id string) (*Asset, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.assetsURL(base), url.PathEscape(vcType), url.PathEscape(id))

	var removed Asset
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, &removed); err != nil {
		return nil, err
	}
	return &removed, nil
}

// MergeAssets asks the server to fold ids into a single base/vcType record.
func (c *RESTClient) MergeAssets(ctx context.Context, base, vcType string, ids []string) (*Asset, error) {
	endpoint := fmt.Sprintf("%s/%s?mode=%s", c.assetsURL(base), url.PathEscape(vcType), MergeMode)

	var merged Asset
	if err := c.do(ctx, http.MethodPut, endpoint, ids, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (c *RESTClient) assetsURL(base string) string {
	return fmt.Sprintf("%s/private/markets/%s/assets/%s",
		c.baseURL, url.PathEscape(c.exchange), url.PathEscape(base))
}

// do sends payload as JSON (when non-nil) and decodes a 2xx body into out.
// Every failure is wrapped with ErrUpstreamRequestFailed.
func (c *RESTClient) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrUpstreamRequestFailed, err)
		}
		body = bytes.NewReader(buf)
	}

	// Construct the request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", ErrUpstreamRequestFailed, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstreamRequestFailed, method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s: status %d: %s",
			ErrUpstreamRequestFailed, method, endpoint, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstreamRequestFailed, err)
	}
	return nil
}
