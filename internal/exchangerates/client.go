package exchangerates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"exchange-rates/internal"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.exchangeratesapi.io"

	maxBodyBytes = 4 << 20
)

type RatesStorage interface {
	UpsertRatesMap(ctx context.Context, base internal.CurrencyCode, asOfDate internal.Date, rates map[internal.CurrencyCode]decimal.Decimal) error
}

// Client talks to an exchangeratesapi.io compatible endpoint. One Client may
// be shared by concurrent callers; each call builds its own request from the
// Query it is given.
type Client struct {
	BaseURL    string
	accessKey  string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.BaseURL = u } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithLogger(l logrus.FieldLogger) Option { return func(c *Client) { c.log = l } }

func New(accessKey string, opts ...Option) *Client {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Client{
		BaseURL:    DefaultBaseURL,
		accessKey:  accessKey,
		httpClient: &http.Client{},
		log:        quiet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL renders the request URL for q without sending anything.
func (c *Client) URL(q *internal.Query) (string, error) {
	return q.URL(c.BaseURL, c.accessKey)
}

func (c *Client) do(ctx context.Context, q *internal.Query) (internal.RatesPayload, error) {
	u, err := c.URL(q)
	if err != nil {
		return internal.RatesPayload{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Wrap(err, "new request"))
	}
	req.Header.Set("Accept", "application/json")

	c.log.WithFields(logrus.Fields{
		"path":    req.URL.Path,
		"base":    q.Base(),
		"symbols": q.Symbols(),
	}).Debug("requesting rates")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Wrap(err, "do request"))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Wrap(err, "read response body"))
	}

	c.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("rates response")

	if resp.StatusCode != http.StatusOK {
		return internal.RatesPayload{}, internal.FetchFailed(
			internal.BadResponse(resp.StatusCode, responseDetail(body)))
	}

	return decodePayload(body)
}

// Fetch runs q and returns the shaped rates: a bare number when exactly one
// rate came back, the full mapping otherwise.
func (c *Client) Fetch(ctx context.Context, q *internal.Query) (internal.Rates, error) {
	p, err := c.do(ctx, q)
	if err != nil {
		return internal.Rates{}, err
	}
	return p.Shape(), nil
}

// Average returns the per-currency mean over a history request. Non-history
// requests are returned as Fetch would. A nil decimalPlaces keeps full precision.
func (c *Client) Average(ctx context.Context, q *internal.Query, decimalPlaces *int) (internal.Rates, error) {
	if err := internal.CheckDecimalPlaces(decimalPlaces); err != nil {
		return internal.Rates{}, err
	}

	p, err := c.do(ctx, q)
	if err != nil {
		return internal.Rates{}, err
	}
	if !q.IsHistory() || p.Series == nil {
		return p.Shape(), nil
	}
	return internal.AverageSeries(p.Series, decimalPlaces)
}

// Convert multiplies amount by the single rate q resolves to. q must name
// exactly one symbol and a single day.
func (c *Client) Convert(ctx context.Context, q *internal.Query, amount decimal.Decimal) (decimal.Decimal, error) {
	if n := len(q.Symbols()); n != 1 {
		return decimal.Decimal{}, internal.InvalidArgument("conversion needs exactly one target currency, got %d", n)
	}
	if q.IsHistory() {
		return decimal.Decimal{}, internal.InvalidArgument("conversion needs a single date, not a range")
	}

	rates, err := c.Fetch(ctx, q)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, ok := rates.Float()
	if !ok {
		return decimal.Decimal{}, internal.FetchFailed(fmt.Errorf("expected one rate for %s, got %d", q.Symbols()[0], len(rates.Codes)))
	}
	return amount.Mul(decimal.NewFromFloat(rate)), nil
}

// LatestRates returns the raw latest payload for base and symbols, without collapsing.
func (c *Client) LatestRates(ctx context.Context, base internal.CurrencyCode, symbols []internal.CurrencyCode) (*internal.RatesPayload, error) {
	var q internal.Query
	if base != "" {
		if err := q.SetBase(base.String()); err != nil {
			return nil, err
		}
	}
	if len(symbols) > 0 {
		codes := make([]string, len(symbols))
		for i, s := range symbols {
			codes[i] = s.String()
		}
		if err := q.SetSymbols(codes...); err != nil {
			return nil, err
		}
	}

	p, err := c.do(ctx, &q)
	if err != nil {
		return nil, err
	}
	if p.Codes == nil {
		return nil, internal.FetchFailed(errors.New("latest response carries a rate series"))
	}
	return &p, nil
}

func (c *Client) FetchAndSaveLatest(
	ctx context.Context,
	storage RatesStorage,
	base internal.CurrencyCode,
	symbols []internal.CurrencyCode,
) (*internal.RatesPayload, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := c.LatestRates(reqCtx, base, symbols)
	if err != nil {
		return nil, fmt.Errorf("latest rates: %w", err)
	}

	baseCCY, err := internal.NewCurrencyCode(resp.Base)
	if err != nil {
		return nil, fmt.Errorf("invalid base %q: %w", resp.Base, err)
	}
	asOf, err := internal.ParseDate(resp.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", resp.Date, err)
	}

	typedRates := make(map[internal.CurrencyCode]decimal.Decimal, len(resp.Codes))
	for quoteStr, rate := range resp.Codes {
		quote, err := internal.NewCurrencyCode(quoteStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quote %q: %w", quoteStr, err)
		}
		typedRates[quote] = decimal.NewFromFloat(rate)
	}

	if err := storage.UpsertRatesMap(reqCtx, baseCCY, asOf, typedRates); err != nil {
		return nil, fmt.Errorf("save rates: %w", err)
	}

	return resp, nil
}
