package rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"exchange-rates/internal"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PairRater interface {
	GetPairRate(ctx context.Context, base, quote internal.CurrencyCode) (internal.PairRate, error)
}

type RatesClient interface {
	Fetch(ctx context.Context, q *internal.Query) (internal.Rates, error)
	Average(ctx context.Context, q *internal.Query, decimalPlaces *int) (internal.Rates, error)
	Convert(ctx context.Context, q *internal.Query, amount decimal.Decimal) (decimal.Decimal, error)
}

type Handler struct {
	pairs  PairRater
	client RatesClient
	audit  internal.RequestAuditLogger
	log    logrus.FieldLogger
}

func New(pairs PairRater, client RatesClient, audit internal.RequestAuditLogger, log logrus.FieldLogger) *Handler {
	return &Handler{pairs: pairs, client: client, audit: audit, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/rate", h.getRate)
	mux.HandleFunc("/api/v1/rates", h.getRates)
	mux.HandleFunc("/api/v1/average", h.getAverage)
	mux.HandleFunc("/api/v1/convert", h.getConvert)
}

type ratesResponse struct {
	Rates internal.Rates `json:"rates"`
}

type averageResponse struct {
	Average internal.Rates `json:"average"`
}

type convertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}

func (h *Handler) getRate(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	base, err := internal.NewCurrencyCode(r.URL.Query().Get("base"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	quote, err := internal.NewCurrencyCode(r.URL.Query().Get("quote"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.pairs.GetPairRate(r.Context(), base, quote)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, out, out.Date)
}

func (h *Handler) getRates(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	q, err := queryFromValues(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := h.client.Fetch(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, ratesResponse{Rates: out}, dayOf(q))
}

func (h *Handler) getAverage(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	q, err := queryFromValues(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var places *int
	if raw := strings.TrimSpace(r.URL.Query().Get("places")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, internal.InvalidArgument("places must be an integer, got %q", raw))
			return
		}
		places = &n
	}

	out, err := h.client.Average(r.Context(), q, places)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, averageResponse{Average: out}, dayOf(q))
}

func (h *Handler) getConvert(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	q, err := queryFromValues(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("amount"))
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		h.fail(w, r, internal.InvalidArgument("amount must be a number, got %q", raw))
		return
	}

	out, err := h.client.Convert(r.Context(), q, amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, convertResponse{Amount: amount, Result: out}, dayOf(q))
}

// queryFromValues builds a query from base, symbols, at, from and to. at
// accepts "latest"; a range starting at "latest" is rejected.
func queryFromValues(v url.Values) (*internal.Query, error) {
	var q internal.Query

	if base := strings.TrimSpace(v.Get("base")); base != "" {
		if err := q.SetBase(base); err != nil {
			return nil, err
		}
	}

	var symbols []string
	for _, raw := range v["symbols"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	if len(symbols) > 0 {
		if err := q.SetSymbols(symbols...); err != nil {
			return nil, err
		}
	}

	if at := strings.TrimSpace(v.Get("at")); at != "" {
		if strings.EqualFold(at, "latest") {
			q.SetLatest()
		} else {
			d, err := internal.ParseDate(at)
			if err != nil {
				return nil, err
			}
			q.SetAt(d)
		}
	}
	if from := strings.TrimSpace(v.Get("from")); from != "" {
		if strings.EqualFold(from, "latest") {
			return nil, &internal.Error{Code: internal.CodeInvalidDateRange, Message: "date range cannot start at latest"}
		}
		d, err := internal.ParseDate(from)
		if err != nil {
			return nil, err
		}
		q.SetFrom(d)
	}
	if to := strings.TrimSpace(v.Get("to")); to != "" {
		d, err := internal.ParseDate(to)
		if err != nil {
			return nil, err
		}
		q.SetTo(d)
	}

	return &q, nil
}

func dayOf(q *internal.Query) *internal.Date {
	if d, ok := q.Day(); ok {
		return &d
	}
	return nil
}

func (h *Handler) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.WriteHeader(http.StatusMethodNotAllowed)
	h.record(r, internal.RequestRecord{Status: http.StatusMethodNotAllowed})
	return false
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, body any, asOf *internal.Date) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).WithField("path", r.URL.Path).Warn("encode response")
	}
	h.record(r, internal.RequestRecord{Status: http.StatusOK, AsOf: asOf})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)

	h.record(r, internal.RequestRecord{Status: status, ErrorCode: body.Code})
}

func (h *Handler) record(r *http.Request, rec internal.RequestRecord) {
	rec.Path = r.URL.Path
	if err := h.audit.LogRequest(r.Context(), rec); err != nil {
		h.log.WithError(err).WithField("path", rec.Path).Warn("audit log write failed")
	}
}

func errorResponse(err error) (int, *internal.Error) {
	if errors.Is(err, internal.ErrRateNotAvailable) {
		return http.StatusNotFound, &internal.Error{Code: "rate_not_available", Message: err.Error()}
	}

	var e *internal.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, &internal.Error{Code: "internal_error", Message: "internal error"}
	}
	if internal.IsValidationError(e) {
		return http.StatusBadRequest, e
	}
	if e.Code == internal.CodeBadResponse || e.Code == internal.CodeFetchFailed {
		return http.StatusBadGateway, e
	}
	return http.StatusInternalServerError, e
}
