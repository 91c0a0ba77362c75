package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"exchange-rates/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, upstreamBody string, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, upstreamBody)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("EXCHANGE_RATES_BASE_URL", srv.URL)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRatesCmd(t *testing.T) {
	out, err := runCLI(t, `{"rates":{"USD":1.1,"GBP":0.9}}`, "rates", "--symbols", "USD,GBP")
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":1.1,"GBP":0.9}`, out)
}

func TestRatesCmd_InvalidRange(t *testing.T) {
	_, err := runCLI(t, `{}`, "rates", "--from", "2021-01-02", "--to", "2021-01-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrInvalidDateOrder)
}

func TestAverageCmd(t *testing.T) {
	body := `{"rates":{"2021-01-01":{"USD":1.0,"GBP":0.8},"2021-01-02":{"USD":1.2}}}`

	out, err := runCLI(t, body, "average", "--from", "2021-01-01", "--to", "2021-01-02")
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":1.1,"GBP":0.8}`, out)

	out, err = runCLI(t, body, "average", "--from", "2021-01-01", "--to", "2021-01-02", "--places", "0")
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":1,"GBP":1}`, out)
}

func TestConvertCmd(t *testing.T) {
	out, err := runCLI(t, `{"base":"EUR","rates":{"JPY":130.5}}`, "convert", "100", "--base", "EUR", "--to", "jpy")
	require.NoError(t, err)
	assert.Equal(t, "100.00 EUR = 13050 JPY\n", out)
}

func TestConvertCmd_BadAmount(t *testing.T) {
	_, err := runCLI(t, `{}`, "convert", "ten", "--to", "USD")
	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)
}
