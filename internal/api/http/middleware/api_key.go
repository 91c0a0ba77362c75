package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"exchange-rates/internal"
)

const APIKeyHeader = "X-API-Key"

const (
	CodeAPIKeyMissing internal.ErrorCode = "api_key_missing"
	CodeAPIKeyInvalid internal.ErrorCode = "invalid_api_key"
	CodeAPIKeyRevoked internal.ErrorCode = "api_key_revoked"
	CodeAPIKeyExpired internal.ErrorCode = "api_key_expired"
	codeInternal      internal.ErrorCode = "internal_error"
)

type KeyChecker interface {
	Check(ctx context.Context, rawKey string) (internal.APIKeyStatus, error)
}

func APIKeyAuth(checker KeyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" {
				writeErr(w, http.StatusUnauthorized, CodeAPIKeyMissing, "missing "+APIKeyHeader)
				return
			}

			status, err := checker.Check(r.Context(), key)
			if err != nil {
				writeErr(w, http.StatusInternalServerError, codeInternal, "internal error")
				return
			}

			switch status {
			case internal.APIKeyActive:
				next.ServeHTTP(w, r)
			case internal.APIKeyRevoked:
				writeErr(w, http.StatusForbidden, CodeAPIKeyRevoked, "api key is revoked")
			case internal.APIKeyExpired:
				writeErr(w, http.StatusForbidden, CodeAPIKeyExpired, "api key is expired")
			default:
				writeErr(w, http.StatusUnauthorized, CodeAPIKeyInvalid, "invalid api key")
			}
		})
	}
}

func writeErr(w http.ResponseWriter, status int, code internal.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(internal.Error{Code: code, Message: msg})
}
