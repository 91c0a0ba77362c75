package postgresql

import (
	"context"
	"fmt"
	"time"

	"exchange-rates/internal"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestLogStorage struct {
	pgpool *pgxpool.Pool
}

func NewRequestLogStorage(pgpool *pgxpool.Pool) *RequestLogStorage {
	return &RequestLogStorage{pgpool: pgpool}
}

func (s *RequestLogStorage) Insert(ctx context.Context, rec internal.RequestRecord) error {
	var asOf *time.Time
	if rec.AsOf != nil && !rec.AsOf.IsZero() {
		t := rec.AsOf.Time
		asOf = &t
	}

	var errCode *string
	if rec.ErrorCode != "" {
		c := string(rec.ErrorCode)
		errCode = &c
	}

	_, err := s.pgpool.Exec(ctx, `
insert into request_log (path, status, date_as_of, error_code)
values ($1, $2, $3::date, $4);
`, rec.Path, rec.Status, asOf, errCode)
	if err != nil {
		return fmt.Errorf("insert request_log: %w", err)
	}
	return nil
}
