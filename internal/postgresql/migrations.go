package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Migrations struct {
	pool *pgxpool.Pool
}

func NewMigrations(pool *pgxpool.Pool) *Migrations {
	return &Migrations{pool: pool}
}

// Setup creates the service tables when they are missing. It is safe to run on every start.
func (m *Migrations) Setup(ctx context.Context) error {
	steps := []struct {
		table string
		ddl   string
	}{
		{"currency_rate", currencyRateDDL},
		{"request_log", requestLogDDL},
		{"api_keys", apiKeysDDL},
	}
	for _, s := range steps {
		if _, err := m.pool.Exec(ctx, s.ddl); err != nil {
			return fmt.Errorf("ensure table %s: %w", s.table, err)
		}
	}
	return nil
}

const currencyRateDDL = `
create table if not exists currency_rate (
  base_ccy   char(3) not null,
  quote_ccy  char(3) not null,
  as_of_date date not null,
  rate       numeric(20, 10) not null,
  fetched_at timestamptz not null default now(),
  primary key (base_ccy, quote_ccy)
);

create index if not exists idx_currency_rate_lookup
  on currency_rate (base_ccy, quote_ccy, as_of_date desc);
`

const requestLogDDL = `
create table if not exists request_log (
  id          bigserial primary key,
  path        text not null,
  status      integer,
  date_as_of  date,
  error_code  text,
  created_at  timestamptz not null default now()
);

create index if not exists idx_request_log_path_created_at
  on request_log (path, created_at desc);
`

const apiKeysDDL = `
create table if not exists api_keys (
  key_hash   text primary key,
  is_active  boolean not null default true,
  expires_at timestamptz,
  created_at timestamptz not null default now()
);
`
