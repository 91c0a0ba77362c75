package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exchange-rates/internal"
	"exchange-rates/internal/postgresql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type keyStore interface {
	Insert(ctx context.Context, hash string, expiresAt *time.Time) error
	Revoke(ctx context.Context, hash string) (bool, error)
}

func keysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Issue and revoke API keys",
	}

	var ttl time.Duration
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Create a key and print it once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKeyStore(cmd.Context(), a, func(store keyStore) error {
				raw, expiresAt, err := issueKey(cmd.Context(), store, a.cfg.EncodingKey, ttl, time.Now())
				if err != nil {
					return err
				}
				if expiresAt != nil {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (expires %s)\n", raw, expiresAt.Format(time.RFC3339))
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
				return err
			})
		},
	}
	issue.Flags().DurationVar(&ttl, "ttl", 0, "Key lifetime, never expires when zero")

	revoke := &cobra.Command{
		Use:   "revoke KEY",
		Short: "Deactivate a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKeyStore(cmd.Context(), a, func(store keyStore) error {
				return revokeKey(cmd.Context(), store, a.cfg.EncodingKey, args[0])
			})
		},
	}

	cmd.AddCommand(issue, revoke)
	return cmd
}

func withKeyStore(ctx context.Context, a *app, fn func(keyStore) error) error {
	if err := a.cfg.ValidateDatabase(); err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgresql.NewMigrations(pool).Setup(ctx); err != nil {
		return fmt.Errorf("ensure tables: %w", err)
	}
	return fn(postgresql.NewAPIKeyStorage(pool))
}

func issueKey(ctx context.Context, store keyStore, encodingKey string, ttl time.Duration, now time.Time) (string, *time.Time, error) {
	if ttl < 0 {
		return "", nil, internal.InvalidArgument("ttl must not be negative, got %s", ttl)
	}

	raw := "er_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl).UTC()
		expiresAt = &t
	}

	if err := store.Insert(ctx, internal.HashAPIKey(raw, encodingKey), expiresAt); err != nil {
		return "", nil, err
	}
	return raw, expiresAt, nil
}

func revokeKey(ctx context.Context, store keyStore, encodingKey, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return internal.InvalidArgument("key is empty")
	}

	found, err := store.Revoke(ctx, internal.HashAPIKey(raw, encodingKey))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("key not found")
	}
	return nil
}
