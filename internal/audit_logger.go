package internal

import (
	"context"
	"fmt"
	"strings"
)

// RequestRecord is one served API request as written to the audit log.
type RequestRecord struct {
	Path      string
	Status    int
	AsOf      *Date
	ErrorCode ErrorCode
}

type RequestAuditLogger interface {
	LogRequest(ctx context.Context, rec RequestRecord) error
}

type AuditLogStorage interface {
	Insert(ctx context.Context, rec RequestRecord) error
}

func NewStorageAuditLogger(storage AuditLogStorage) *StorageAuditLogger {
	return &StorageAuditLogger{auditLogStorage: storage}
}

type StorageAuditLogger struct {
	auditLogStorage AuditLogStorage
}

func (l *StorageAuditLogger) LogRequest(ctx context.Context, rec RequestRecord) error {
	p := strings.TrimSpace(rec.Path)
	p = strings.Trim(p, "/")
	if p == "" {
		p = "unknown"
	}
	rec.Path = p
	if rec.AsOf != nil && rec.AsOf.IsZero() {
		rec.AsOf = nil
	}

	if err := l.auditLogStorage.Insert(ctx, rec); err != nil {
		return fmt.Errorf("audit %s: %w", p, err)
	}
	return nil
}
