package store

import (
	"context"
	"errors"

	"solarbookers.com/relay/internal/model"
)

var (
	// ErrNotFound signals a normal negative lookup: the slug has no
	// directory entry. Never returned for connectivity problems.
	ErrNotFound = errors.New("company not found")

	// ErrUnavailable signals the backing store could not be reached.
	// Lookup failures of this kind must never be masked as ErrNotFound.
	ErrUnavailable = errors.New("directory store unavailable")
)

// CompanyStore is the durable slug → assistant directory. The store is
// the source of truth for demo provisioning; writes are single atomic
// key overwrites (last write wins) and no transactions are needed.
type CompanyStore interface {
	// Put stores or overwrites the entry for company.Slug.
	Put(ctx context.Context, company *model.Company) error
	// Get returns the entry for slug, or ErrNotFound.
	Get(ctx context.Context, slug string) (*model.Company, error)
	// Delete removes the entry if present and reports whether anything
	// was removed.
	Delete(ctx context.Context, slug string) (bool, error)
	// ListSlugs returns all mapped slugs. Diagnostic use only.
	ListSlugs(ctx context.Context) ([]string, error)
	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error
}
