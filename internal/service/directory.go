package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"solarbookers.com/relay/internal/model"
	"solarbookers.com/relay/internal/store"
)

// DirectoryService owns the slug → assistant mapping. The backing store
// is authoritative: nothing is cached in-process, so any instance
// behind a load balancer resolves the same directory.
type DirectoryService interface {
	// Resolve returns the directory entry for slug, or ErrCompanyNotFound.
	Resolve(ctx context.Context, slug string) (*model.Company, error)
	// Register stores or overwrites the entry for company.Slug.
	Register(ctx context.Context, company *model.Company) error
	// Remove deletes the entry and reports whether one existed.
	Remove(ctx context.Context, slug string) (bool, error)
	// List returns all registered slugs. Diagnostic use only.
	List(ctx context.Context) ([]string, error)
}

type directoryService struct {
	companies store.CompanyStore
}

func NewDirectoryService(companies store.CompanyStore) DirectoryService {
	return &directoryService{companies: companies}
}

func (s *directoryService) Resolve(ctx context.Context, slug string) (*model.Company, error) {
	company, err := s.companies.Get(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", slug, err)
	}
	return company, nil
}

func (s *directoryService) Register(ctx context.Context, company *model.Company) error {
	if err := s.companies.Put(ctx, company); err != nil {
		return fmt.Errorf("registering %s: %w", company.Slug, err)
	}

	slog.InfoContext(ctx, "company registered",
		"company_slug", company.Slug,
		"assistant_id", company.AssistantID,
	)
	return nil
}

func (s *directoryService) Remove(ctx context.Context, slug string) (bool, error) {
	removed, err := s.companies.Delete(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", slug, err)
	}
	if removed {
		slog.InfoContext(ctx, "company removed", "company_slug", slug)
	}
	return removed, nil
}

func (s *directoryService) List(ctx context.Context) ([]string, error) {
	slugs, err := s.companies.ListSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return slugs, nil
}
