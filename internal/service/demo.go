package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"solarbookers.com/relay/common"
	"solarbookers.com/relay/common/id"
	"solarbookers.com/relay/common/logger"
	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/model"
	"solarbookers.com/relay/internal/persona"
)

// ProvisionRequest carries the prospect and branding data a new company
// demo is built from.
type ProvisionRequest struct {
	CompanyName  string
	ContactName  string
	ContactEmail string
	Location     string
	Title        string
	Industry     string
	Description  string
	ServiceType  string
	Website      string
}

// ProvisionResult is everything the caller needs to share the demo.
type ProvisionResult struct {
	AssistantID  string
	Slug         string
	DemoURL      string
	CalendarLink string
}

// DemoService provisions and tears down company demos.
type DemoService interface {
	// Provision creates the persona assistant upstream, registers the
	// slug mapping, and returns the shareable demo links.
	Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
	// Teardown removes the slug mapping. The upstream assistant is left
	// in place so live threads keep working; it reports whether a
	// mapping existed.
	Teardown(ctx context.Context, slug string) (bool, error)
}

type demoService struct {
	api             assistant.Client
	directory       DirectoryService
	demoBaseURL     string
	calendarBaseURL string
}

func NewDemoService(api assistant.Client, directory DirectoryService, demoBaseURL, calendarBaseURL string) DemoService {
	return &demoService{
		api:             api,
		directory:       directory,
		demoBaseURL:     demoBaseURL,
		calendarBaseURL: calendarBaseURL,
	}
}

func (s *demoService) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	slug := common.CompanySlug(req.CompanyName)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		CompanySlug: logger.Ptr(slug),
		Component:   "relay.demo",
	})

	calendarLink := fmt.Sprintf("%s/%s", s.calendarBaseURL, slug)
	profile := persona.Profile{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		Title:        req.Title,
		Location:     req.Location,
		Industry:     req.Industry,
		Description:  req.Description,
		Website:      req.Website,
		ServiceType:  req.ServiceType,
		CalendarLink: calendarLink,
	}

	assistantID, err := s.api.CreateAssistant(ctx, assistant.CreateAssistantRequest{
		Name:         persona.AssistantName(profile),
		Instructions: persona.Instructions(profile, time.Now()),
	})
	if err != nil {
		return nil, fmt.Errorf("provisioning demo for %s: %w", slug, err)
	}

	company := &model.Company{
		ID:           id.New(),
		Slug:         slug,
		AssistantID:  assistantID,
		Name:         req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.directory.Register(ctx, company); err != nil {
		// The directory is the source of truth: an unreachable demo is
		// worse than no demo, so undo the upstream assistant instead of
		// returning links that will 404.
		if delErr := s.api.DeleteAssistant(ctx, assistantID); delErr != nil {
			slog.WarnContext(ctx, "failed to clean up assistant after registration failure",
				"assistant_id", assistantID, "error", delErr)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "demo provisioned",
		"assistant_id", assistantID,
		"company_name", req.CompanyName,
	)

	return &ProvisionResult{
		AssistantID:  assistantID,
		Slug:         slug,
		DemoURL:      fmt.Sprintf("%s/%s", s.demoBaseURL, slug),
		CalendarLink: calendarLink,
	}, nil
}

func (s *demoService) Teardown(ctx context.Context, slug string) (bool, error) {
	return s.directory.Remove(ctx, slug)
}
