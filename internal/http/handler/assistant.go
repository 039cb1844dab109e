package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/http/dto"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

type AssistantHandler struct {
	demo      service.DemoService
	directory service.DirectoryService
}

func NewAssistantHandler(demo service.DemoService, directory service.DirectoryService) *AssistantHandler {
	return &AssistantHandler{
		demo:      demo,
		directory: directory,
	}
}

// Create provisions a new company demo assistant.
func (h *AssistantHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: companyName, contactName and contactEmail are required"})
		return
	}

	result, err := h.demo.Provision(ctx, req.ToProvisionRequest())
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			slog.ErrorContext(ctx, "directory store unavailable during provisioning", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "directory store unavailable"})
			return
		}
		slog.ErrorContext(ctx, "failed to provision demo", "error", err, "company_name", req.CompanyName)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create assistant"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreateAssistantResponse(result))
}

// Lookup returns the assistant mapped to a company slug.
func (h *AssistantHandler) Lookup(c *gin.Context) {
	ctx := c.Request.Context()

	slug := c.Query("company")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company slug is required"})
		return
	}

	company, err := h.directory.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no assistant found for this company"})
			return
		}
		slog.ErrorContext(ctx, "failed to resolve company", "error", err, "company_slug", slug)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "directory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.LookupAssistantResponse{
		AssistantID: company.AssistantID,
		Slug:        company.Slug,
	})
}

// Delete removes a company's slug mapping.
func (h *AssistantHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	slug := c.Query("company")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company slug is required"})
		return
	}

	removed, err := h.demo.Teardown(ctx, slug)
	if err != nil {
		slog.ErrorContext(ctx, "failed to remove company", "error", err, "company_slug", slug)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "directory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.DeleteAssistantResponse{
		Removed: removed,
		Slug:    slug,
	})
}

// List returns all registered company slugs. Diagnostic use only.
func (h *AssistantHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	slugs, err := h.directory.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list companies", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "directory store unavailable"})
		return
	}
	if slugs == nil {
		slugs = []string{}
	}

	c.JSON(http.StatusOK, dto.ListAssistantsResponse{Companies: slugs})
}
