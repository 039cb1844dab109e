package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"solarbookers.com/relay/internal/model"
)

const companyKeyPrefix = "company:"

type redisCompanyStore struct {
	client *redis.Client
}

// NewCompanyStore returns a CompanyStore backed by Redis. Entries live
// under "company:<slug>" as JSON documents.
func NewCompanyStore(client *redis.Client) CompanyStore {
	return &redisCompanyStore{client: client}
}

func companyKey(slug string) string {
	return companyKeyPrefix + slug
}

func (s *redisCompanyStore) Put(ctx context.Context, company *model.Company) error {
	payload, err := json.Marshal(company)
	if err != nil {
		return fmt.Errorf("encoding company %s: %w", company.Slug, err)
	}

	if err := s.client.Set(ctx, companyKey(company.Slug), payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: storing %s: %v", ErrUnavailable, company.Slug, err)
	}

	slog.DebugContext(ctx, "company mapping stored", "company_slug", company.Slug, "assistant_id", company.AssistantID)
	return nil
}

func (s *redisCompanyStore) Get(ctx context.Context, slug string) (*model.Company, error) {
	payload, err := s.client.Get(ctx, companyKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrUnavailable, slug, err)
	}

	return decodeCompany(slug, payload)
}

func decodeCompany(slug string, payload []byte) (*model.Company, error) {
	var company model.Company
	if err := json.Unmarshal(payload, &company); err != nil {
		// Early deployments stored just the assistant ID instead of a
		// JSON document; tolerate those entries on read.
		if assistantID, ok := legacyAssistantID(payload); ok {
			return &model.Company{Slug: slug, AssistantID: assistantID}, nil
		}
		return nil, fmt.Errorf("decoding company %s: %w", slug, err)
	}
	return &company, nil
}

// legacyAssistantID interprets pre-JSON directory values: the bare
// assistant ID, or its JSON-encoded string form when the writing
// client serialized the value.
func legacyAssistantID(payload []byte) (string, bool) {
	var id string
	if err := json.Unmarshal(payload, &id); err == nil {
		id = strings.TrimSpace(id)
		return id, id != ""
	}
	raw := strings.TrimSpace(string(payload))
	if raw == "" || strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		return "", false
	}
	return raw, true
}

func (s *redisCompanyStore) Delete(ctx context.Context, slug string) (bool, error) {
	removed, err := s.client.Del(ctx, companyKey(slug)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: deleting %s: %v", ErrUnavailable, slug, err)
	}
	return removed > 0, nil
}

func (s *redisCompanyStore) ListSlugs(ctx context.Context) ([]string, error) {
	var (
		slugs  []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, companyKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: scanning companies: %v", ErrUnavailable, err)
		}
		for _, key := range keys {
			slugs = append(slugs, strings.TrimPrefix(key, companyKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return slugs, nil
}

func (s *redisCompanyStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
