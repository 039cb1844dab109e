package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"solarbookers.com/relay/internal/model"
)

const defaultModel = "gpt-4o"

type openaiClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a Client backed by the OpenAI Assistants API.
func NewOpenAIClient(cfg Config) Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &openaiClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *openaiClient) CreateAssistant(ctx context.Context, req CreateAssistantRequest) (string, error) {
	start := time.Now()
	created, err := c.client.Beta.Assistants.New(ctx, openai.BetaAssistantNewParams{
		Model:        shared.ChatModel(c.model),
		Name:         openai.String(req.Name),
		Instructions: openai.String(req.Instructions),
		Tools: []openai.AssistantToolUnionParam{
			{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating assistant: %w", err)
	}

	slog.DebugContext(ctx, "assistant created",
		"assistant_id", created.ID,
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds())

	return created.ID, nil
}

func (c *openaiClient) DeleteAssistant(ctx context.Context, assistantID string) error {
	if _, err := c.client.Beta.Assistants.Delete(ctx, assistantID); err != nil {
		return fmt.Errorf("deleting assistant %s: %w", assistantID, err)
	}
	return nil
}

func (c *openaiClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("creating thread: %w", err)
	}
	return thread.ID, nil
}

func (c *openaiClient) AddUserMessage(ctx context.Context, threadID, text string) error {
	_, err := c.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return fmt.Errorf("adding message to thread %s: %w", threadID, err)
	}
	return nil
}

func (c *openaiClient) CreateRun(ctx context.Context, threadID, assistantID string) (*model.Run, error) {
	run, err := c.client.Beta.Threads.Runs.New(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating run on thread %s: %w", threadID, err)
	}
	return toRun(run), nil
}

func (c *openaiClient) GetRun(ctx context.Context, threadID, runID string) (*model.Run, error) {
	run, err := c.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, fmt.Errorf("fetching run %s on thread %s: %w", runID, threadID, err)
	}
	return toRun(run), nil
}

func (c *openaiClient) LatestAssistantReply(ctx context.Context, threadID string, after time.Time) (string, error) {
	page, err := c.client.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
		Limit: openai.Int(20),
	})
	if err != nil {
		return "", fmt.Errorf("listing messages on thread %s: %w", threadID, err)
	}

	for _, msg := range page.Data {
		if msg.Role != "assistant" {
			continue
		}
		if time.Unix(int64(msg.CreatedAt), 0).Before(after) {
			// Older than the run: a stale reply from a prior turn.
			continue
		}
		for _, part := range msg.Content {
			if part.Type == "text" {
				return part.Text.Value, nil
			}
		}
		return "", ErrNonTextReply
	}

	return "", ErrNoReply
}

func toRun(run *openai.Run) *model.Run {
	out := &model.Run{
		ID:        run.ID,
		ThreadID:  run.ThreadID,
		Status:    model.RunStatus(run.Status),
		CreatedAt: time.Unix(int64(run.CreatedAt), 0),
	}
	if run.LastError.Message != "" {
		out.LastError = fmt.Sprintf("%s: %s", run.LastError.Code, run.LastError.Message)
	}
	return out
}
