package intelligence

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/llm"
)

// Gateway turns project data into model prompts. Its operations never fail:
// every error is logged and replaced with a fixed fallback text.
type Gateway interface {
	// ProjectInsights summarizes progress across the whole collection.
	ProjectInsights(ctx context.Context, projects []*domain.Project) string

	// ProjectPreview suggests first steps for a project that is not saved yet.
	ProjectPreview(ctx context.Context, name, owner string, status domain.ProjectStatus) string
}

// Sampling temperatures are fixed per operation.
const (
	InsightsTemperature = 0.7
	PreviewTemperature  = 0.8
)

type gateway struct {
	client llm.Client
	logger *slog.Logger
}

// NewGateway creates a Gateway backed by an LLM client.
func NewGateway(client llm.Client, logger *slog.Logger) Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &gateway{client: client, logger: logger}
}

func (g *gateway) ProjectInsights(ctx context.Context, projects []*domain.Project) string {
	if len(projects) == 0 {
		return InsightsEmptyCollection
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:        llm.TaskInsights,
		Prompt:      buildInsightsPrompt(projects),
		Temperature: InsightsTemperature,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "project insights failed", "error", err, "projects", len(projects))
		return InsightsError
	}
	if resp.Text == "" {
		return InsightsEmptyResponse
	}
	return resp.Text
}

func (g *gateway) ProjectPreview(ctx context.Context, name, owner string, status domain.ProjectStatus) string {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:        llm.TaskPreview,
		Prompt:      buildPreviewPrompt(name, owner, status),
		Temperature: PreviewTemperature,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "project preview failed", "error", err)
		return PreviewError
	}
	if resp.Text == "" {
		return PreviewEmptyResponse
	}
	return resp.Text
}
