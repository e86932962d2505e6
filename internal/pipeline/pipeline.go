// Package pipeline provides the high-level orchestration for the content
// generation process: retrieval, context design, and generation.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-assistant/internal/cache"
	"github.com/jonathan/seo-assistant/internal/db"
	"github.com/jonathan/seo-assistant/internal/design"
	"github.com/jonathan/seo-assistant/internal/generation"
	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/retrieval"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Artifact step names used for persistence.
const (
	StepContext = "retrieval_context"
	StepBrief   = "content_brief"
	StepArticle = "article"
)

// ProgressEvent represents a progress update during pipeline execution.
type ProgressEvent struct {
	Step     string  `json:"step"`
	Message  string  `json:"message"`
	Fraction float64 `json:"fraction"`
	RunID    string  `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for constructing a pipeline.
type Options struct {
	CacheCapacity int
	CacheTTL      time.Duration
	MaxRetries    int
	Retrieval     retrieval.Options
	Database      *db.DB // optional; artifacts persist when set
	OnProgress    ProgressCallback
}

// Pipeline wires the three phases together behind keyword-level operations.
// A single shared cache backs all retrievals, so repeated keywords are served
// without consulting the knowledge source again.
type Pipeline struct {
	retriever  *retrieval.Retriever
	generator  *generation.Generator
	cache      *cache.ContextCache
	database   *db.DB
	onProgress ProgressCallback
}

// New assembles a pipeline over the given model client and knowledge source.
// The designer runs as the retriever's finalize hook so every context is
// fully scored before it enters the shared cache; cached contexts are never
// written again.
func New(client llm.Client, source retrieval.Source, opts Options) *Pipeline {
	contextCache := cache.New(opts.CacheCapacity, opts.CacheTTL)
	designer := design.NewDesigner()

	retrievalOpts := opts.Retrieval
	retrievalOpts.Finalize = func(rc *types.RetrievalContext) {
		designer.Design(rc)
	}

	return &Pipeline{
		retriever:  retrieval.New(source, contextCache, retrievalOpts),
		generator:  generation.NewGenerator(client, opts.MaxRetries),
		cache:      contextCache,
		database:   opts.Database,
		onProgress: opts.OnProgress,
	}
}

// Cache exposes the shared context cache, mainly for tests and stats.
func (p *Pipeline) Cache() *cache.ContextCache {
	return p.cache
}

func (p *Pipeline) emit(runID uuid.UUID, step, message string, fraction float64) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{
			Step:     step,
			Message:  message,
			Fraction: fraction,
			RunID:    runID.String(),
		})
	}
}

// Run statuses recorded in generation_runs.
const (
	runCompleted = "completed"
	runFailed    = "failed"
)

// beginRun records the start of a run when a database is configured, or
// mints a local ID otherwise. Persistence is best effort and never fails
// the pipeline.
func (p *Pipeline) beginRun(ctx context.Context, keyword, goal, operation string) uuid.UUID {
	if p.database == nil {
		return uuid.New()
	}
	runID, err := p.database.CreateRun(ctx, types.NormalizeKeyword(keyword), goal, operation)
	if err != nil {
		log.Printf("Warning: failed to record run start: %v", err)
		return uuid.New()
	}
	return runID
}

// finishRun marks a run completed or failed when a database is configured.
func (p *Pipeline) finishRun(ctx context.Context, runID uuid.UUID, status string) {
	if p.database == nil {
		return
	}
	if err := p.database.CompleteRun(ctx, runID, status); err != nil {
		log.Printf("Warning: failed to record run completion: %v", err)
	}
}

// saveArtifact persists a step output when a database is configured.
func (p *Pipeline) saveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) {
	if p.database == nil {
		return
	}
	if err := p.database.SaveArtifact(ctx, runID, step, content); err != nil {
		log.Printf("Warning: failed to persist %s artifact: %v", step, err)
	}
}

func validateKeyword(keyword string) error {
	if types.NormalizeKeyword(keyword) == "" {
		return &ValidationError{Field: "keyword", Message: "must not be empty"}
	}
	return nil
}

// AnalyzeKeyword runs retrieval and context design for a keyword.
func (p *Pipeline) AnalyzeKeyword(ctx context.Context, keyword, goal string) (*types.RetrievalContext, error) {
	if err := validateKeyword(keyword); err != nil {
		return nil, err
	}
	runID := p.beginRun(ctx, keyword, goal, "analyze")

	p.emit(runID, StepContext, "retrieving knowledge for "+types.NormalizeKeyword(keyword), 0.2)
	rc, err := p.retriever.Retrieve(ctx, keyword, goal)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	p.emit(runID, StepContext, "context designed", 1.0)
	p.saveArtifact(ctx, runID, StepContext, rc)
	p.finishRun(ctx, runID, runCompleted)
	return rc, nil
}

// BriefFromContext generates a brief from an already designed context.
// Staged callers (the task manager) use this to report progress per phase.
func (p *Pipeline) BriefFromContext(ctx context.Context, rc *types.RetrievalContext) (*types.ContentBrief, error) {
	return p.generator.Brief(ctx, rc)
}

// ArticleFromBrief writes the full article for an existing brief.
func (p *Pipeline) ArticleFromBrief(ctx context.Context, brief *types.ContentBrief) (*types.Article, error) {
	return p.generator.ArticleFromBrief(ctx, brief)
}

// GenerateBrief analyzes a keyword and produces a content brief for it.
func (p *Pipeline) GenerateBrief(ctx context.Context, keyword, goal string) (*types.ContentBrief, error) {
	if err := validateKeyword(keyword); err != nil {
		return nil, err
	}
	runID := p.beginRun(ctx, keyword, goal, "brief")

	p.emit(runID, StepContext, "retrieving knowledge", 0.2)
	rc, err := p.retriever.Retrieve(ctx, keyword, goal)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	p.saveArtifact(ctx, runID, StepContext, rc)

	p.emit(runID, StepBrief, "generating brief", 0.6)
	brief, err := p.generator.Brief(ctx, rc)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, err
	}
	p.emit(runID, StepBrief, "brief complete", 1.0)
	p.saveArtifact(ctx, runID, StepBrief, brief)
	p.finishRun(ctx, runID, runCompleted)
	return brief, nil
}

// GenerateArticle analyzes a keyword, produces a brief, and writes the full
// article from it.
func (p *Pipeline) GenerateArticle(ctx context.Context, keyword, goal string) (*types.Article, error) {
	if err := validateKeyword(keyword); err != nil {
		return nil, err
	}
	runID := p.beginRun(ctx, keyword, goal, "article")

	p.emit(runID, StepContext, "retrieving knowledge", 0.1)
	rc, err := p.retriever.Retrieve(ctx, keyword, goal)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	p.saveArtifact(ctx, runID, StepContext, rc)

	p.emit(runID, StepBrief, "generating brief", 0.3)
	brief, err := p.generator.Brief(ctx, rc)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, err
	}
	p.saveArtifact(ctx, runID, StepBrief, brief)

	p.emit(runID, StepArticle, "writing article sections", 0.6)
	article, err := p.generator.ArticleFromBrief(ctx, brief)
	if err != nil {
		p.finishRun(ctx, runID, runFailed)
		return nil, err
	}
	p.emit(runID, StepArticle, "article complete", 1.0)
	p.saveArtifact(ctx, runID, StepArticle, article)
	p.finishRun(ctx, runID, runCompleted)
	return article, nil
}
