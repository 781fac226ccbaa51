package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rockyxcoded/Example-PDF-vector-search/chunker"
	"github.com/rockyxcoded/Example-PDF-vector-search/extract"
	"github.com/rockyxcoded/Example-PDF-vector-search/model"
	"github.com/rockyxcoded/Example-PDF-vector-search/retry"
	"github.com/rockyxcoded/Example-PDF-vector-search/store"
	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

const (
	// DefaultAnswerLimit is how many chunks back an answer when the caller
	// does not pick a limit.
	DefaultAnswerLimit = 3

	// contextSnippetLimit caps how much of each retrieved chunk goes into
	// the completion prompt.
	contextSnippetLimit = 1000

	systemPrompt = "You are a helpful assistant. Answer using only the provided context. " +
		"If the context does not contain the answer, say that the answer is not in the documents."

	noContextAnswer = "No relevant documents found to answer this question."
)

// Pipeline sequences extraction, chunking, embedding, storage and completion.
// All collaborators are injected so tests can substitute doubles.
type Pipeline struct {
	extractor extract.TextExtractor
	embedder  model.EmbedderInterface
	completer model.CompleterInterface
	store     store.DBStorer

	chunkSize    int
	answerLimit  int
	maxAttempts  int
	initialDelay time.Duration
}

// Options tunes the pipeline. The zero value gets sensible defaults.
type Options struct {
	ChunkSize    int
	AnswerLimit  int
	MaxAttempts  int
	InitialDelay time.Duration
}

func New(extractor extract.TextExtractor, embedder model.EmbedderInterface, completer model.CompleterInterface, storer store.DBStorer, opts Options) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 500
	}
	if opts.AnswerLimit <= 0 {
		opts.AnswerLimit = DefaultAnswerLimit
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = time.Second
	}
	return &Pipeline{
		extractor:    extractor,
		embedder:     embedder,
		completer:    completer,
		store:        storer,
		chunkSize:    opts.ChunkSize,
		answerLimit:  opts.AnswerLimit,
		maxAttempts:  opts.MaxAttempts,
		initialDelay: opts.InitialDelay,
	}
}

// AddDocument extracts, chunks, embeds and stores a source file. It returns
// the inserted record ids in chunk order. Chunks persisted before a failure
// stay persisted; there is no cross-chunk rollback.
func (p *Pipeline) AddDocument(ctx context.Context, path string) ([]int64, error) {
	ingestID := uuid.NewString()

	text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &types.ExtractionError{Path: path, Err: types.ErrEmptyDocument}
	}

	filename := filepath.Base(path)
	chunks := chunker.Split(text, p.chunkSize)

	slog.Info("ingesting document",
		"ingest_id", ingestID,
		"filename", filename,
		"chunks", len(chunks),
	)

	ids := make([]int64, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := p.embed(ctx, chunk)
		if err != nil {
			return ids, fmt.Errorf("embed chunk %d of %q: %w", i, filename, err)
		}

		id, err := p.store.InsertChunk(ctx, filename, chunk, embedding)
		if err != nil {
			return ids, fmt.Errorf("insert chunk %d of %q: %w", i, filename, err)
		}
		ids = append(ids, id)
	}

	slog.Info("document ingested", "ingest_id", ingestID, "filename", filename, "rows", len(ids))
	return ids, nil
}

// SearchSimilar embeds the query and returns the limit nearest chunks,
// closest first. A limit of zero or less returns an empty result without
// touching the embedder or the store.
func (p *Pipeline) SearchSimilar(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	embedding, err := p.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return p.store.Search(ctx, embedding, limit)
}

// Ask retrieves the chunks nearest to question and forwards them as context
// to the completion model. A negative limit selects the configured default;
// no retrieved chunks is a terminal, non-error outcome.
func (p *Pipeline) Ask(ctx context.Context, question string, limit int) (*types.Answer, error) {
	if limit < 0 {
		limit = p.answerLimit
	}

	results, err := p.SearchSimilar(ctx, question, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &types.Answer{Answer: noContextAnswer, Sources: []types.Source{}}, nil
	}

	userPrompt := buildPrompt(results, question)
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		if count, err := model.CountTokens(systemPrompt + userPrompt); err == nil {
			slog.Debug("prompt assembled", "tokens", count, "chunks", len(results))
		}
	}

	answer, err := retry.Do(ctx, func(ctx context.Context) (string, error) {
		return p.completer.Complete(ctx, systemPrompt, userPrompt)
	}, p.maxAttempts, p.initialDelay)
	if err != nil {
		return nil, err
	}

	sources := make([]types.Source, len(results))
	for i, r := range results {
		sources[i] = types.Source{Filename: r.Filename, Similarity: r.Similarity}
	}
	return &types.Answer{Answer: answer, Sources: sources}, nil
}

// ListDocuments returns one grouped row per stored filename, newest first.
func (p *Pipeline) ListDocuments(ctx context.Context) ([]types.DocumentInfo, error) {
	return p.store.ListDocuments(ctx)
}

// DeleteDocument removes every chunk whose filename matches exactly.
func (p *Pipeline) DeleteDocument(ctx context.Context, filename string) error {
	count, err := p.store.DeleteByFilename(ctx, filename)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("document %q: %w", filename, types.ErrNotFound)
	}
	slog.Info("document deleted", "filename", filename, "rows", count)
	return nil
}

func (p *Pipeline) embed(ctx context.Context, text string) ([]float32, error) {
	return retry.Do(ctx, func(ctx context.Context) ([]float32, error) {
		return p.embedder.Embed(ctx, text)
	}, p.maxAttempts, p.initialDelay)
}

// buildPrompt labels each retrieved chunk with its filename, capped at
// contextSnippetLimit characters, blocks separated by blank lines.
func buildPrompt(results []types.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		content := r.Content
		if len(content) > contextSnippetLimit {
			content = content[:contextSnippetLimit]
		}
		fmt.Fprintf(&sb, "Document: %s\n%s", r.Filename, content)
	}
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
