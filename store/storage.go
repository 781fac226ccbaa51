package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// ConnMode selects how database access is shared between concurrent callers.
type ConnMode string

const (
	// ModePooled lets independent pipeline invocations proceed concurrently.
	ModePooled ConnMode = "pooled"
	// ModeSingle serializes all database access on one connection.
	ModeSingle ConnMode = "single"
)

type DBStorer interface {
	Init(ctx context.Context) error
	InsertChunk(ctx context.Context, filename, content string, embedding []float32) (int64, error)
	Search(ctx context.Context, embedding []float32, limit int) ([]types.SearchResult, error)
	ListDocuments(ctx context.Context) ([]types.DocumentInfo, error)
	DeleteByFilename(ctx context.Context, filename string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// PostgresStore persists one row per chunk in a pgvector-indexed table.
type PostgresStore struct {
	pool *pgxpool.Pool
	dim  int
}

func NewPostgresStore(ctx context.Context, connStr string, mode ConnMode, dim int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, &types.StoreError{Op: "parse config", Err: err}
	}
	if mode == ModeSingle {
		cfg.MaxConns = 1
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, &types.StoreError{Op: "connect", Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &types.StoreError{Op: "ping", Err: err}
	}

	return &PostgresStore{
		pool: pool,
		dim:  dim,
	}, nil
}

// Init creates the vector extension, the documents table and its indexes.
// Safe to run on every startup.
func (p *PostgresStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
    CREATE EXTENSION IF NOT EXISTS vector;

    CREATE TABLE IF NOT EXISTS documents (
        id BIGSERIAL PRIMARY KEY,
        filename TEXT NOT NULL,
        content TEXT NOT NULL,
        embedding vector(%d) NOT NULL,
        created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
    );

    CREATE INDEX IF NOT EXISTS idx_documents_embedding ON documents
    USING ivfflat (embedding vector_cosine_ops)
    WITH (lists = 100);

    CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(filename);
    `, p.dim)

	if _, err := p.pool.Exec(ctx, query); err != nil {
		return &types.StoreError{Op: "init", Err: err}
	}
	return nil
}

func (p *PostgresStore) InsertChunk(ctx context.Context, filename, content string, embedding []float32) (int64, error) {
	query := `
    INSERT INTO documents (filename, content, embedding)
    VALUES ($1, $2, $3)
    RETURNING id
    `
	var id int64
	err := p.pool.QueryRow(ctx, query, filename, content, pgvector.NewVector(embedding)).Scan(&id)
	if err != nil {
		return 0, &types.StoreError{Op: "insert chunk", Err: err}
	}
	return id, nil
}

// Search returns the limit nearest chunks by cosine distance, closest first.
// Similarity is the raw <=> distance, lower means more similar.
func (p *PostgresStore) Search(ctx context.Context, embedding []float32, limit int) ([]types.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, &types.StoreError{Op: "search", Err: fmt.Errorf("empty query vector")}
	}

	query := `
    SELECT id, filename, content, embedding <=> $1 AS similarity
    FROM documents
    ORDER BY embedding <=> $1
    LIMIT $2
    `
	rows, err := p.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, &types.StoreError{Op: "search", Err: err}
	}
	defer rows.Close()

	var results []types.SearchResult
	for rows.Next() {
		var r types.SearchResult
		if err := rows.Scan(&r.ID, &r.Filename, &r.Content, &r.Similarity); err != nil {
			return nil, &types.StoreError{Op: "search scan", Err: err}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StoreError{Op: "search rows", Err: err}
	}
	return results, nil
}

// ListDocuments groups chunks by filename: newest created_at per file, plus a
// 200-character preview taken from that file's lowest-id chunk.
func (p *PostgresStore) ListDocuments(ctx context.Context) ([]types.DocumentInfo, error) {
	query := `
    SELECT d.filename,
           MAX(d.created_at) AS last_added_at,
           (SELECT LEFT(d2.content, 200)
            FROM documents d2
            WHERE d2.filename = d.filename
            ORDER BY d2.id
            LIMIT 1) AS preview
    FROM documents d
    GROUP BY d.filename
    ORDER BY last_added_at DESC
    `
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, &types.StoreError{Op: "list documents", Err: err}
	}
	defer rows.Close()

	var infos []types.DocumentInfo
	for rows.Next() {
		var info types.DocumentInfo
		if err := rows.Scan(&info.Filename, &info.LastAddedAt, &info.Preview); err != nil {
			return nil, &types.StoreError{Op: "list scan", Err: err}
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StoreError{Op: "list rows", Err: err}
	}
	return infos, nil
}

func (p *PostgresStore) DeleteByFilename(ctx context.Context, filename string) (int64, error) {
	tag, err := p.pool.Exec(ctx, "DELETE FROM documents WHERE filename = $1", filename)
	if err != nil {
		return 0, &types.StoreError{Op: "delete by filename", Err: err}
	}
	return tag.RowsAffected(), nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return &types.StoreError{Op: "ping", Err: err}
	}
	return nil
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		slog.Info("postgres connection pool closed")
	}
	return nil
}
