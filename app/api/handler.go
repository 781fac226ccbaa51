package api

import (
	"context"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// DocumentPipeline is what the handlers need from the pipeline.
type DocumentPipeline interface {
	AddDocument(ctx context.Context, path string) ([]int64, error)
	Ask(ctx context.Context, question string, limit int) (*types.Answer, error)
	ListDocuments(ctx context.Context) ([]types.DocumentInfo, error)
	DeleteDocument(ctx context.Context, filename string) error
}

type RequestHandler struct {
	pipeline  DocumentPipeline
	uploadDir string
}

func NewRequestHandler(pipeline DocumentPipeline, uploadDir string) *RequestHandler {
	return &RequestHandler{
		pipeline:  pipeline,
		uploadDir: uploadDir,
	}
}

// UploadResponse reports what an ingest produced.
type UploadResponse struct {
	Filename string  `json:"filename"`
	Chunks   int     `json:"chunks"`
	ChunkIDs []int64 `json:"chunk_ids"`
}

// HandleUpload saves a multipart PDF and ingests it.
func (h *RequestHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		return err
	}

	ids, err := h.pipeline.AddDocument(c.Context(), path)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(UploadResponse{
		Filename: filepath.Base(file.Filename),
		Chunks:   len(ids),
		ChunkIDs: ids,
	})
}

// HandleAsk answers a question from the stored documents.
func (h *RequestHandler) HandleAsk(c *fiber.Ctx) error {
	var params types.AskParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	limit := -1 // pipeline default
	if params.Limit != nil {
		limit = *params.Limit
	}

	answer, err := h.pipeline.Ask(c.Context(), params.Question, limit)
	if err != nil {
		return err
	}

	return c.JSON(types.AskResponse{
		Answer:    answer.Answer,
		Sources:   answer.Sources,
		Timestamp: time.Now(),
	})
}

func (h *RequestHandler) HandleList(c *fiber.Ctx) error {
	infos, err := h.pipeline.ListDocuments(c.Context())
	if err != nil {
		return err
	}
	if infos == nil {
		infos = []types.DocumentInfo{}
	}
	return c.JSON(infos)
}

func (h *RequestHandler) HandleDelete(c *fiber.Ctx) error {
	filename, err := url.PathUnescape(c.Params("filename"))
	if err != nil || filename == "" {
		return ErrBadRequest()
	}

	if err := h.pipeline.DeleteDocument(c.Context(), filename); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": filename})
}
