package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/types"
)

// Embedding inputs are capped; a full RFP easily exceeds the model's
// token window.
const maxEmbedChars = 8000

// FileService owns document ingestion: store the raw upload, extract its
// text, persist the document and compute the embedding. Extraction and
// embedding are best-effort; a document missing its vector is picked up
// later by BackfillEmbeddings.
type FileService struct {
	uploadDir string
	docs      repository.DocumentRepo
	index     database.VectorIndex
	embedder  EmbeddingService
	extractor *ExtractService
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewFileService(
	uploadDir string,
	docs repository.DocumentRepo,
	index database.VectorIndex,
	embedder EmbeddingService,
	extractor *ExtractService,
	timeout time.Duration,
	logger zerolog.Logger,
) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
		docs:      docs,
		index:     index,
		embedder:  embedder,
		extractor: extractor,
		timeout:   timeout,
		logger:    logger.With().Str("component", "files").Logger(),
	}, nil
}

// SaveUpload handles one multipart upload for the given owner.
func (s *FileService) SaveUpload(ctx context.Context, ownerID string, req types.UploadRequest, header *multipart.FileHeader) (*types.Document, error) {
	if !s.extractor.SupportedExtension(header.Filename) {
		return nil, ErrUnsupportedFileType
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	path, err := s.archiveFile(src, header.Filename)
	if err != nil {
		return nil, err
	}

	return s.IngestFile(ctx, ownerID, req, path)
}

// IngestFile extracts, persists and embeds an already-stored file. Also
// used by the seeding CLIs.
func (s *FileService) IngestFile(ctx context.Context, ownerID string, req types.UploadRequest, path string) (*types.Document, error) {
	content, err := s.extractor.ExtractText(path)
	if err != nil {
		// Metadata fallback keeps the document searchable.
		s.logger.Warn().Err(err).Str("file", path).Msg("text extraction failed, storing metadata only")
		content = ""
	}

	title := req.Title
	if title == "" {
		title = fileNameWithoutExt(path)
	}

	doc := &types.Document{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Title:      title,
		DocType:    req.DocType,
		ClientName: req.ClientName,
		Industry:   req.Industry,
		Geography:  req.Geography,
		Year:       req.Year,
		Summary:    req.Summary,
		Content:    content,
		Tags:       req.Tags,
		CreatedAt:  time.Now().Unix(),
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if err := s.embedDocument(ctx, doc); err != nil {
		s.logger.Warn().Err(err).Str("document", doc.ID).Msg("embedding failed, will backfill later")
	} else {
		doc.HasEmbedding = true
	}

	return doc, nil
}

// BackfillEmbeddings computes vectors for the owner's documents that were
// stored while the embedding service was unavailable.
func (s *FileService) BackfillEmbeddings(ctx context.Context, ownerID string) int {
	docs, err := s.docs.ListMissingEmbeddings(ctx, ownerID, 50)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list documents missing embeddings")
		return 0
	}

	filled := 0
	for i := range docs {
		if err := s.embedDocument(ctx, &docs[i]); err != nil {
			s.logger.Warn().Err(err).Str("document", docs[i].ID).Msg("embedding backfill failed")
			continue
		}
		filled++
	}
	return filled
}

func (s *FileService) embedDocument(ctx context.Context, doc *types.Document) error {
	text := doc.SearchableText()
	if len(text) > maxEmbedChars {
		text = text[:maxEmbedChars]
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vector, err := s.embedder.EmbedText(callCtx, text)
	if err != nil {
		return err
	}
	if err := s.index.UpsertEmbedding(callCtx, doc, vector); err != nil {
		return err
	}
	if err := s.docs.SetEmbeddingStored(ctx, doc.ID, true); err != nil {
		return err
	}
	return nil
}

func (s *FileService) archiveFile(src io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := fmt.Sprintf("%s_%d%s", sanitizeFileName(base), time.Now().Unix(), ext)

	path := filepath.Join(s.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

func fileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
