package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/storage"
	"paperdesk_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// allowedExtensions lists the document types customers and writers may
// attach to orders.
var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
	".odt":  "application/vnd.oasis.opendocument.text",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".zip":  "application/zip",
}

type UploadService interface {
	// UploadDocument stores one uploaded file under the given folder and
	// returns its descriptor for embedding in an order row.
	UploadDocument(ctx context.Context, folder string, header *multipart.FileHeader) (*models.StoredFile, error)

	// DeleteDocument removes a previously stored file.
	DeleteDocument(ctx context.Context, key string) error
}

type UploadServiceImpl struct {
	store      storage.Storage
	rootFolder string
	maxSize    int64
}

func NewUploadService(store storage.Storage, cfg *config.Config) UploadService {
	return &UploadServiceImpl{
		store:      store,
		rootFolder: cfg.Storage.RootFolder,
		maxSize:    cfg.Upload.MaxSize,
	}
}

func (s *UploadServiceImpl) UploadDocument(ctx context.Context, folder string, header *multipart.FileHeader) (*models.StoredFile, error) {
	if header.Size > s.maxSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the maximum allowed size of %d bytes", s.maxSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("File type %s is not allowed", ext))
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	key := s.buildKey(folder, ext)
	if err := s.store.Save(ctx, key, file, contentType); err != nil {
		return nil, apperrors.UpstreamError("storage", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &models.StoredFile{
		Key:         key,
		Name:        filepath.Base(header.Filename),
		URL:         url,
		Size:        header.Size,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}, nil
}

func (s *UploadServiceImpl) DeleteDocument(ctx context.Context, key string) error {
	// Keys outside the configured root would let a caller delete
	// arbitrary objects.
	if !strings.HasPrefix(key, s.rootFolder+"/") {
		return apperrors.NewBadRequestError("Invalid document key")
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return apperrors.UpstreamError("storage", err)
	}
	return nil
}

func (s *UploadServiceImpl) buildKey(folder, ext string) string {
	name := uuid.NewString() + ext
	if folder == "" {
		return fmt.Sprintf("%s/%s", s.rootFolder, name)
	}
	return fmt.Sprintf("%s/%s/%s", s.rootFolder, folder, name)
}
