package services

import (
	"archive/zip"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/storage"
	"paperdesk_backend/pkg/apperrors"

	"github.com/jung-kurt/gofpdf"
	"github.com/microcosm-cc/bluemonday"
)

// Bundle is a finished zip archive ready to stream. Cleanup removes the
// temporary files and must be called after the response is written.
type Bundle struct {
	Path     string
	FileName string
	Cleanup  func()
}

// BundleService packages an order's documents together with a generated
// PDF cover sheet into a downloadable zip.
type BundleService interface {
	// BundleBrief packages the customer's assignment material for the
	// assigned writer.
	BundleBrief(ctx context.Context, orderID, writerID uint) (*Bundle, error)

	// BundleDeliverables packages the writer's submitted work for the
	// customer.
	BundleDeliverables(ctx context.Context, orderID, userID uint) (*Bundle, error)
}

type BundleServiceImpl struct {
	orderRepo repositories.OrderRepository
	store     storage.Storage
	tempDir   string
	sanitizer *bluemonday.Policy
	httpc     *http.Client
}

func NewBundleService(orderRepo repositories.OrderRepository, store storage.Storage, cfg *config.Config) BundleService {
	return &BundleServiceImpl{
		orderRepo: orderRepo,
		store:     store,
		tempDir:   cfg.Bundle.TempDir,
		sanitizer: bluemonday.StrictPolicy(),
		httpc:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *BundleServiceImpl) BundleBrief(ctx context.Context, orderID, writerID uint) (*Bundle, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.WriterID == nil || *order.WriterID != writerID {
		return nil, apperrors.NewNotFoundError("orders", fmt.Sprintf("Order not found with ID %d", orderID))
	}

	docs := documentsWithDefault(order.DefaultDocument.Data(), order.Documents)
	zipName := fmt.Sprintf("order_%d_documents.zip", order.ID)
	return s.bundle(ctx, order, docs, zipName)
}

func (s *BundleServiceImpl) BundleDeliverables(ctx context.Context, orderID, userID uint) (*Bundle, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewNotFoundError("orders", fmt.Sprintf("Order not found with ID %d", orderID))
	}

	docs := documentsWithDefault(order.SubmittedDocument.Data(), order.SubmittedDocuments)
	if len(docs) == 0 {
		return nil, apperrors.NewBadRequestError("No documents have been submitted for this order")
	}

	zipName := fmt.Sprintf("order_%d_assignment.zip", order.ID)
	return s.bundle(ctx, order, docs, zipName)
}

func (s *BundleServiceImpl) loadOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDWithRelations(orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.NewNotFoundError("orders", fmt.Sprintf("Order not found with ID %d", orderID))
		}
		return nil, apperrors.InternalError(err)
	}
	return order, nil
}

func documentsWithDefault(deflt models.StoredFile, rest []models.StoredFile) []models.StoredFile {
	var docs []models.StoredFile
	if !deflt.IsZero() {
		docs = append(docs, deflt)
	}
	return append(docs, rest...)
}

func (s *BundleServiceImpl) bundle(ctx context.Context, order *models.Order, docs []models.StoredFile, zipName string) (*Bundle, error) {
	pdfPath := filepath.Join(s.tempDir, fmt.Sprintf("order_%d_details.pdf", order.ID))
	if err := s.writeSummaryPDF(order, pdfPath); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The PDF library reports success before the bytes are guaranteed
	// visible to a subsequent open, so wait until the file shows up.
	if err := waitForFile(ctx, pdfPath, 30*time.Second); err != nil {
		removeQuietly(pdfPath)
		return nil, apperrors.InternalError(err)
	}

	zipPath := filepath.Join(s.tempDir, zipName)
	if err := s.writeZip(ctx, zipPath, pdfPath, docs); err != nil {
		removeQuietly(pdfPath)
		removeQuietly(zipPath)
		return nil, apperrors.UpstreamError("documents", err)
	}

	return &Bundle{
		Path:     zipPath,
		FileName: zipName,
		Cleanup: func() {
			removeQuietly(zipPath)
			removeQuietly(pdfPath)
		},
	}, nil
}

// writeSummaryPDF renders the order cover sheet: every attribute the
// writer needs to fulfil the assignment.
func (s *BundleServiceImpl) writeSummaryPDF(order *models.Order, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "BU", 20)
	pdf.CellFormat(0, 12, "ORDER DETAILS", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	description := html.UnescapeString(s.sanitizer.Sanitize(order.Description))

	sections := []struct {
		label string
		value string
	}{
		{"Title", order.Title},
		{"Description", description},
		{"Education Level", relationName(order.Level)},
		{"Paper Category", relationNamePaper(order.Paper)},
		{"Paper Type", relationNameType(order.PaperType)},
		{"Spacing", order.Spacing.Title},
		{"Deadline", order.Deadline.Title},
		{"Language", order.Language.Title},
		{"Format", order.Format.Title},
		{"Number of Pages", fmt.Sprintf("%d", order.Pages)},
		{"Number of Sources", fmt.Sprintf("%d", order.Sources)},
	}

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 9, section.label, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, section.value, "", "L", false)
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(path)
}

func relationName(level *models.Level) string {
	if level == nil {
		return ""
	}
	return level.Name
}

func relationNamePaper(paper *models.Paper) string {
	if paper == nil {
		return ""
	}
	return paper.Name
}

func relationNameType(pt *models.PaperType) string {
	if pt == nil {
		return ""
	}
	return pt.Name
}

func (s *BundleServiceImpl) writeZip(ctx context.Context, zipPath, pdfPath string, docs []models.StoredFile) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create zip file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	if err := addFileToZip(zw, pdfPath, filepath.Base(pdfPath)); err != nil {
		return err
	}

	for _, doc := range docs {
		reader, err := s.openDocument(ctx, doc)
		if err != nil {
			return err
		}

		entry, err := zw.Create(doc.Name)
		if err != nil {
			reader.Close()
			return fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := io.Copy(entry, reader); err != nil {
			reader.Close()
			return fmt.Errorf("failed to write %s into zip: %w", doc.Name, err)
		}
		reader.Close()
	}

	return zw.Close()
}

// openDocument prefers the storage backend; documents that only carry a
// remote URL are fetched over HTTP.
func (s *BundleServiceImpl) openDocument(ctx context.Context, doc models.StoredFile) (io.ReadCloser, error) {
	if doc.Key != "" {
		reader, err := s.store.Get(ctx, doc.Key)
		if err == nil {
			return reader, nil
		}
		logger.CtxWarn(ctx, "storage read failed, falling back to URL", "key", doc.Key, "error", err.Error())
	}

	if doc.URL == "" {
		return nil, fmt.Errorf("document %s has no readable location", doc.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build document request: %w", err)
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", doc.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch document %s: status %d", doc.Name, resp.StatusCode)
	}

	return resp.Body, nil
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("failed to write %s into zip: %w", name, err)
	}
	return nil
}

func waitForFile(ctx context.Context, path string, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("timed out waiting for %s", path)
		case <-ticker.C:
		}
	}
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().Warn("failed to remove temp file", "path", path, "error", err.Error())
	}
}
