// Package export assembles rasterized timesheet pages into an A4 PDF.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/timesheet/internal/document"
	"github.com/timesheet/internal/raster"
)

// A4 page size in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

var (
	// ErrRenderTargetMissing means there was no page to capture.
	ErrRenderTargetMissing = errors.New("render target missing")

	// ErrExportInProgress is returned when Export is called while another
	// export on the same pipeline has not finished.
	ErrExportInProgress = errors.New("export already in progress")
)

// PageError reports the page whose capture or placement failed.
type PageError struct {
	Page   int
	PageID string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d (%s): %v", e.Page, e.PageID, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Result describes a saved PDF.
type Result struct {
	JobID    string
	Path     string
	Pages    int
	Month    string
	Finished time.Time
}

// Pipeline captures pages one at a time, in page order, and writes the PDF
// only once every page has been placed. A failed export leaves no file.
type Pipeline struct {
	raster    raster.Rasterizer
	outputDir string
	log       *slog.Logger
	running   atomic.Bool
}

func New(r raster.Rasterizer, outputDir string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{raster: r, outputDir: outputDir, log: log}
}

// InProgress reports whether an export is running.
func (p *Pipeline) InProgress() bool {
	return p.running.Load()
}

// FileName returns the PDF file name for doc, e.g. timesheet-october-2025.pdf.
func FileName(doc *document.Document) string {
	name := doc.Slug
	if name == "" {
		name = "timesheet"
	}
	return name + ".pdf"
}

// Export captures every page of doc and saves the PDF in the output directory.
func (p *Pipeline) Export(ctx context.Context, doc *document.Document) (Result, error) {
	if !p.running.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer p.running.Store(false)

	jobID := uuid.NewString()
	log := p.log.With("job", jobID)
	log.Info("starting PDF export")
	defer log.Info("PDF export finished")

	if doc == nil || len(doc.Pages) == 0 {
		log.Error("render target missing")
		return Result{}, ErrRenderTargetMissing
	}
	log = log.With("document", doc.Title)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(true)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	for i, page := range doc.Pages {
		n := i + 1
		if err := p.addPage(ctx, pdf, opts, doc, page); err != nil {
			log.Error("critical error during PDF export", "page", page.ID, "error", err)
			return Result{}, &PageError{Page: n, PageID: page.ID, Err: err}
		}
		log.Info("page added to PDF", "page", n, "of", len(doc.Pages))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Error("critical error during PDF export", "error", err)
		return Result{}, fmt.Errorf("failed to assemble PDF: %w", err)
	}

	path := filepath.Join(p.outputDir, FileName(doc))
	if err := writeFile(path, buf.Bytes()); err != nil {
		log.Error("critical error during PDF export", "error", err)
		return Result{}, err
	}
	log.Info("PDF saved successfully", "path", path, "bytes", buf.Len())

	return Result{
		JobID:    jobID,
		Path:     path,
		Pages:    len(doc.Pages),
		Month:    doc.Month.Key(),
		Finished: time.Now(),
	}, nil
}

func (p *Pipeline) addPage(ctx context.Context, pdf *fpdf.Fpdf, opts fpdf.ImageOptions, doc *document.Document, page document.Page) error {
	img, err := p.raster.Rasterize(ctx, doc, page)
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("rasterizer returned no image")
	}
	p.log.Debug("page captured", "page", page.ID, "size", img.Bounds().Size())

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}

	pdf.AddPage()
	pdf.RegisterImageOptionsReader(page.ID, opts, &png)
	pdf.ImageOptions(page.ID, 0, 0, A4Width, A4Height, false, opts, 0, "")
	return pdf.Error()
}

// writeFile writes through a temporary file so a reader never sees a
// half-written PDF.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".timesheet-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
