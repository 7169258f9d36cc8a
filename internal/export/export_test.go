package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesheet/internal/calendar"
	"github.com/timesheet/internal/document"
	"github.com/timesheet/internal/logging"
	"github.com/timesheet/internal/raster"
	"github.com/timesheet/internal/settings"
)

func october() *document.Document {
	return document.Render(calendar.Month{Year: 2025, Month: time.October}, settings.Defaults())
}

// fakeRaster returns a small solid page and records the order of calls.
type fakeRaster struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (f *fakeRaster) Rasterize(_ context.Context, _ *document.Document, page document.Page) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page.ID)
	if page.ID == f.failOn {
		return nil, errors.New("canvas exploded")
	}
	return imaging.New(21, 30, color.White), nil
}

func TestExportWritesPDF(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	fake := &fakeRaster{}
	p := New(fake, dir, logging.New(&logs, "info"))

	res, err := p.Export(context.Background(), october())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "timesheet-october-2025.pdf"), res.Path)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "2025-10", res.Month)
	assert.NotEmpty(t, res.JobID)
	assert.Equal(t, []string{"pdf-page-1", "pdf-page-2"}, fake.calls)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	out := logs.String()
	assert.Contains(t, out, "starting PDF export")
	assert.Contains(t, out, "page added to PDF")
	assert.Contains(t, out, "PDF saved successfully")
	assert.Contains(t, out, "PDF export finished")
	assert.Contains(t, out, "job="+res.JobID)
	assert.False(t, p.InProgress())
}

func TestExportPageFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	fake := &fakeRaster{failOn: "pdf-page-2"}
	p := New(fake, dir, logging.New(&logs, "info"))

	_, err := p.Export(context.Background(), october())
	require.Error(t, err)

	var perr *PageError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Page)
	assert.Equal(t, "pdf-page-2", perr.PageID)
	assert.Contains(t, err.Error(), "canvas exploded")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Contains(t, logs.String(), "critical error during PDF export")
	assert.Contains(t, logs.String(), "PDF export finished")
	assert.False(t, p.InProgress())

	fake.failOn = ""
	_, err = p.Export(context.Background(), october())
	assert.NoError(t, err, "pipeline is usable again after a failure")
}

func TestExportMissingRenderTarget(t *testing.T) {
	fake := &fakeRaster{}
	p := New(fake, t.TempDir(), nil)

	_, err := p.Export(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRenderTargetMissing)

	_, err = p.Export(context.Background(), &document.Document{Title: "empty"})
	assert.ErrorIs(t, err, ErrRenderTargetMissing)

	assert.Empty(t, fake.calls)
	assert.False(t, p.InProgress())
}

// blockingRaster holds the first page until released.
type blockingRaster struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingRaster) Rasterize(ctx context.Context, _ *document.Document, _ document.Page) (image.Image, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return imaging.New(10, 10, color.White), nil
}

func TestExportRejectsConcurrentRun(t *testing.T) {
	br := &blockingRaster{started: make(chan struct{}), release: make(chan struct{})}
	p := New(br, t.TempDir(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Export(context.Background(), october())
		done <- err
	}()

	<-br.started
	assert.True(t, p.InProgress())

	_, err := p.Export(context.Background(), october())
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(br.release)
	require.NoError(t, <-done)
	assert.False(t, p.InProgress())
}

func TestExportCancelled(t *testing.T) {
	br := &blockingRaster{started: make(chan struct{}), release: make(chan struct{})}
	dir := t.TempDir()
	p := New(br, dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-br.started
		cancel()
	}()

	_, err := p.Export(ctx, october())
	assert.ErrorIs(t, err, context.Canceled)

	var perr *PageError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Page)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestExportWithCanvas(t *testing.T) {
	dir := t.TempDir()
	p := New(raster.NewCanvas(1), dir, nil)

	res, err := p.Export(context.Background(), october())
	require.NoError(t, err)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "timesheet-october-2025.pdf", FileName(october()))
	assert.Equal(t, "timesheet.pdf", FileName(&document.Document{}))
}
