package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/argtex/internal/document"
	"github.com/dgallion1/argtex/internal/source"
)

// Translate runs notation source through assembly and output.
func Translate(src string, format document.Format, r *document.Renderer) (*document.Document, []byte, error) {
	doc, err := document.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := document.Write(&buf, doc, format, r); err != nil {
		return doc, nil, fmt.Errorf("write %s: %w", format, err)
	}
	return doc, buf.Bytes(), nil
}

// Worker processes translation jobs.
type Worker struct {
	renderer *document.Renderer
	stats    *Stats
	log      *slog.Logger
	opts     source.Options
}

func NewWorker(renderer *document.Renderer, stats *Stats, log *slog.Logger, opts source.Options) *Worker {
	return &Worker{
		renderer: renderer,
		stats:    stats,
		log:      log,
		opts:     opts,
	}
}

// Process extracts, parses and renders one job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	fail := func(phase string, err error, src string) {
		f := Describe(err, src)
		if f.Internal() {
			log.Error("translation bug", "phase", phase, "error", err)
		} else {
			log.Warn("translation failed", "phase", phase, "error", err)
		}
		w.stats.RecordFailure()
		job.Fail(f)
	}

	// Phase 1: Extract
	job.SetStatus(StatusExtracting)
	ex, err := source.ForFile(job.Filename, w.opts)
	if err != nil {
		fail("extracting", err, "")
		return
	}
	src, err := ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		fail("extracting", err, "")
		return
	}
	job.SetContentHash(ContentHashHex([]byte(src)))

	if err := ctx.Err(); err != nil {
		fail("extracting", err, "")
		return
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing)
	doc, err := document.Parse(src)
	if err != nil {
		fail("parsing", err, src)
		return
	}

	// Phase 3: Render
	job.SetStatus(StatusRendering)
	var buf bytes.Buffer
	if err := document.Write(&buf, doc, job.Format, w.renderer); err != nil {
		fail("rendering", err, "")
		return
	}

	took := time.Since(start)
	w.stats.Record(took.Milliseconds())
	job.Complete(buf.Bytes(), doc, took)
	log.Info("translation complete", "sections", len(doc.Sections), "premises", doc.PremiseCount(), "duration_ms", took.Milliseconds())
}
