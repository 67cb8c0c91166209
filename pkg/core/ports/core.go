package ports

import (
	"context"
	"io"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

// Downstream receives batches of parsed records from an ingestor.
// In this tool it appends into the session's record set under construction.
type Downstream func(ctx context.Context, records []domain.Record) error

// IngestorFactory builds an ingestor wired to a downstream sink. The session
// creates a fresh ingestor per refresh so each run starts from clean state.
type IngestorFactory func(downstream Downstream) DlogIngestor

// DlogIngestor parses .dlog telemetry logs (Ingestion Layer).
// Responsibility: accept either on-disk encoding (JSON array or
// newline-delimited objects), skip malformed records without aborting the
// file, and report per-record outcomes in the IngestionResult.
type DlogIngestor interface {
	// IngestStream parses one .dlog stream.
	IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestionResult, error)

	// IngestFile parses one .dlog file by path.
	IngestFile(ctx context.Context, path string) (*domain.IngestionResult, error)
}

// ArchiveExtractor decompresses the archives of a working folder into
// sibling .dlog files. Per-archive failures are collected in the result and
// do not abort the remaining archives.
type ArchiveExtractor interface {
	ExtractFolder(ctx context.Context, folder string) (*domain.ExtractionResult, error)
}

// CSVExporter writes an already filtered/downsampled record view as CSV:
// one header row of column names, one row per record.
type CSVExporter interface {
	Export(ctx context.Context, w io.Writer, records []domain.Record, columns []string) error
}

// KMLExporter writes a KML document: one track built from the track view's
// positions, plus one labeled point placemark per record of the (separately
// downsampled) placemark view. A nil placemark view emits no placemarks.
type KMLExporter interface {
	Export(ctx context.Context, w io.Writer, track, placemarks []domain.Record, columns []string) error
}
