package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/ports"
)

// Session is the explicit state of one working folder: the selected folder
// path and the current RecordSet. It replaces the GUI's process-wide
// globals so the pipeline runs the same with or without an interface layer.
// All operations are synchronous and re-runnable; Refresh rebuilds the
// RecordSet wholesale instead of mutating it.
type Session struct {
	log         zerolog.Logger
	folder      string
	extractor   ports.ArchiveExtractor
	newIngestor ports.IngestorFactory
	csv         ports.CSVExporter
	kml         ports.KMLExporter
	set         domain.RecordSet
}

// NewSession creates a session for a working folder with injected adapters.
func NewSession(
	folder string,
	log zerolog.Logger,
	extractor ports.ArchiveExtractor,
	factory ports.IngestorFactory,
	csv ports.CSVExporter,
	kml ports.KMLExporter,
) *Session {
	return &Session{
		log:         log,
		folder:      folder,
		extractor:   extractor,
		newIngestor: factory,
		csv:         csv,
		kml:         kml,
	}
}

// Folder returns the session's working folder.
func (s *Session) Folder() string { return s.folder }

// Records returns the current record set in timecode order.
func (s *Session) Records() []domain.Record { return s.set.Records }

// Fields returns the sorted union of field names of the current set.
func (s *Session) Fields() []string { return s.set.FieldNames() }

// FileCount returns how many .dlog files contributed to the current set.
func (s *Session) FileCount() int { return s.set.Files }

// Timecodes returns the first and last timecode of the current set.
func (s *Session) Timecodes() (first, last domain.Timecode, ok bool) {
	return s.set.Timecodes()
}

// ExtractArchives decompresses every recognized archive in the working
// folder into sibling .dlog files. Corrupt archives are reported in the
// result and do not abort the rest.
func (s *Session) ExtractArchives(ctx context.Context) (*domain.ExtractionResult, error) {
	result, err := s.extractor.ExtractFolder(ctx, s.folder)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("archives", result.Archives).
		Int("extracted", result.Extracted).
		Int("failed", result.Failed).
		Msg("archives extracted")
	return result, nil
}

// Refresh rebuilds the RecordSet from every .dlog file in the working
// folder. Files are read in name order; the aggregate is then globally
// sorted by timecode. A file that fails outright is reported and skipped,
// the remaining files still load.
func (s *Session) Refresh(ctx context.Context) (*domain.IngestionResult, error) {
	paths, err := filepath.Glob(filepath.Join(s.folder, "*.dlog"))
	if err != nil {
		return nil, fmt.Errorf("scan folder %s: %w", s.folder, err)
	}
	sort.Strings(paths)

	var set domain.RecordSet
	sink := func(ctx context.Context, batch []domain.Record) error {
		set.Records = append(set.Records, batch...)
		return nil
	}

	result := &domain.IngestionResult{}
	for _, path := range paths {
		res, err := s.newIngestor(sink).IngestFile(ctx, path)
		result.Merge(res)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			s.log.Warn().Err(err).Str("file", path).Msg("file skipped")
			continue
		}
		result.Files++
	}

	set.Files = result.Files
	set.SortByTimecode()
	s.set = set

	s.log.Info().
		Int("files", result.Files).
		Int("records", result.Success).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("data refreshed")
	return result, nil
}

// ExportCSV writes the filtered/downsampled CSV view of the current set.
func (s *Session) ExportCSV(ctx context.Context, path string, sel domain.FieldSelection, cfg domain.ExportConfig) error {
	if err := cfg.Validate(); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	if s.set.Len() == 0 {
		return &domain.ExportError{Path: path, Err: domain.ErrNoRecords}
	}

	view := Downsample(FilterRange(s.set.Records, cfg.Range), cfg.CSVStride)
	columns := sel.Columns(s.set.FieldNames())

	if err := s.writeFile(ctx, path, func(ctx context.Context, f *os.File) error {
		return s.csv.Export(ctx, f, view, columns)
	}); err != nil {
		return err
	}
	s.log.Info().Str("path", path).Int("rows", len(view)).Msg("csv exported")
	return nil
}

// ExportKML writes the KML track (and optional placemarks) of the current
// set. The placemark view is downsampled from the full filtered set,
// independent of the track's own stride.
func (s *Session) ExportKML(ctx context.Context, path string, sel domain.FieldSelection, cfg domain.ExportConfig) error {
	if err := cfg.Validate(); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	if s.set.Len() == 0 {
		return &domain.ExportError{Path: path, Err: domain.ErrNoRecords}
	}

	filtered := FilterRange(s.set.Records, cfg.Range)
	track := Downsample(filtered, cfg.KMLStride)
	var placemarks []domain.Record
	if cfg.AddPlacemarks {
		placemarks = Downsample(filtered, cfg.PlacemarkStride)
	}
	columns := sel.Columns(s.set.FieldNames())

	if err := s.writeFile(ctx, path, func(ctx context.Context, f *os.File) error {
		return s.kml.Export(ctx, f, track, placemarks, columns)
	}); err != nil {
		return err
	}
	s.log.Info().
		Str("path", path).
		Int("track_points", len(track)).
		Int("placemarks", len(placemarks)).
		Msg("kml exported")
	return nil
}

// writeFile scopes the destination file handle to one export and wraps
// every failure mode as an ExportError for that destination.
func (s *Session) writeFile(ctx context.Context, path string, write func(context.Context, *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	if err := write(ctx, f); err != nil {
		f.Close()
		return &domain.ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}
	return nil
}
