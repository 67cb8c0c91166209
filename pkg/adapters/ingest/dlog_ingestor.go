package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/ports"
)

// DlogIngestor implements ports.DlogIngestor for the .dlog on-disk format:
// either one JSON array of flat objects or newline-delimited JSON objects.
// Malformed records are skipped and counted, never fatal to the file.
type DlogIngestor struct {
	log        zerolog.Logger
	downstream ports.Downstream
}

// NewDlogIngestor creates an ingestor wired to a downstream sink.
func NewDlogIngestor(log zerolog.Logger, downstream ports.Downstream) *DlogIngestor {
	return &DlogIngestor{log: log, downstream: downstream}
}

// IngestFile parses one .dlog file by path.
func (d *DlogIngestor) IngestFile(ctx context.Context, path string) (*domain.IngestionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return d.ingest(ctx, f, filepath.Base(path))
}

// IngestStream parses one .dlog stream.
func (d *DlogIngestor) IngestStream(ctx context.Context, stream io.Reader) (*domain.IngestionResult, error) {
	return d.ingest(ctx, stream, "")
}

// batchSize is the downstream flush buffer size.
const batchSize = 100

func (d *DlogIngestor) ingest(ctx context.Context, stream io.Reader, file string) (*domain.IngestionResult, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	result := &domain.IngestionResult{}
	doc := bytes.TrimSpace(data)
	if len(doc) == 0 {
		return result, nil
	}

	b := &batcher{ingestor: d, file: file, result: result}

	// Case 1: JSON array [...]
	if doc[0] == '[' {
		if !gjson.ValidBytes(doc) {
			return result, fmt.Errorf("%s: %w: invalid JSON document", file, domain.ErrMalformedRecord)
		}
		var flushErr error
		gjson.ParseBytes(doc).ForEach(func(_, item gjson.Result) bool {
			flushErr = b.consume(ctx, item)
			return flushErr == nil
		})
		if flushErr != nil {
			return result, flushErr
		}
		return result, b.flush(ctx)
	}

	// Case 2: newline-delimited objects
	scanner := bufio.NewScanner(bytes.NewReader(doc))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			result.Total++
			result.Failed++
			perr := &domain.ParseError{File: file, Index: result.Total, Err: domain.ErrMalformedRecord}
			result.Errors = append(result.Errors, perr.Error())
			d.log.Debug().Str("file", file).Int("record", result.Total).Msg("invalid JSON line skipped")
			continue
		}
		if err := b.consume(ctx, gjson.ParseBytes(line)); err != nil {
			return result, err
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scan lines: %w", err)
	}
	return result, b.flush(ctx)
}

// batcher accumulates parsed records and flushes them downstream in blocks,
// recording each record's outcome in the shared result.
type batcher struct {
	ingestor *DlogIngestor
	file     string
	result   *domain.IngestionResult
	buffer   []domain.Record
}

// consume maps one JSON item to a Record. Empty objects are skipped,
// malformed items are counted with their reason; only downstream failures
// propagate as errors.
func (b *batcher) consume(ctx context.Context, item gjson.Result) error {
	b.result.Total++

	rec, skip, err := mapRecord(item)
	if err != nil {
		b.result.Failed++
		perr := &domain.ParseError{File: b.file, Index: b.result.Total, Err: err}
		b.result.Errors = append(b.result.Errors, perr.Error())
		b.ingestor.log.Debug().Err(err).Str("file", b.file).Int("record", b.result.Total).Msg("record skipped")
		return nil
	}
	if skip {
		b.result.Skipped++
		return nil
	}

	b.buffer = append(b.buffer, rec)
	b.result.Success++
	if len(b.buffer) >= batchSize {
		return b.flush(ctx)
	}
	return nil
}

// flush pushes the buffered records downstream.
func (b *batcher) flush(ctx context.Context) error {
	if len(b.buffer) == 0 {
		return nil
	}
	if err := b.ingestor.downstream(ctx, b.buffer); err != nil {
		return err
	}
	b.buffer = nil
	return nil
}

// --- Record Mapping ---

// mapRecord converts one flat JSON object into a domain Record. Numbers stay
// numeric with their source literal preserved; strings, booleans and any
// unknown shapes are carried as opaque text so new log schemas survive a
// round trip unchanged.
func mapRecord(item gjson.Result) (rec domain.Record, skip bool, err error) {
	if !item.IsObject() {
		return domain.Record{}, false, fmt.Errorf("%w: not a JSON object", domain.ErrMalformedRecord)
	}

	fields := make(map[string]domain.Value)
	item.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			fields[key.Str] = domain.Number(value.Num, value.Raw)
		case gjson.String:
			fields[key.Str] = domain.Text(value.Str)
		case gjson.True, gjson.False:
			fields[key.Str] = domain.Text(value.Raw)
		case gjson.Null:
			fields[key.Str] = domain.Text("")
		default:
			// Nested shapes are preserved verbatim.
			fields[key.Str] = domain.Text(value.Raw)
		}
		return true
	})
	if len(fields) == 0 {
		// Empty objects pad the source logs; they carry no sample.
		return domain.Record{}, true, nil
	}

	tcField, ok := fields[domain.FieldTimecode]
	if !ok {
		return domain.Record{}, false, fmt.Errorf("%w: missing %q field", domain.ErrMalformedRecord, domain.FieldTimecode)
	}
	tc, err := domain.ParseTimecode(tcField.Raw)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}

	return domain.Record{TC: tc, Fields: fields}, false, nil
}
