package extract

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

// codec maps an archive extension to its stream decompressor.
type codec struct {
	ext  string
	open func(io.Reader) (io.ReadCloser, error)
}

// Recognized archive codecs. Gzip is what the loggers write; the remaining
// codecs cover re-compressed captures.
var codecs = []codec{
	{ext: ".gz", open: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	}},
	{ext: ".zst", open: func(r io.Reader) (io.ReadCloser, error) {
		return zstd.NewReader(r), nil
	}},
	{ext: ".lz4", open: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(lz4.NewReader(r)), nil
	}},
	{ext: ".sz", open: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(snappy.NewReader(r)), nil
	}},
}

// FolderExtractor implements ports.ArchiveExtractor: it decompresses every
// recognized archive of a folder into a sibling .dlog file.
type FolderExtractor struct {
	log zerolog.Logger
}

// NewFolderExtractor creates the extractor.
func NewFolderExtractor(log zerolog.Logger) *FolderExtractor {
	return &FolderExtractor{log: log}
}

// ExtractFolder decompresses all archives in the folder. Corrupt or
// unreadable archives are counted and described in the result; the
// remaining archives are still processed. A folder without archives is a
// successful no-op. Existing .dlog outputs are overwritten, so the
// operation is idempotent.
func (e *FolderExtractor) ExtractFolder(ctx context.Context, folder string) (*domain.ExtractionResult, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	result := &domain.ExtractionResult{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		c, ok := codecFor(entry.Name())
		if !ok {
			continue
		}
		result.Archives++

		src := filepath.Join(folder, entry.Name())
		dst := filepath.Join(folder, outputName(entry.Name(), c.ext))
		if err := e.extractOne(src, dst, c); err != nil {
			xerr := &domain.ExtractionError{Archive: entry.Name(), Err: err}
			result.Failed++
			result.Errors = append(result.Errors, xerr.Error())
			e.log.Warn().Err(err).Str("archive", entry.Name()).Msg("archive skipped")
			continue
		}
		result.Extracted++
		e.log.Debug().Str("archive", entry.Name()).Str("output", filepath.Base(dst)).Msg("archive extracted")
	}
	return result, nil
}

// extractOne decompresses a single archive to dst. The file handles are
// scoped to this call and released on every path.
func (e *FolderExtractor) extractOne(src, dst string, c codec) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
	}
	defer in.Close()

	zr, err := c.open(in)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
	}
	return out.Close()
}

// codecFor matches a file name against the recognized archive extensions.
func codecFor(name string) (codec, bool) {
	lower := strings.ToLower(name)
	for _, c := range codecs {
		if strings.HasSuffix(lower, c.ext) {
			return c, true
		}
	}
	return codec{}, false
}

// outputName strips the codec extension and guarantees a .dlog suffix, so
// "a.dlog.gz" and "a.gz" both extract to .dlog files alongside the archive.
func outputName(name, codecExt string) string {
	base := name[:len(name)-len(codecExt)]
	if !strings.HasSuffix(strings.ToLower(base), ".dlog") {
		base += ".dlog"
	}
	return base
}
