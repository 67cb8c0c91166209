package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

// CSVExporter implements ports.CSVExporter: one header row of the selected
// column names in stable order, then one row per record of the view.
type CSVExporter struct {
	log zerolog.Logger
}

// NewCSVExporter creates the exporter.
func NewCSVExporter(log zerolog.Logger) *CSVExporter {
	return &CSVExporter{log: log}
}

// Export writes the view. A record lacking a selected field emits an empty
// cell for that column.
func (e *CSVExporter) Export(ctx context.Context, w io.Writer, records []domain.Record, columns []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = ""
			if v, ok := rec.Get(col); ok {
				row[i] = v.String()
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	e.log.Debug().Int("rows", len(records)).Int("columns", len(columns)).Msg("csv view written")
	return nil
}
