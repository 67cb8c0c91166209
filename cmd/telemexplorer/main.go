package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/gripreality/TelemLogger-Explorer/pkg/adapters/export"
	"github.com/gripreality/TelemLogger-Explorer/pkg/adapters/extract"
	"github.com/gripreality/TelemLogger-Explorer/pkg/adapters/ingest"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/ports"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/services"
	"github.com/gripreality/TelemLogger-Explorer/pkg/logger"
)

type cli struct {
	LogLevel string `help:"Log level (debug|info|warn|error|silent)." default:"info"`

	Extract extractCmd `cmd:"" help:"Decompress the archives of a folder into sibling .dlog files."`
	Info    infoCmd    `cmd:"" help:"Load the .dlog files of a folder and summarize the record set."`
	Export  exportCmd  `cmd:"" help:"Load the .dlog files of a folder and export CSV and/or KML."`
}

type appEnv struct {
	log zerolog.Logger
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("telemexplorer"),
		kong.Description("Extract, explore and export .dlog telemetry logs."),
		kong.UsageOnError(),
	)
	app := &appEnv{log: logger.New(os.Stderr, c.LogLevel)}
	kctx.FatalIfErrorf(kctx.Run(app))
}

// newSession wires the adapters into a session for one working folder.
func newSession(folder string, log zerolog.Logger) *services.Session {
	return services.NewSession(
		folder,
		log,
		extract.NewFolderExtractor(log),
		func(downstream ports.Downstream) ports.DlogIngestor {
			return ingest.NewDlogIngestor(log, downstream)
		},
		export.NewCSVExporter(log),
		export.NewKMLExporter(log),
	)
}

type extractCmd struct {
	Folder string `arg:"" type:"existingdir" help:"Folder containing compressed .dlog archives."`
}

func (c *extractCmd) Run(app *appEnv) error {
	sess := newSession(c.Folder, app.log)
	result, err := sess.ExtractArchives(context.Background())
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}
	fmt.Printf("Extracted %d of %d archives\n", result.Extracted, result.Archives)
	return nil
}

type infoCmd struct {
	Folder string `arg:"" type:"existingdir" help:"Folder containing .dlog files."`
}

func (c *infoCmd) Run(app *appEnv) error {
	sess := newSession(c.Folder, app.log)
	result, err := sess.Refresh(context.Background())
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}
	fmt.Printf("Folder:  %s\n", sess.Folder())
	fmt.Printf("Files:   %d\n", sess.FileCount())
	fmt.Printf("Records: %d\n", len(sess.Records()))
	if first, last, ok := sess.Timecodes(); ok {
		fmt.Printf("First TC: %s, Last TC: %s\n", first, last)
	} else {
		fmt.Println("No timecode data in dataset")
	}
	fmt.Printf("Fields:  %s\n", strings.Join(sess.Fields(), ", "))
	return nil
}

type exportCmd struct {
	Folder string `arg:"" type:"existingdir" help:"Folder containing .dlog files."`

	CSV    string   `help:"Destination CSV file." type:"path"`
	KML    string   `help:"Destination KML file." type:"path"`
	Fields []string `sep:"," help:"Field names to export (default: all)."`

	CSVDownsample       int  `help:"Keep every Nth record in the CSV export." default:"1"`
	KMLDownsample       int  `help:"Keep every Nth record in the KML track." default:"1"`
	Placemarks          bool `help:"Add labeled point placemarks to the KML export." default:"true" negatable:""`
	PlacemarkDownsample int  `help:"Keep every Nth record for KML placemarks." default:"1"`

	From string `help:"Start timecode HH:MM:SS:FF (inclusive)."`
	To   string `help:"End timecode HH:MM:SS:FF (inclusive)."`
}

func (c *exportCmd) Run(app *appEnv) error {
	if c.CSV == "" && c.KML == "" {
		return errors.New("nothing to do: pass --csv and/or --kml")
	}

	cfg := domain.ExportConfig{
		CSVStride:       c.CSVDownsample,
		KMLStride:       c.KMLDownsample,
		AddPlacemarks:   c.Placemarks,
		PlacemarkStride: c.PlacemarkDownsample,
	}
	var err error
	if c.From != "" {
		if cfg.Range.From, err = domain.ParseTimecode(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if cfg.Range.To, err = domain.ParseTimecode(c.To); err != nil {
			return err
		}
	}
	sel := domain.NewFieldSelection(c.Fields...)

	ctx := context.Background()
	sess := newSession(c.Folder, app.log)
	result, err := sess.Refresh(ctx)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}

	if c.CSV != "" {
		if err := sess.ExportCSV(ctx, c.CSV, sel, cfg); err != nil {
			return err
		}
		fmt.Printf("CSV file exported to: %s\n", c.CSV)
	}
	if c.KML != "" {
		if err := sess.ExportKML(ctx, c.KML, sel, cfg); err != nil {
			return err
		}
		fmt.Printf("KML file exported to: %s\n", c.KML)
	}
	return nil
}
