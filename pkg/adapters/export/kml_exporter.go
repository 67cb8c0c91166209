package export

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rs/zerolog"
	kml "github.com/twpayne/go-kml/v2"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

const (
	documentName  = "Telemetry Data"
	pointStyleID  = "placemark-point"
	pointIconHref = "http://maps.google.com/mapfiles/kml/shapes/placemark_circle.png"
)

// KMLExporter implements ports.KMLExporter: one LineString track built from
// the track view's positions plus, when a placemark view is supplied, one
// labeled point placemark per record of that view.
type KMLExporter struct {
	log zerolog.Logger
}

// NewKMLExporter creates the exporter.
func NewKMLExporter(log zerolog.Logger) *KMLExporter {
	return &KMLExporter{log: log}
}

// Export writes the KML document. Records without a usable position are
// skipped with a warning; a track view with no positioned records at all
// cannot build geometry and fails.
func (e *KMLExporter) Export(ctx context.Context, w io.Writer, track, placemarks []domain.Record, columns []string) error {
	coords := make([]kml.Coordinate, 0, len(track))
	skipped := 0
	for _, rec := range track {
		p, ok := rec.Position()
		if !ok {
			skipped++
			continue
		}
		coords = append(coords, kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude, Alt: p.Altitude})
	}
	if len(coords) == 0 {
		return domain.ErrMissingPosition
	}
	if skipped > 0 {
		e.log.Warn().Int("records", skipped).Msg("records without position excluded from track")
	}

	doc := kml.Document(
		kml.Name(documentName),
		kml.SharedStyle(pointStyleID,
			kml.IconStyle(
				kml.Scale(0.5),
				kml.Icon(kml.Href(pointIconHref)),
			),
		),
	)

	for _, rec := range placemarks {
		p, ok := rec.Position()
		if !ok {
			continue
		}
		doc.Add(e.placemark(rec, p, columns))
	}

	doc.Add(kml.Placemark(
		kml.Name("Track"),
		kml.LineString(
			kml.Tessellate(true),
			kml.Coordinates(coords...),
		),
	))

	return kml.KML(doc).WriteIndent(w, "", "  ")
}

// placemark builds one labeled point: named by timecode, described by the
// record's selected non-position fields, which also ride along as
// ExtendedData entries.
func (e *KMLExporter) placemark(rec domain.Record, p domain.Position, columns []string) kml.Element {
	pm := kml.Placemark(
		kml.Name(rec.TC.String()),
		kml.Description(description(rec, columns)),
		kml.StyleURL("#"+pointStyleID),
	)
	if data := extendedData(rec, columns); len(data) > 0 {
		pm.Add(kml.ExtendedData(data...))
	}
	pm.Add(kml.Point(
		kml.Coordinates(kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude, Alt: p.Altitude}),
	))
	return pm
}

// metaField reports whether the column is carried by the placemark itself
// (name and geometry) rather than repeated as data.
func metaField(col string) bool {
	switch col {
	case domain.FieldTimecode, domain.FieldLatitude, domain.FieldLongitude, domain.FieldAltitude:
		return true
	}
	return false
}

// description lists the selected fields as "name: value" lines. Position
// fields and the timecode are omitted; the timecode is the placemark name.
func description(rec domain.Record, columns []string) string {
	var b strings.Builder
	b.WriteString("Timecode: " + rec.TC.String())
	for _, col := range columns {
		if metaField(col) {
			continue
		}
		if v, ok := rec.Get(col); ok {
			b.WriteString("\n" + col + ": " + v.String())
		}
	}
	return b.String()
}

// extendedData builds one named Data element per selected non-position
// field present on the record.
func extendedData(rec domain.Record, columns []string) []kml.Element {
	var data []kml.Element
	for _, col := range columns {
		if metaField(col) {
			continue
		}
		if v, ok := rec.Get(col); ok {
			data = append(data, namedData(col, v.String()))
		}
	}
	return data
}

// namedData builds a <Data name="..."> element. The generated Data
// constructor takes no name attribute, so the element is assembled from
// the library's exported parts.
func namedData(name, value string) kml.Element {
	return &kml.CompoundElement{
		StartElement: xml.StartElement{
			Name: xml.Name{Local: "Data"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: name}},
		},
		Children: []kml.Element{kml.Value(value)},
	}
}
