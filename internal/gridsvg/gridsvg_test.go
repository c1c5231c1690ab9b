package gridsvg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	ViewBox string    `xml:"viewBox,attr"`
	Defs    svgDefs   `xml:"defs"`
	Lines   []svgLine `xml:"line"`
	Rects   []svgRect `xml:"rect"`
	Texts   []svgText `xml:"text"`
}

type svgDefs struct {
	Style   string `xml:"style"`
	Markers []struct {
		ID string `xml:"id,attr"`
	} `xml:"marker"`
}

type svgLine struct {
	X1        int    `xml:"x1,attr"`
	Y1        int    `xml:"y1,attr"`
	X2        int    `xml:"x2,attr"`
	Y2        int    `xml:"y2,attr"`
	Class     string `xml:"class,attr"`
	MarkerEnd string `xml:"marker-end,attr"`
}

type svgRect struct {
	X    int    `xml:"x,attr"`
	Y    int    `xml:"y,attr"`
	W    int    `xml:"width,attr"`
	H    int    `xml:"height,attr"`
	Fill string `xml:"fill,attr"`
}

type svgText struct {
	X     int    `xml:"x,attr"`
	Y     int    `xml:"y,attr"`
	Class string `xml:"class,attr"`
	Body  string `xml:",chardata"`
}

func parse(t *testing.T, g Grid) svgDoc {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<?xml") {
		t.Errorf("missing XML declaration: %q", buf.String()[:20])
	}
	var doc svgDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid SVG: %v", err)
	}
	return doc
}

func TestWriteDefault(t *testing.T) {
	doc := parse(t, Default())

	if doc.ViewBox != "-60 -60 920 600" {
		t.Errorf("viewBox = %q", doc.ViewBox)
	}

	if len(doc.Defs.Markers) != 2 || !strings.Contains(doc.Defs.Style, ".grid-line") {
		t.Errorf("defs = %+v, expected stylesheet and 2 arrow markers", doc.Defs)
	}

	var grid, axes int
	for _, l := range doc.Lines {
		switch l.Class {
		case "grid-line":
			grid++
		case "axis-line":
			axes++
			if l.MarkerEnd == "" {
				t.Errorf("axis %+v has no arrow", l)
			}
		}
	}
	// 41 vertical and 25 horizontal lines
	if grid != 66 {
		t.Errorf("drew %d grid lines, expected 66", grid)
	}
	if axes != 2 {
		t.Errorf("expected 2 arrow axes, got %d", axes)
	}

	wantRects := []svgRect{
		{X: 200, Y: 100, W: 20, H: 20, Fill: "#000"},
		{X: 780, Y: 460, W: 20, H: 20, Fill: "#0f0"},
	}
	if !slices.Equal(doc.Rects, wantRects) {
		t.Errorf("rects = %+v, expected %+v", doc.Rects, wantRects)
	}

	if !slices.Contains(doc.Lines, svgLine{X1: 210, Y1: 110, X2: -50, Y2: 110}) {
		t.Error("missing leader line for (10,5)")
	}

	for _, want := range []svgText{
		{X: -45, Y: 105, Class: "special-label", Body: "(10,5)"},
		{X: 785, Y: 455, Class: "special-label", Body: "(39,23)"},
		{X: 600, Y: -5, Class: "coordinate-label", Body: "30"},
		{X: 5, Y: 465, Class: "coordinate-label", Body: "23"},
	} {
		if !slices.Contains(doc.Texts, want) {
			t.Errorf("output missing text %+v", want)
		}
	}
}

func TestWriteIsWellFormed(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatal(err)
	}

	dec := xml.NewDecoder(&buf)
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		ok   bool
	}{
		{"default", Default(), true},
		{"zero size", Grid{Cols: 0, Rows: 5, CellSize: 10}, false},
		{"zero cell", Grid{Cols: 5, Rows: 5}, false},
		{"mark outside", Grid{Cols: 5, Rows: 5, CellSize: 10, Marks: []Mark{{X: 5, Y: 0}}}, false},
		{"no marks", Grid{Cols: 2, Rows: 2, CellSize: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok expected %v", err, tt.ok)
			}
		})
	}

	var buf bytes.Buffer
	if err := Write(&buf, Grid{}); err == nil || buf.Len() != 0 {
		t.Error("Write() should refuse an invalid grid without output")
	}
}
