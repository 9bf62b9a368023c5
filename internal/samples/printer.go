package samples

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gocarina/gocsv"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, csv or table)", s)
}

// Printer writes sample output to stdout. Logs never go through it.
type Printer struct {
	w      io.Writer
	format Format
}

func NewPrinter(w io.Writer, format Format) *Printer {
	if format == "" {
		format = FormatJSON
	}
	return &Printer{w: w, format: format}
}

// Print writes v as indented JSON.
func (p *Printer) Print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// PrintOr writes raw as JSON in JSON mode and rows as a frame otherwise.
func (p *Printer) PrintOr(raw, rows any) error {
	if p.format == FormatJSON {
		return p.Print(raw)
	}
	return p.PrintFrame(rows)
}

// PrintFrame writes rows, a slice of csv-tagged structs, in the printer's
// format.
func (p *Printer) PrintFrame(rows any) error {
	switch p.format {
	case FormatCSV:
		return gocsv.Marshal(rows, p.w)
	case FormatTable:
		headers, cells := frameCells(rows)
		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers(headers...).
			Rows(cells...)
		_, err := fmt.Fprintln(p.w, t.String())
		return err
	default:
		return p.Print(rows)
	}
}

// frameCells reads headers from csv tags and formats each field with %v.
func frameCells(rows any) ([]string, [][]string) {
	v := reflect.Indirect(reflect.ValueOf(rows))
	if v.Kind() != reflect.Slice {
		return nil, nil
	}
	elem := v.Type().Elem()
	var headers []string
	var fields []int
	for i := 0; i < elem.NumField(); i++ {
		tag := strings.Split(elem.Field(i).Tag.Get("csv"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		headers = append(headers, tag)
		fields = append(fields, i)
	}
	cells := make([][]string, v.Len())
	for r := 0; r < v.Len(); r++ {
		row := make([]string, len(fields))
		for c, i := range fields {
			row[c] = fmt.Sprint(v.Index(r).Field(i).Interface())
		}
		cells[r] = row
	}
	return headers, cells
}
