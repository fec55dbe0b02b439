package export

import "fmt"

// Format enumerates supported export encodings.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user supplied format.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(raw); f {
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Records flattens rows following the header order.
func (d Dataset) Records() [][]string {
	out := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for i, header := range d.Headers {
			record[i] = row[header]
		}
		out = append(out, record)
	}
	return out
}
