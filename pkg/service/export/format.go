package export

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// Format is the encoding of an exported report
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// AllFormats returns all supported formats
func AllFormats() []Format {
	return []Format{FormatJSON, FormatCSV}
}

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", goerr.Wrap(model.ErrValidation, "unsupported export format",
			goerr.V(model.ValueKey, s))
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}
