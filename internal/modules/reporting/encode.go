package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aristath/allocator/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ContentType returns the HTTP media type of the format.
func (f Format) ContentType() string {
	if f == FormatMsgpack {
		return "application/msgpack"
	}
	return "application/json"
}

// FormatFromPath picks the export format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: unsupported export extension %q (want .json or .msgpack)", domain.ErrInvalidInput, filepath.Ext(path))
	}
}

// FormatFromAccept picks the response format from an Accept header; JSON unless msgpack is asked for.
func FormatFromAccept(accept string) Format {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if mediaType == "application/msgpack" || mediaType == "application/x-msgpack" {
			return FormatMsgpack
		}
	}
	return FormatJSON
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}

// Decode reads v from r in the given format.
func Decode(r io.Reader, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		return json.NewDecoder(r).Decode(v)
	case FormatMsgpack:
		return msgpack.NewDecoder(r).Decode(v)
	default:
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}

// Export is the document written by the CLI --export flag.
type Export struct {
	Capital       int                    `json:"capital" msgpack:"capital"`
	RiskTolerance int                    `json:"risk_tolerance" msgpack:"risk_tolerance"`
	Selected      domain.Selection       `json:"selected" msgpack:"selected"`
	Removed       domain.Selection       `json:"removed" msgpack:"removed"`
	TotalCost     int                    `json:"total_cost" msgpack:"total_cost"`
	TotalReturn   float64                `json:"total_return" msgpack:"total_return"`
	TotalRisk     int                    `json:"total_risk" msgpack:"total_risk"`
	Frontier      []domain.FrontierPoint `json:"frontier,omitempty" msgpack:"frontier,omitempty"`
}
