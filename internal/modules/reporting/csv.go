package reporting

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/aristath/allocator/internal/domain"
)

// WriteFrontierCSV writes frontier points with a tolerance,risk,expected_return header.
func WriteFrontierCSV(w io.Writer, points []domain.FrontierPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tolerance", "risk", "expected_return"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Tolerance),
			strconv.Itoa(p.Risk),
			strconv.FormatFloat(p.Return, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
