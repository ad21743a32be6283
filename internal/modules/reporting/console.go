// Package reporting renders optimizer results for people and for other programs.
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/aristath/allocator/internal/domain"
	"github.com/dustin/go-humanize"
)

// NoSelectionMessage is printed when nothing fits the constraints.
const NoSelectionMessage = "No assets selected within given constraints."

// WriteSelection prints the console summary of a selection.
func WriteSelection(w io.Writer, sel domain.Selection) error {
	if len(sel) == 0 {
		_, err := fmt.Fprintln(w, NoSelectionMessage)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selected %d assets:\n", len(sel))
	b.WriteString(strings.Join(sel.Tickers(), " "))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total Cost : ₹%s\n", humanize.Comma(int64(sel.TotalCost())))
	fmt.Fprintf(&b, "Exp Return : %.1f %%\n", sel.TotalReturn())
	fmt.Fprintf(&b, "Risk Score : %d\n", sel.TotalRisk())

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRemoved lists the assets the risk filter dropped, in removal order.
// Nothing is written for an empty list.
func WriteRemoved(w io.Writer, removed domain.Selection) error {
	if len(removed) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Dropped for risk: %s\n", strings.Join(removed.Tickers(), " "))
	return err
}
