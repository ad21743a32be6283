package charts

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/aristath/allocator/internal/domain"
)

// DefaultTitle is the chart title used when Options.Title is empty.
const DefaultTitle = "Efficient Frontier: Risk vs Expected Return"

// Options controls the rendered chart.
type Options struct {
	Title  string
	Width  int
	Height int
}

const (
	defaultWidth  = 800
	defaultHeight = 500
	marginLeft    = 70
	marginRight   = 30
	marginTop     = 50
	marginBottom  = 60
	gridLines     = 5
)

// RenderFrontierSVG draws the frontier as a scatter plot: risk score on x,
// expected return (%) on y. Efficient points are filled, the rest hollow.
func RenderFrontierSVG(points []domain.FrontierPoint, opts Options) []byte {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	plotW := float64(opts.Width - marginLeft - marginRight)
	plotH := float64(opts.Height - marginTop - marginBottom)

	maxX, maxY := 0.0, 0.0
	for _, p := range points {
		maxX = math.Max(maxX, float64(p.Risk))
		maxY = math.Max(maxY, p.Return)
	}
	maxX = niceCeil(maxX)
	maxY = niceCeil(maxY)

	sx := func(v float64) float64 { return float64(marginLeft) + v/maxX*plotW }
	sy := func(v float64) float64 { return float64(marginTop) + plotH - v/maxY*plotH }

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		opts.Width, opts.Height, opts.Width, opts.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`,
		opts.Width/2, marginTop/2+5, html.EscapeString(opts.Title))

	// grid and tick labels
	for i := 0; i <= gridLines; i++ {
		xv := maxX * float64(i) / gridLines
		yv := maxY * float64(i) / gridLines
		x, y := sx(xv), sy(yv)
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%.2f" stroke="#e0e0e0"/>`,
			x, marginTop, x, float64(marginTop)+plotH)
		fmt.Fprintf(&b, `<line x1="%d" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#e0e0e0"/>`,
			marginLeft, y, float64(marginLeft)+plotW, y)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="11">%s</text>`,
			x, float64(marginTop)+plotH+18, formatTick(xv))
		fmt.Fprintf(&b, `<text x="%d" y="%.2f" text-anchor="end" font-family="sans-serif" font-size="11">%s</text>`,
			marginLeft-8, y+4, formatTick(yv))
	}

	// axes
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%.2f" stroke="#333333"/>`,
		marginLeft, marginTop, marginLeft, float64(marginTop)+plotH)
	fmt.Fprintf(&b, `<line x1="%d" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333333"/>`,
		marginLeft, float64(marginTop)+plotH, float64(marginLeft)+plotW, float64(marginTop)+plotH)
	fmt.Fprintf(&b, `<text x="%.2f" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13">Risk Score</text>`,
		float64(marginLeft)+plotW/2, opts.Height-15)
	fmt.Fprintf(&b, `<text x="20" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="13" transform="rotate(-90 20 %.2f)">Expected Return (%%)</text>`,
		float64(marginTop)+plotH/2, float64(marginTop)+plotH/2)

	efficient := make(map[[2]float64]struct{})
	for _, p := range EfficientPoints(points) {
		efficient[[2]float64{float64(p.Risk), p.Return}] = struct{}{}
	}

	for _, p := range points {
		fill := "none"
		if _, ok := efficient[[2]float64{float64(p.Risk), p.Return}]; ok {
			fill = "#1f77b4"
		}
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="5" fill="%s" stroke="#1f77b4" stroke-width="1.5"><title>tolerance %d: risk %d, return %.1f%%</title></circle>`,
			sx(float64(p.Risk)), sy(p.Return), fill, p.Tolerance, p.Risk, p.Return)
	}

	b.WriteString(`</svg>`)
	return b.Bytes()
}

// niceCeil rounds v up to the next multiple of 10, with 10 as the floor.
func niceCeil(v float64) float64 {
	if v <= 10 {
		return 10
	}
	return math.Ceil(v/10) * 10
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
