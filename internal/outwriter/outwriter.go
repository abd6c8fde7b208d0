// Package outwriter renders aggregated analysis results to the terminal or a file.
package outwriter

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
	"golang.org/x/term"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// pageTmpl wraps the concatenated plugin fragments into a standalone page.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>visulog report</title>
</head>
<body>
<h1>visulog report</h1>
{{.Body}}
</body>
</html>
`))

// WriteReport writes the aggregated result in the configured output mode.
// An empty output file path routes the report to stdout.
func WriteReport(result *schema.AnalyzerResult, cfg *contract.RunConfig, duration time.Duration) error {
	switch cfg.Output {
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHTMLReport(w, result)
		}, "Report saved")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextReport(w, result, cfg, duration)
		}, "Report saved")
	}
}

// writeTextReport writes the plain-text report with a ruled header.
func writeTextReport(w io.Writer, result *schema.AnalyzerResult, cfg *contract.RunConfig, duration time.Duration) error {
	width := GetReportWidth(cfg)
	ruler := strings.Repeat("=", width)

	header := fmt.Sprintf("visulog report (%d plugins)", result.Len())
	if cfg.Color && w == os.Stdout {
		header = headerColor.Sprint(header)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", header, ruler); err != nil {
		return err
	}
	if _, err := io.WriteString(w, result.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\nCompleted in %s\n", ruler, duration.Round(time.Millisecond)); err != nil {
		return err
	}
	return nil
}

// writeHTMLReport wraps the concatenated HTML fragments into a page.
func writeHTMLReport(w io.Writer, result *schema.AnalyzerResult) error {
	// Fragments are already rendered and escaped by the plugins.
	return pageTmpl.Execute(w, struct{ Body template.HTML }{
		Body: template.HTML(result.HTML()),
	})
}

// GetReportWidth returns the ruler width for text reports, honoring the
// width override before falling back to terminal detection.
func GetReportWidth(cfg *contract.RunConfig) int {
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return 80
	}
	if detectedWidth > 120 {
		return 120
	}
	return detectedWidth
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}
