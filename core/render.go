package core

import (
	"html/template"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// fragmentTmpl renders one plugin result as an HTML fragment. Kept as a
// single template so every built-in plugin produces the same markup shape.
var fragmentTmpl = template.Must(template.New("fragment").Parse(
	`<div class="visulog-{{.Class}}"><h2>{{.Title}}</h2><table>` +
		`<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>` +
		`{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}` +
		`</table></div>`))

// fragmentData is the input for fragmentTmpl.
type fragmentData struct {
	Class   string
	Title   string
	Headers []string
	Rows    [][]string
}

// tableResult is the common result shape of the built-in plugins: a
// titled table rendered as text or as an HTML fragment.
type tableResult struct {
	class   string
	title   string
	headers []string
	rows    [][]string
}

// String implements schema.Result.
func (r *tableResult) String() string {
	var b strings.Builder
	b.WriteString(r.title)
	b.WriteString("\n")

	table := tablewriter.NewWriter(&b)
	table.Header(r.headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(r.rows); err != nil {
		return r.title + "\n"
	}
	if err := table.Render(); err != nil {
		return r.title + "\n"
	}
	return b.String()
}

// HTML implements schema.Result.
func (r *tableResult) HTML() string {
	var b strings.Builder
	_ = fragmentTmpl.Execute(&b, fragmentData{
		Class:   r.class,
		Title:   r.title,
		Headers: r.headers,
		Rows:    r.rows,
	})
	return b.String()
}
