package visualization

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/timesheet/internal/document"
)

type Visualizer struct {
	tmpl *template.Template
}

func New() *Visualizer {
	funcs := template.FuncMap{
		"logo": func(l document.Logo) template.HTML {
			return template.HTML(LogoSVG(l))
		},
		"shaded": func(i int) bool { return i == document.ShadedColumn },
		"columns": func() []string { return document.Columns },
		"rest": func() []int {
			// cells after the Day column
			idx := make([]int, len(document.Columns)-1)
			for i := range idx {
				idx[i] = i + 1
			}
			return idx
		},
		"signatures": func() []string { return document.Signatures },
		"categories": func() []string { return document.StaffCategories },
	}
	return &Visualizer{
		tmpl: template.Must(template.New("preview").Funcs(funcs).Parse(previewTemplate)),
	}
}

// LogoSVG draws the header mark: the Cygnet word mark, or a neutral
// LOGO placeholder.
func LogoSVG(l document.Logo) string {
	if l == document.LogoCygnet {
		return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 120" width="112" height="45" role="img" aria-label="Cygnet Logo">
  <rect x="10" y="10" width="280" height="100" rx="15" ry="15" fill="#2e6bac"/>
  <text x="150" y="68" font-family="Arial, sans-serif" font-size="50" font-weight="bold" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">Cygnet</text>
</svg>`
	}
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 120" width="112" height="45" role="img" aria-label="Placeholder Logo">
  <rect x="10" y="10" width="280" height="100" rx="15" ry="15" fill="#F0F0F0" stroke="#2e6bac" stroke-width="4"/>
  <text x="150" y="68" font-family="Arial, sans-serif" font-size="55" font-weight="bold" fill="#2e6bac" text-anchor="middle" dominant-baseline="middle" letter-spacing="2px">LOGO</text>
  <line x1="10" y1="110" x2="290" y2="110" stroke="#2e6bac" stroke-width="2" stroke-opacity="0.5"/>
</svg>`
}

// GenerateHTMLPreview renders every page of doc as an A4 sized block with the
// page identifier as its element id.
func (v *Visualizer) GenerateHTMLPreview(doc *document.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("no document to preview")
	}
	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

// GenerateWeekSVG draws a small strip of the month: one cell per day, working
// days filled, page 2 days outlined in the accent colour.
func (v *Visualizer) GenerateWeekSVG(doc *document.Document) string {
	cell := 18
	padding := 10

	var cells strings.Builder
	x := padding
	for _, p := range doc.Pages {
		stroke := "#2c3e50"
		if p.Number > 1 {
			stroke = "#E74C3C"
		}
		for _, w := range p.Weeks {
			for _, d := range w.Days {
				fill := "#4CAF50"
				if d.IsWeekend() {
					fill = "#E0E0E0"
				}
				cells.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`,
					x, padding, cell-2, cell-2, fill, stroke))
				x += cell
			}
		}
	}

	width := x + padding
	height := cell + 2*padding
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">%s</svg>`,
		width, height, width, height, cells.String())
}

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; background: #e4e8ec; }
    .pdf-page { width: 210mm; min-height: 297mm; margin: 10mm auto; padding: 12mm; box-sizing: border-box; background: #ffffff; color: #000; position: relative; }
    header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 16px; }
    h1 { font-size: 20px; margin: 0; text-align: right; flex: 1; }
    h3 { font-size: 13px; margin: 0 0 4px; }
    .staff { display: flex; gap: 24px; font-size: 12px; border-bottom: 2px solid #9ca3af; padding-bottom: 8px; margin-bottom: 12px; }
    .boxes { display: flex; gap: 16px; font-size: 12px; margin-bottom: 12px; }
    .line { display: inline-block; border-bottom: 1px solid #6b7280; min-width: 150px; }
    table { width: 100%; border-collapse: collapse; font-size: 10px; }
    th, td { border: 1px solid #9ca3af; padding: 6px 8px; text-align: left; }
    .shaded { background: #d1d5db; }
    .total { font-weight: bold; background: #bbf7d0; }
    .sign { display: flex; justify-content: space-between; font-size: 10px; margin: 6px 0 12px; }
    footer { font-size: 9px; border-top: 2px solid #9ca3af; padding-top: 12px; margin-top: 16px; }
    .deadline { color: #dc2626; font-weight: 600; }
  </style>
</head>
<body>
{{- $doc := . }}
{{- range .Pages}}
  <div id="{{.ID}}" class="pdf-page">
    <header>
      {{logo $doc.Logo}}
      <h1>{{$doc.Heading}}</h1>
    </header>
    {{- if .Staff.Compact}}
    <div class="staff"><span><b>Name:</b> {{.Staff.NameOrBlank}}</span><span><b>Position:</b> {{.Staff.PositionOrBlank}}</span></div>
    {{- else}}
    <div class="staff"><span><b>Name:</b> <span class="line">{{.Staff.Name}}</span></span><span><b>Position:</b> <span class="line">{{.Staff.Position}}</span></span></div>
    <div class="boxes">{{range categories}}<span>&#9744; {{.}}</span>{{end}}</div>
    {{- end}}
    {{- range .Weeks}}
    <section>
      <h3>{{.Title}}</h3>
      <table>
        <tr>{{range $i, $c := columns}}<th{{if shaded $i}} class="shaded"{{end}}>{{$c}}</th>{{end}}</tr>
        {{- range .Rows}}
        <tr><td><b>{{.}}</b></td>{{range rest}}<td{{if shaded .}} class="shaded"{{end}}></td>{{end}}</tr>
        {{- end}}
        <tr class="total"><td>TOTAL HOURS:</td><td colspan="8"></td></tr>
      </table>
      <div class="sign"><span>Authorised by: <span class="line"></span></span><span>Date: <span class="line"></span></span></div>
    </section>
    {{- end}}
    {{- with .Footer}}
    <footer>
      <p>These Timesheet needs to be signed by <span class="deadline">({{.Deadline}})</span>. Please ensure all hours are in for last day of payroll as stated above, it is your responsibility to ensure all hours are completed by the deadline. Any hours submitted after the allocated date will not be paid until the following month.</p>
      <p>{{.Property}}</p>
      <div class="sign">{{range signatures}}<span>{{.}} <span class="line"></span></span>{{end}}</div>
    </footer>
    {{- end}}
  </div>
{{- end}}
</body>
</html>
`
