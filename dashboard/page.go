package dashboard

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.tiles { display: grid; grid-template-columns: repeat(auto-fill, minmax(180px, 1fr)); gap: 1rem; }
.tile { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; }
.tile .label { color: #666; font-size: 0.9rem; }
.tile .value { font-size: 1.6rem; font-weight: bold; }
.charts { display: grid; grid-template-columns: repeat(auto-fill, minmax(480px, 1fr)); gap: 1rem; margin-top: 2rem; }
.charts iframe { width: 100%; height: 420px; border: 0; }
.notice { color: #a60; }
.error { color: #c00; font-size: 1.2rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}
<p class="error">{{.Error}}</p>
{{else}}
<div class="tiles">
{{range .View.Tiles}}<div class="tile"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>
<div class="charts">
{{range .View.Report.Series}}<iframe title="{{.Title}}" src="/charts/{{.ID}}"></iframe>
{{end}}</div>
{{range .View.Report.Skipped}}<p class="notice">{{.ID}}: {{.Reason}}</p>
{{end}}
<details><summary>지금 우리는</summary><p>ㅠㅠ</p></details>
{{end}}
</body>
</html>
`))

type pageData struct {
	Title string
	View  View
	Error string
}

// RenderPage writes the dashboard page for view.
func RenderPage(w io.Writer, view View) error {
	return pageTemplate.Execute(w, pageData{Title: PageTitle, View: view})
}

// RenderErrorPage writes the page with only the title and message, no tiles
// or charts.
func RenderErrorPage(w io.Writer, message string) error {
	return pageTemplate.Execute(w, pageData{Title: PageTitle, Error: message})
}
