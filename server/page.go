package server

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
)

type pageData struct {
	States   []string
	Selected string
	Search   string
	AllLabel string
	Dash     *engine.Dashboard
}

var pageFuncs = template.FuncMap{
	"width": func(v, max float64) string {
		if max <= 0 {
			return "0"
		}
		pct := v / max * 100
		if pct > 100 {
			pct = 100
		}
		return fmt.Sprintf("%.1f", pct)
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(pageHTML))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		States:   engine.States(s.view()),
		Selected: q.Get("state"),
		Search:   q.Get("q"),
		AllLabel: engine.AllStatesLabel,
	}
	data.Dash = s.build(data.Selected, data.Search)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("❌ Pulse: render page: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Aadhaar Pulse</title>
<style>
body{background:#0b1120;color:#e2e8f0;font-family:system-ui,sans-serif;margin:0;padding:24px}
h1{color:#00f2ff;margin:0 0 16px}
form{display:flex;gap:8px;margin-bottom:24px}
select,input,button{background:#111827;color:#e2e8f0;border:1px solid #334155;padding:6px 10px;border-radius:6px}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(180px,1fr));gap:12px;margin-bottom:24px}
.card{background:#111827;border:1px solid #1e293b;border-radius:10px;padding:14px}
.card .value{font-size:1.6em;font-weight:600}
.card.good .value{color:#4ade80}.card.bad .value{color:#ff4b4b}
.card .sub{color:#94a3b8;font-size:.85em}
.rankings{display:grid;grid-template-columns:repeat(auto-fit,minmax(320px,1fr));gap:16px;margin-bottom:24px}
.ranking{background:#111827;border-radius:10px;padding:12px}
.bar{display:flex;align-items:center;gap:8px;font-size:.85em;margin:3px 0}
.bar .label{width:140px;overflow:hidden;white-space:nowrap;text-overflow:ellipsis}
.bar .track{flex:1;background:#1e293b;border-radius:4px;height:10px}
.bar .fill{height:10px;border-radius:4px}
table{width:100%;border-collapse:collapse;font-size:.9em}
th,td{padding:6px 8px;border-bottom:1px solid #1e293b;text-align:left}
.empty{color:#94a3b8;padding:40px;text-align:center}
a{color:#00f2ff}
</style>
</head>
<body>
<h1>Aadhaar Pulse</h1>
<form method="get" action="/">
  <select name="state" onchange="this.form.submit()">
    <option value="">{{.AllLabel}}</option>
    {{range .States}}<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{if not .Dash.IsState}}<input type="search" name="q" value="{{.Search}}" placeholder="Search districts">{{end}}
  <button type="submit">Apply</button>
  <a href="/api/export.xlsx?state={{.Selected}}">Export xlsx</a>
</form>

{{if .Dash.Empty}}
<div class="empty">No data available for this view.</div>
{{else}}
<section class="cards">
  {{range .Dash.Cards}}
  <div class="card {{.Tone}}">
    <div class="sub">{{.Title}}</div>
    <div class="value">{{.Value}}{{.Unit}}</div>
    <div class="sub">{{.Subtext}}</div>
  </div>
  {{end}}
</section>

<section class="rankings">
  {{range $c := .Dash.Charts}}
  <div class="ranking">
    <h3>{{$c.Title}}</h3>
    {{range $s := $c.Series}}{{range $s.Data}}
    <div class="bar">
      <span class="label">{{.Label}}</span>
      <span class="track"><span class="fill" style="display:block;width:{{width .Value $c.Max}}%;background:{{$s.Color}}"></span></span>
      <span>{{printf "%.1f" .Value}}</span>
    </div>
    {{end}}{{end}}
    <a href="/api/charts/{{$c.ID}}.png?state={{$.Selected}}">PNG</a>
  </div>
  {{end}}
</section>
{{end}}

{{with .Dash.Table}}
<h2>{{.Title}}</h2>
<table>
  <thead><tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
  <tbody>
  {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
  </tbody>
</table>
{{end}}
</body>
</html>
`
