package present

import (
	"html/template"
	"io"

	"baselineexplorer/internal/catalog"
	"baselineexplorer/pkg/models"
)

var funcs = template.FuncMap{
	"categoryLabel": CategoryLabel,
	"statusLabel":   StatusLabel,
	"count": func(s catalog.Stats, c string) int {
		return s.ByCategory[models.Category(c)]
	},
}

var page = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Baseline Explorer</title></head>
<body>
{{template "stats" .Stats}}
{{template "features" .}}
</body>
</html>
{{define "stats"}}<div class="stats">
  <div class="stat"><span id="total-features">{{.Total}}</span> Total Features</div>
  <div class="stat"><span id="baseline-features">{{.Baseline}}</span> Baseline</div>
  <div class="stat"><span id="html-features">{{count . "html"}}</span> HTML</div>
  <div class="stat"><span id="css-features">{{count . "css"}}</span> CSS</div>
  <div class="stat"><span id="js-features">{{count . "javascript"}}</span> JavaScript</div>
  <div class="stat"><span id="api-features">{{count . "api"}}</span> APIs</div>
</div>{{end}}
{{define "features"}}<div id="features-container">
{{- if .LoadError}}
  <div class="loading">{{.LoadErrorMessage}}</div>
{{- else if not .Loaded}}
  <div class="loading">{{.LoadingMessage}}</div>
{{- else if not .Features}}
  <div class="loading">{{.NoResultsMessage}}</div>
{{- else}}{{range .Features}}
  <div class="feature-card" data-category="{{.Category}}" data-status="{{.Status}}">
    <h3 class="feature-name">{{.Name}}</h3>
    <span class="feature-category">{{categoryLabel .Category}}</span>
    <div class="feature-status {{.Status}}">{{statusLabel .Status}}</div>
    <p class="feature-description">{{.Description}}</p>
    <div class="feature-links"><a href="{{.MDNURL}}" target="_blank" class="feature-link">MDN Docs</a></div>
  </div>
{{- end}}{{end}}
</div>{{end}}`))

type pageData struct {
	catalog.View
	LoadErrorMessage string
	LoadingMessage   string
	NoResultsMessage string
}

func data(v catalog.View) pageData {
	return pageData{
		View:             v,
		LoadErrorMessage: LoadErrorMessage,
		LoadingMessage:   LoadingMessage,
		NoResultsMessage: NoResultsMessage,
	}
}

// Page writes the full HTML document for a view.
func Page(w io.Writer, v catalog.View) error {
	return page.ExecuteTemplate(w, "page", data(v))
}

// Features writes only the card grid, for partial refreshes.
func Features(w io.Writer, v catalog.View) error {
	return page.ExecuteTemplate(w, "features", data(v))
}
