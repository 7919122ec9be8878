package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var pageTemplate = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Header.Name}} | {{.Header.JobTitle}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;color:#1f2937}
.page{max-width:900px;margin:0 auto;padding:48px;display:flex;gap:32px}
.page.centered{text-align:center}
.sidebar{width:35%;background:{{.Accent}};color:#fff;padding:24px}
.main{flex:1}
h1{margin:0}
h2{text-transform:uppercase;letter-spacing:.1em;border-bottom:1px solid #e5e7eb;font-size:14px}
.page.accented h1,.page.accented h2{color:{{.Accent}}}
.page.accented h2{border-bottom:2px solid {{.Accent}}}
.period{color:#6b7280;font-size:12px}
.photo{width:96px;height:96px;border-radius:50%;object-fit:cover}
.initial{width:96px;height:96px;border-radius:50%;display:flex;align-items:center;justify-content:center;font-size:40px;background:#e5e7eb}
.placeholder{opacity:.5}
</style>
</head>
<body>
<div class="page {{.Layout}}{{if .Centered}} centered{{end}}{{if .Accented}} accented{{end}}" data-template="{{.TemplateID}}">
{{- if .TwoColumn}}
<aside class="sidebar">
{{- template "avatar" .}}
{{- range .Sidebar}}{{template "section" .}}{{end}}
</aside>
{{- end}}
<main class="main">
<header>
{{- if not .TwoColumn}}{{template "avatar" .}}{{end}}
<h1>{{.Header.Name}}</h1>
<p>{{.Header.JobTitle}}</p>
<ul class="contact">
{{- range .Header.Contact}}
<li class="{{.Kind}}{{if .Placeholder}} placeholder{{end}}">{{.Value}}</li>
{{- end}}
</ul>
</header>
{{- range .Main}}{{template "section" .}}{{end}}
</main>
</div>
</body>
</html>
{{define "avatar"}}
{{- if .Photo}}<img class="photo" src="{{.Photo}}" alt="{{.Header.Name}}">{{else if .Header.Initial}}<div class="initial">{{.Header.Initial}}</div>{{end}}
{{- end}}
{{define "section"}}
<section id="{{.ID}}">
<h2>{{.Title}}</h2>
{{- range .Items}}
<div class="item">
{{- if .Heading}}<h3>{{if .Link}}<a href="{{.Link}}">{{.Heading}}</a>{{else}}{{.Heading}}{{end}}</h3>{{end}}
{{- if .Subheading}}<p>{{.Subheading}}</p>{{end}}
{{- if .Period}}<p class="period">{{.Period}}</p>{{end}}
{{- if .Body}}<p>{{.Body}}</p>{{end}}
</div>
{{- end}}
</section>
{{- end}}`))

type page struct {
	Document
	Photo template.URL
	// TwoColumn pages carry the avatar in the sidebar, even when no sidebar section has content.
	TwoColumn bool
}

// HTML renders doc as a standalone page.
func HTML(doc Document) ([]byte, error) {
	view := page{Document: doc, TwoColumn: doc.Layout == TwoColumn}
	// html/template rejects data: URLs, but inline images are stored that way.
	if photo := doc.Header.Photo; strings.HasPrefix(photo, "data:image/") ||
		strings.HasPrefix(photo, "https://") || strings.HasPrefix(photo, "http://") {
		view.Photo = template.URL(photo)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute portfolio template: %w", err)
	}
	return buf.Bytes(), nil
}
