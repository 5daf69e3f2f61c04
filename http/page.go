package http

import (
	"html/template"
	"io"
)

// page is one assembled documentation page. Nav, TOC and Body are fragments
// produced by the build and are trusted.
type page struct {
	Section string
	Title   string
	Nav     string
	TOC     string
	Body    string
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/{{.Section}}/style.css">
</head>
<body>
<header>
<input id="search" type="search" placeholder="Search" autocomplete="off" data-section="{{.Section}}" data-api="/api/search">
</header>
<nav id="navigation">{{trusted .Nav}}</nav>
<div id="results" hidden></div>
<main>{{trusted .Body}}</main>
<aside id="toc">{{trusted .TOC}}</aside>
</body>
</html>
`))

func renderPage(w io.Writer, p page) error {
	return pageTemplate.Execute(w, p)
}
