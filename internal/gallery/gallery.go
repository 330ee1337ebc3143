// Package gallery renders the image files of a directory as an HTML page of
// thumbnail buttons.
package gallery

import (
	"bytes"
	"html/template"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/plot-gallery/pkgs/constants"
	"github.com/samber/lo"
)

// Item is one image shown in the gallery. Path is the listing path and Src
// the same path written as a relative URL reference.
type Item struct {
	Path string
	Src  template.URL
	Alt  string
}

type page struct {
	Title      string
	Stylesheet string
	ListID     string
	Items      []Item
}

var pageTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="{{.Stylesheet}}">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<ul id="{{.ListID}}">
{{range .Items}}<li><button type="button"><img src="{{.Src}}" alt="{{.Alt}}"></button></li>
{{end}}</ul>
</body>
</html>
`))

// Filter keeps the entries with a supported extension, in their original order.
func Filter(entries []string) []Item {
	accepted := lo.Filter(entries, func(entry string, _ int) bool {
		return Accepts(entry)
	})
	return lo.Map(accepted, func(entry string, _ int) Item {
		return Item{Path: entry, Src: SourceURL(entry), Alt: constants.ImageAltText}
	})
}

// SourceURL turns a listing path into a URL reference naming the same file.
// Every segment is percent-escaped, and a leading segment holding a colon
// gets a "./" prefix so it cannot be read as a scheme.
func SourceURL(path string) template.URL {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	src := strings.Join(segments, "/")
	if strings.Contains(segments[0], ":") {
		src = "./" + src
	}
	return template.URL(src)
}

// Renderer lists a directory on every call and renders it. It holds no
// per-render state and is safe for concurrent use.
type Renderer struct {
	lister Lister
}

// New returns a Renderer backed by lister, or by GlobLister when lister is nil.
func New(lister Lister) *Renderer {
	if lister == nil {
		lister = GlobLister{}
	}
	return &Renderer{lister: lister}
}

// Items lists dir and returns the entries that belong in its gallery.
func (r *Renderer) Items(dir string) ([]Item, error) {
	entries, err := r.lister.List(dir)
	if err != nil {
		return nil, err
	}
	return Filter(entries), nil
}

// Render writes the gallery page for dir to w. Nothing is written when
// listing the directory fails.
func (r *Renderer) Render(w io.Writer, dir string) error {
	items, err := r.Items(dir)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := RenderItems(buf, items); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderString returns the gallery page for dir.
func (r *Renderer) RenderString(dir string) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.Render(buf, dir); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderItems writes the page shell around items.
func RenderItems(w io.Writer, items []Item) error {
	return pageTemplate.Execute(w, page{
		Title:      constants.PageTitle,
		Stylesheet: constants.StylesheetName,
		ListID:     constants.GalleryID,
		Items:      items,
	})
}
