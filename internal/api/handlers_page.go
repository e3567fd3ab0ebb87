package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/page"
)

// pageData holds the data passed to the page template.
type pageData struct {
	Title    string
	Status   page.Status
	Error    string
	Version  string
	Nav      []*doctree.NavNode
	Sections []template.HTML
}

// handlePage renders the document. Loading, error, and content states
// are mutually exclusive.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.coord.Snapshot()
	data := pageData{
		Title:   s.cfg.SiteTitle,
		Status:  snap.Status,
		Error:   snap.Error,
		Version: snap.Version,
		Nav:     s.coord.Nav(""),
	}
	for _, sec := range snap.Sections {
		// Produced by the configured renderer, which escapes raw input.
		data.Sections = append(data.Sections, template.HTML(sec.HTML))
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		s.log.Error("page render failed", "error", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if eq .Status "loading" "idle"}}<meta http-equiv="refresh" content="1">{{end}}
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/highlight.css">
<style>
body { margin: 0; font-family: system-ui, sans-serif; line-height: 1.5; }
nav.sidebar { position: fixed; top: 0; bottom: 0; width: 260px; overflow-y: auto; padding: 1rem; border-right: 1px solid #ddd; }
nav.sidebar ul { list-style: none; padding-left: 0; }
nav.sidebar ul ul { padding-left: 1rem; }
nav.sidebar a { display: block; padding: .2rem .4rem; color: #234; text-decoration: none; border-radius: 4px; }
nav.sidebar a.active { background: #0d6efd; color: #fff; }
main { margin-left: 300px; padding: 1rem 2rem; max-width: 900px; }
.card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem 1.5rem; margin-bottom: 1.5rem; }
.error { border: 1px solid #dc3545; background: #f8d7da; padding: 1rem; border-radius: 6px; }
pre { overflow-x: auto; padding: .75rem; border-radius: 4px; }
</style>
</head>
<body>
<nav class="sidebar">
<h5>{{.Title}}</h5>
<ul>
{{- range .Nav}}
{{- if .Group}}
<li><span class="group">{{.Label}}</span>
<ul>
{{- range .Children}}
<li><a href="{{.Href}}" data-id="{{.ID}}">{{.Label}}</a></li>
{{- end}}
</ul></li>
{{- else}}
<li><a href="{{.Href}}" data-id="{{.ID}}">{{.Label}}</a></li>
{{- end}}
{{- end}}
</ul>
<button id="reload" type="button">Reload</button>
</nav>
<main>
{{- if eq .Status "ready"}}
{{- range .Sections}}
<section class="card">{{.}}</section>
{{- end}}
{{- else if eq .Status "failed"}}
<div class="error" role="alert"><strong>Could not load the document.</strong> {{.Error}}</div>
{{- else}}
<p class="loading">Loading…</p>
{{- end}}
</main>
<script>
(function () {
  var links = document.querySelectorAll('nav.sidebar a[data-id]');
  function highlight(id) {
    links.forEach(function (a) { a.classList.toggle('active', id !== '' && a.dataset.id === id); });
  }
  function measure() {
    var anchors = {};
    document.querySelectorAll('main [id]').forEach(function (el) {
      // Repeated ids resolve to the first element, as getElementById does.
      if (!(el.id in anchors)) { anchors[el.id] = el.getBoundingClientRect().top + window.scrollY; }
    });
    return { scroll_y: window.scrollY, anchors: anchors };
  }
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws/scroll');
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'active') { highlight(msg.active_id); }
  };
  ws.onopen = function () { ws.send(JSON.stringify(measure())); };
  window.addEventListener('scroll', function () {
    if (ws.readyState === WebSocket.OPEN) { ws.send(JSON.stringify(measure())); }
  }, { passive: true });
  window.addEventListener('pagehide', function () { ws.close(); });
  document.getElementById('reload').addEventListener('click', function () {
    fetch('/api/reload', { method: 'POST' }).finally(function () { location.reload(); });
  });
})();
</script>
</body>
</html>
`
