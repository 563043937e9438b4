package http

import (
	"io"
	"io/fs"
	"net/http"

	"fintrack/internal/web"
)

// serveFileFS backports http.ServeFileFS, which requires Go 1.22+.
func serveFileFS(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), rs)
}

// HandleHealth returns a simple health check response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// HandleLandingPage serves the landing page.
// Dev only - static HTML file serving.
func HandleLandingPage(w http.ResponseWriter, r *http.Request) {
	serveFileFS(w, r, web.FS, "landing.html")
}

// HandleLoginPage serves the login page.
// Dev only - static HTML file serving.
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	serveFileFS(w, r, web.FS, "login.html")
}

// HandleTrackerPage serves the tracker dashboard page.
// Dev only - static HTML file serving.
func HandleTrackerPage(w http.ResponseWriter, r *http.Request) {
	serveFileFS(w, r, web.FS, "tracker.html")
}
