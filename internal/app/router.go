package app

import (
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/solivera/gatekeeper/internal/auth"
	"github.com/solivera/gatekeeper/internal/platform/httpx"
	"github.com/solivera/gatekeeper/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	AuthHandler *auth.Handler
}

// NewRouter constructs the chi.Router with gatekeeper defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", serveHome(params.Logger))
	r.Get("/home", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Asset routes kept at their legacy paths. CSS and JS types are pinned;
	// images are typed by extension with content sniffing as fallback. The
	// image route answers both spellings the legacy site used.
	r.Get("/request/images/{name}", serveAsset("static/image", ""))
	r.Get("/request/imagens/{name}", serveAsset("static/image", ""))
	r.Get("/request/css/{name}", serveAsset("static/css", "text/css; charset=utf-8"))
	r.Get("/request/js/{name}", serveAsset("static/scripts", "application/javascript"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "")
	})

	return r
}

func serveHome(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(web.Pages, "home.html")
		if err != nil {
			logger.Error("read home page", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// serveAsset delivers a single embedded asset from dir. Assets are public and
// immutable within a deploy, so they get a short browser cache.
func serveAsset(dir, ctype string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Base(chi.URLParam(r, "name"))
		data, err := fs.ReadFile(web.Static, path.Join(dir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		contentType := ctype
		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(name))
		}
		if contentType == "" {
			contentType = mimetype.Detect(data).String()
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(data)
	}
}
