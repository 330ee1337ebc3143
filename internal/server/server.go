// Package server hosts a rendered gallery, its stylesheet and the images it
// references over HTTP.
package server

import (
	"context"
	_ "embed"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nerdneilsfield/plot-gallery/internal/config"
	"github.com/nerdneilsfield/plot-gallery/internal/gallery"
	"github.com/nerdneilsfield/plot-gallery/pkgs/constants"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"
)

//go:embed assets/trf_stylesheet.css
var defaultStylesheet []byte

const shutdownTimeout = 5 * time.Second

type Config struct {
	Listen     string
	Dir        string
	Stylesheet string
}

type Server struct {
	cfg      Config
	absDir   string
	renderer *gallery.Renderer
	css      []byte
	files    fasthttp.RequestHandler
	handler  fasthttp.RequestHandler
}

// LoadStylesheet returns the stylesheet at path, or the built-in one when
// path is empty.
func LoadStylesheet(path string) ([]byte, error) {
	if path == "" {
		return defaultStylesheet, nil
	}
	return os.ReadFile(path)
}

func New(cfg Config, renderer *gallery.Renderer) (*Server, error) {
	if err := config.ValidateListenAddr(cfg.Listen); err != nil {
		return nil, err
	}
	if cfg.Dir == "" {
		cfg.Dir = constants.DefaultDir
	}
	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, err
	}
	css, err := LoadStylesheet(cfg.Stylesheet)
	if err != nil {
		return nil, err
	}
	if renderer == nil {
		renderer = gallery.New(nil)
	}

	s := &Server{
		cfg:      cfg,
		absDir:   absDir,
		renderer: renderer,
		css:      css,
	}
	s.files = (&fasthttp.FS{
		Root:            absDir,
		AcceptByteRange: true,
		SkipCache:       true,
	}).NewRequestHandler()
	s.handler = withAccessLog(s.route)
	return s, nil
}

func (s *Server) Handler() fasthttp.RequestHandler {
	return s.handler
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:      s.handler,
		Name:         "plot-gallery",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		Logger:       log.StandardLogger(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("serving gallery: dir=%s addr=%s", s.cfg.Dir, ln.Addr())
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infof("shutting down gallery server")
		return srv.ShutdownWithContext(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.Error("Method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	switch string(ctx.Path()) {
	case "/", "/index.html":
		s.serveGallery(ctx)
	case "/" + constants.StylesheetName:
		ctx.SetContentType("text/css; charset=utf-8")
		ctx.SetBody(s.css)
	default:
		s.serveImage(ctx)
	}
}

func (s *Server) serveGallery(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/html; charset=utf-8")
	// Image sources resolve against "/", so the page lists the absolute
	// directory; a relative one such as ../plots would lose its parent.
	if err := s.renderer.Render(ctx, s.absDir); err != nil {
		log.WithError(err).Errorf("failed to render gallery: dir=%s", s.cfg.Dir)
		ctx.Error("Gallery directory unavailable", fasthttp.StatusInternalServerError)
	}
}

func (s *Server) serveImage(ctx *fasthttp.RequestCtx) {
	name, ok := s.resolveImage(string(ctx.Path()))
	if !ok {
		ctx.Error("Not found", fasthttp.StatusNotFound)
		return
	}
	ctx.Request.URI().SetPath("/" + name)
	s.files(ctx)
}

// resolveImage maps a request path to the name of a supported image that
// sits directly inside the gallery directory. Image sources on the page are
// absolute listing paths; the path without its leading slash covers
// drive-letter paths.
func (s *Server) resolveImage(requestPath string) (string, bool) {
	candidates := []string{requestPath, strings.TrimPrefix(requestPath, "/")}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(filepath.FromSlash(candidate))
		if err != nil {
			continue
		}
		if filepath.Dir(abs) != s.absDir || !gallery.Accepts(abs) {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return filepath.Base(abs), true
	}
	return "", false
}
