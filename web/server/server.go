package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/df07/go-sprite-raytracer/pkg/log"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

var logger = log.New("web")

const defaultScene = "cornell"

// Server handles web requests for the raytracer
type Server struct {
	port    int
	console *Console
	mux     *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:    port,
		console: NewConsole(defaultConsoleSize),
		mux:     http.NewServeMux(),
	}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/console", s.handleConsole)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start mirrors log output into the console and serves until the listener fails
func (s *Server) Start() error {
	log.SetSink(io.MultiWriter(os.Stderr, s.console))

	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleConsole returns the most recent log lines
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

// SceneConfigResponse describes a scene's recommended settings and the accepted request ranges
type SceneConfigResponse struct {
	Scene    string                 `json:"scene"`
	Defaults SceneDefaults          `json:"defaults"`
	Limits   map[string]paramLimits `json:"limits"`
}

// SceneDefaults are the recommended render settings of a scene
type SceneDefaults struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
	Seed            uint64 `json:"seed"`
}

type paramLimits struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Accepted ranges of the integer query parameters
var limits = map[string]paramLimits{
	"width":   {Min: 1, Max: 2000},
	"height":  {Min: 1, Max: 2000},
	"spp":     {Min: 1, Max: 10000},
	"depth":   {Min: 0, Max: 1000},
	"workers": {Min: 0, Max: 256},
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scene")
	if name == "" {
		name = defaultScene
	}

	sc, err := buildScene(r.URL.Query(), name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, SceneConfigResponse{
		Scene: name,
		Defaults: SceneDefaults{
			Width:           sc.Config.Width,
			Height:          sc.Config.Height,
			SamplesPerPixel: sc.Config.SamplesPerPixel,
			MaxDepth:        sc.Config.MaxDepth,
			Seed:            sc.Config.Seed,
		},
		Limits: limits,
	})
}

// buildScene builds the named scene with the seed from the query, if any
func buildScene(values url.Values, name string) (*scene.Scene, error) {
	seed, err := parseUintParam(values, "seed", renderer.DefaultConfig().Seed)
	if err != nil {
		return nil, err
	}
	return scene.Build(name, scene.Options{Seed: seed})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if limit, ok := limits[key]; ok && (parsed < limit.Min || parsed > limit.Max) {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, limit.Min, limit.Max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseUintParam parses an unsigned integer parameter from URL query
func parseUintParam(values url.Values, key string, defaultValue uint64) (uint64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
