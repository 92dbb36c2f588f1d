package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/output"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string // Scene name (e.g., "cornell")
	Config renderer.Config
	Format output.Format // Response image encoding
}

// handleRender renders a full frame and responds with the encoded image. The
// render is cancelled when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sc, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rt, err := sc.NewRaytracer(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	logger.Infof("render request: scene %s, %dx%d, %d spp", req.Scene, req.Config.Width, req.Config.Height, req.Config.SamplesPerPixel)
	fb, stats, err := rt.Render(r.Context())
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) && errors.Is(err, context.Canceled) {
			logger.Infof("client went away, render of %s cancelled after %d pixels", req.Scene, stats.TotalPixels)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, fb, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write image: %v", err)
	}
}

// parseRenderRequest builds the requested scene and applies query overrides to its recommended config
func parseRenderRequest(values url.Values) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	sc, err := buildScene(values, req.Scene)
	if err != nil {
		return nil, nil, err
	}

	config := sc.Config
	if config.Width, err = parseIntParam(values, "width", config.Width); err != nil {
		return nil, nil, err
	}
	if config.Height, err = parseIntParam(values, "height", config.Height); err != nil {
		return nil, nil, err
	}
	if config.SamplesPerPixel, err = parseIntParam(values, "spp", config.SamplesPerPixel); err != nil {
		return nil, nil, err
	}
	if config.MaxDepth, err = parseIntParam(values, "depth", config.MaxDepth); err != nil {
		return nil, nil, err
	}
	if config.Workers, err = parseIntParam(values, "workers", config.Workers); err != nil {
		return nil, nil, err
	}
	if name := values.Get("strategy"); name != "" {
		if config.Strategy, err = renderer.ParseStrategy(name); err != nil {
			return nil, nil, err
		}
	}
	if name := values.Get("emission"); name != "" {
		if config.Emission, err = integrator.ParseEmissionMode(name); err != nil {
			return nil, nil, err
		}
	}
	req.Config = config

	req.Format = output.FormatPNG
	if name := values.Get("format"); name != "" {
		if req.Format, err = output.ParseFormat(name); err != nil {
			return nil, nil, fmt.Errorf("invalid format: %w", err)
		}
	}

	return req, sc, nil
}
