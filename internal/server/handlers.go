package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/matzehuels/pathviz/pkg/buildinfo"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/plot"
	"github.com/matzehuels/pathviz/pkg/scene"
)

// CacheHeader reports whether the artifact was served from the cache.
const CacheHeader = "X-Cache"

const contentTypeTOML = "application/toml"

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.cfg.Logger.With("request_id", RequestIDFromContext(ctx))

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatPNG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeCodedError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body exceeds limit")
			return
		}
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "read request body")
		return
	}

	sc, err := scene.Decode(body, sceneFormat(r))
	if err != nil {
		s.writeCodedError(w, r, err)
		return
	}

	res, err := s.cfg.Runner.Execute(ctx, sc, pipeline.Options{
		Formats:  []string{format},
		CellSize: s.cfg.CellSize,
		Color:    s.cfg.Color,
		Engine:   r.URL.Query().Get("engine"),
	})
	if err != nil {
		if !errors.IsInputError(err) {
			logger.Error("render failed", "kind", sc.Kind, "format", format, "err", err)
		}
		s.writeCodedError(w, r, err)
		return
	}

	cache := "miss"
	if res.CacheInfo.AllHit() {
		cache = "hit"
	}
	w.Header().Set("Content-Type", plot.ContentType(format))
	w.Header().Set(CacheHeader, cache)
	w.Header().Set("ETag", `"`+res.SceneHash+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// sceneFormat picks the body decoder from Content-Type; JSON unless TOML is named.
func sceneFormat(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && (mt == contentTypeTOML || mt == "text/toml") {
		return scene.FormatTOML
	}
	return scene.FormatJSON
}

// statusFor maps error codes to HTTP status. Well-formed scenes that
// reference impossible geometry are 422; malformed requests are 400.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidCell, errors.ErrCodeMissingPosition, errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidColour, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidScene, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeCodedError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		code = string(errors.ErrCodeInternal)
		msg = "render failed"
	}
	writeError(w, r, status, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
