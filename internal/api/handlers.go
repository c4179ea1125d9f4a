package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bijbelquiz.app/backend/internal/activation"
	"bijbelquiz.app/backend/internal/download"
	"bijbelquiz.app/backend/internal/logger"
	"bijbelquiz.app/backend/internal/questionbank"
)

const jsonContentType = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warn("writing response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleActivation checks the first code parameter. Without a code it lists
// the accepted codes.
func (s *Server) handleActivation(w http.ResponseWriter, r *http.Request) {
	code := activation.Normalize(r.URL.Query().Get("code"))
	if code == "" {
		writeJSON(w, http.StatusOK, map[string][]string{"codes": s.checker.Codes()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": s.checker.Valid(code)})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = s.cfg.Downloads.DefaultPlatform
	}
	name, err := download.Filename(platform)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid platform")
		return
	}

	if s.cfg.Downloads.Mode == ModeRedirect {
		s.metrics.downloads.WithLabelValues(platform, ModeRedirect).Inc()
		http.Redirect(w, r, path.Join(s.cfg.Downloads.PublicPath, name), http.StatusFound)
		return
	}

	asset, ok := s.openAsset(w, r, name)
	if !ok {
		return
	}
	defer asset.Body.Close()
	s.metrics.downloads.WithLabelValues(platform, ModeStream).Inc()

	w.Header().Set("Content-Type", download.ContentType(name))
	w.Header().Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, asset.Body); err != nil {
		logger.Log.Warn("streaming download interrupted", zap.String("file", name), zap.Error(err))
	}
}

// handleAsset serves a release file under the public download path.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	asset, ok := s.openAsset(w, r, name)
	if !ok {
		return
	}
	defer asset.Body.Close()

	w.Header().Set("Content-Type", download.ContentType(name))
	if rs, seekable := asset.Body.(io.ReadSeeker); seekable {
		http.ServeContent(w, r, name, asset.ModTime, rs)
		return
	}
	w.Header().Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, asset.Body); err != nil {
		logger.Log.Warn("serving asset interrupted", zap.String("file", name), zap.Error(err))
	}
}

func (s *Server) openAsset(w http.ResponseWriter, r *http.Request, name string) (*download.Asset, bool) {
	asset, err := s.assets.Open(r.Context(), name)
	switch {
	case errors.Is(err, download.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, "File not found")
		return nil, false
	case err != nil:
		logger.Log.Error("opening download failed", zap.String("file", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return asset, true
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	data, err := s.bank.Raw()
	switch {
	case errors.Is(err, questionbank.ErrNotFound):
		writeError(w, http.StatusNotFound, "Questions file not found")
		return
	case err != nil:
		logger.Log.Error("reading questions file failed", zap.String("path", s.bank.Path()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
