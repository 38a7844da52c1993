package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
)

// FileHandler serves downloadable files from a configured directory.
type FileHandler struct {
	dir    string
	logger *slog.Logger
}

// NewFileHandler creates a FileHandler serving files from dir. An empty dir
// disables the endpoint. If logger is nil, the default logger is used.
func NewFileHandler(dir string, logger *slog.Logger) *FileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileHandler{
		dir:    dir,
		logger: logger.With(slog.String("component", "file_handler")),
	}
}

// Download handles GET /api/v1/files/{fileId}. The file id is a bare file
// name inside the configured directory; path traversal is rejected.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.dir == "" {
		shared.RespondWithError(w, r, http.StatusNotFound, "File downloads are not enabled")
		return
	}

	fileID := chi.URLParam(r, "fileId")
	if fileID == "" || fileID != filepath.Base(fileID) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid file ID")
		return
	}

	path := filepath.Join(h.dir, fileID)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.logger.ErrorContext(r.Context(), "failed to stat file",
				slog.String("file_id", fileID),
				slog.String("error", err.Error()))
		}
		shared.RespondWithError(w, r, http.StatusNotFound, "File not found")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileID))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fileID))

	http.ServeFile(w, r, path)
}
