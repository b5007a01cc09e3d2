package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/branchapp/branch/internal/media"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps a single clip upload.
const maxUploadBytes = 64 << 20

type UploadHandler struct {
	Media *media.Store
}

// UploadVideo accepts a multipart form with a "video" field and returns
// the URL the clip is served from.
func (h *UploadHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No video file uploaded.")
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No video file uploaded.")
		return
	}
	defer file.Close()

	filename, err := h.Media.Save(file, header.Header.Get("Content-Type"))
	if err != nil {
		log.Error().Err(err).Msg("store uploaded video failed")
		writeError(w, http.StatusInternalServerError, "Server error storing video.")
		return
	}

	log.Info().Str("filename", filename).Int64("bytes", header.Size).Msg("video uploaded")
	writeJSON(w, http.StatusOK, map[string]string{
		"videoUrl": "/videos/" + filename,
		"filename": filename,
	})
}

// ServeVideo streams a stored clip back to the client.
func (h *UploadHandler) ServeVideo(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	f, err := h.Media.Open(filename)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Video not found.")
			return
		}
		log.Error().Err(err).Msg("open video failed")
		writeError(w, http.StatusInternalServerError, "Server error.")
		return
	}
	defer f.Close()

	modTime := time.Time{}
	if info, err := f.Stat(); err == nil {
		modTime = info.ModTime()
	}
	http.ServeContent(w, r, filename, modTime, f)
}
