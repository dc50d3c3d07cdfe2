package server

import (
	"io"
	"net/http"

	"docuchat/internal/app"
)

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	userEmail := r.FormValue("user_email")
	if !s.blockedGate(w, r, userEmail) {
		return
	}
	if userEmail == "" {
		writeAppError(w, app.ErrUserEmailRequired)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, app.ErrNoFileProvided)
		return
	}
	defer file.Close()

	// The payload is stored verbatim; no sniffing and no size cap.
	data, err := io.ReadAll(file)
	if err != nil {
		writeAppError(w, err)
		return
	}
	doc, err := s.app.UploadDocument(userEmail, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"file_size":   doc.FileSize,
		"uploaded_at": doc.UploadedAt,
	})
}
