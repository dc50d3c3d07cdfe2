package server

import (
	"encoding/csv"
	"net/http"
	"strconv"
)

const exportTimeFormat = "2006-01-02 15:04:05"

func (s *Server) handleAdminExportUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := s.app.ListUsers()
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Email", "Created At", "AI Usage Count", "AI Tokens Used", "Is Blocked"})
	for _, u := range users {
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Email,
			u.CreatedAt.Format(exportTimeFormat),
			strconv.Itoa(u.AIUsageCount),
			strconv.FormatInt(u.AITokensUsed, 10),
			strconv.FormatBool(u.IsBlocked),
		})
	}
	cw.Flush()
}

func (s *Server) handleAdminExportDocuments(w http.ResponseWriter, _ *http.Request) {
	docs, err := s.app.ListDocuments()
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "User ID", "Filename", "File Type", "File Size", "Uploaded At"})
	for _, d := range docs {
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(d.ID), 10),
			strconv.FormatUint(uint64(d.UserID), 10),
			d.Filename,
			d.FileType,
			strconv.FormatInt(d.FileSize, 10),
			d.UploadedAt.Format(exportTimeFormat),
		})
	}
	cw.Flush()
}
