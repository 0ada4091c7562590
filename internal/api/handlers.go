package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tgrayson/strata"
	"github.com/tgrayson/strata/model"
)

// structureResponse is the envelope returned by POST /api/structure.
type structureResponse struct {
	Document *model.DocumentResult `json:"document"`
	Warnings []string              `json:"warnings"`
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", ext), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	ext := strata.OpenBytes(data).Workers(s.cfg.Workers)

	// Per-request overrides on top of the service defaults.
	ocrEnabled := s.cfg.OCREnabled
	if v := r.FormValue("ocr"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			ocrEnabled = b
		}
	}
	if ocrEnabled {
		lang := s.cfg.OCRLanguage
		if v := r.FormValue("lang"); v != "" {
			lang = v
		}
		ext = ext.OCRLanguage(lang)
	}
	if r.FormValue("tables") == "false" {
		ext = ext.DisableTables()
	}

	result, warnings, err := ext.Structure()
	if err != nil {
		s.log.Error("structuring failed", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if len(warnings) > 0 {
		s.log.Warn("structuring produced warnings",
			"filename", header.Filename,
			"count", len(warnings),
		)
	}

	resp := structureResponse{
		Document: result,
		Warnings: make([]string, 0, len(warnings)),
	}
	for _, warning := range warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}

	body, err := sonic.Marshal(resp)
	if err != nil {
		jsonError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body, _ := sonic.Marshal(map[string]string{"error": msg})
	w.Write(body)
}
