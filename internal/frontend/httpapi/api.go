// Package httpapi exposes the character service over HTTP under /api, with a
// signed session cookie identifying each client.
package httpapi

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/NYTimes/gziphandler"
	"go.uber.org/zap"

	"github.com/cory-johannsen/swn-chargen/internal/chargen"
	"github.com/cory-johannsen/swn-chargen/internal/config"
	"github.com/cory-johannsen/swn-chargen/internal/game/character"
)

// Upload error messages returned to clients.
const (
	msgNoFilePart     = "No file part"
	msgNoSelectedFile = "No selected file"
	msgNotJSONFile    = "File must be a JSON file"
	msgInvalidJSON    = "Invalid JSON format"
	msgUploadTooLarge = "File too large"
	msgInvalidBody    = "Invalid request body"
	msgNoCharacter    = "No character found"
)

// gzipMinSize is the smallest response body worth compressing.
const gzipMinSize = 256

// API routes HTTP requests to a chargen.Service.
type API struct {
	svc       *chargen.Service
	cookies   *SessionCookies
	origins   []string
	maxUpload int64
	logger    *zap.Logger
}

// NewAPI creates an API.
//
// Precondition: svc, cookies, and logger must be non-nil; upload.MaxBytes must be positive.
func NewAPI(svc *chargen.Service, cookies *SessionCookies, cors config.CORSConfig, upload config.UploadConfig, logger *zap.Logger) *API {
	return &API{
		svc:       svc,
		cookies:   cookies,
		origins:   cors.AllowedOrigins,
		maxUpload: upload.MaxBytes,
		logger:    logger,
	}
}

// Handler returns the full middleware-wrapped route tree.
//
// Postcondition: returns a non-nil handler or a gzip configuration error.
func (a *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealth)
	mux.HandleFunc("GET /api/new-character", a.handleNewCharacter)
	mux.HandleFunc("GET /api/character", a.handleGetCharacter)
	mux.HandleFunc("GET /api/roll-attributes", a.handleRollAttributes)
	mux.HandleFunc("POST /api/change-attribute", a.handleChangeAttribute)
	mux.HandleFunc("POST /api/set-detail", a.handleSetDetail)
	mux.HandleFunc("POST /api/upload-character", a.handleUploadCharacter)
	mux.HandleFunc("GET /api/download-character", a.handleDownloadCharacter)

	compress, err := gziphandler.NewGzipLevelAndMinSize(gzip.DefaultCompression, gzipMinSize)
	if err != nil {
		return nil, fmt.Errorf("configuring gzip: %w", err)
	}
	return requestLogging(a.logger, cors(a.origins, compress(mux))), nil
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleNewCharacter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.NewCharacter(a.cookies.Key(w, r)))
}

func (a *API) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.GetCharacter(a.cookies.Key(w, r)))
}

func (a *API) handleRollAttributes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.RollAttributes(a.cookies.Key(w, r)))
}

type changeAttributeRequest struct {
	Attribute string `json:"attribute"`
}

func (a *API) handleChangeAttribute(w http.ResponseWriter, r *http.Request) {
	key := a.cookies.Key(w, r)
	var req changeAttributeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, msgInvalidBody)
		return
	}
	out, err := a.svc.ChangeAttribute(key, req.Attribute)
	if err != nil {
		writeError(w, errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type setDetailRequest struct {
	Detail string `json:"detail"`
	Value  string `json:"value"`
}

func (a *API) handleSetDetail(w http.ResponseWriter, r *http.Request) {
	key := a.cookies.Key(w, r)
	var req setDetailRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, msgInvalidBody)
		return
	}
	out, err := a.svc.SetDetail(key, req.Detail, req.Value)
	if err != nil {
		writeError(w, errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleUploadCharacter(w http.ResponseWriter, r *http.Request) {
	key := a.cookies.Key(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, msgUploadTooLarge)
			return
		}
		writeError(w, msgNoFilePart)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" with an empty filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeError(w, msgNoSelectedFile)
			return
		}
		writeError(w, msgNoFilePart)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, msgNoSelectedFile)
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".json") {
		writeError(w, msgNotJSONFile)
		return
	}
	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, msgInvalidJSON)
		return
	}
	out, err := a.svc.UploadJSON(key, raw)
	if err != nil {
		writeError(w, errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleDownloadCharacter(w http.ResponseWriter, r *http.Request) {
	body, err := a.svc.DownloadCharacter(a.cookies.Key(w, r))
	if err != nil {
		writeError(w, errorMessage(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+chargen.DownloadFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// errorMessage renders a core error for clients.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, chargen.ErrNoCharacterFound):
		return msgNoCharacter
	case errors.Is(err, character.ErrMalformedInput):
		return msgInvalidJSON
	default:
		return err.Error()
	}
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
