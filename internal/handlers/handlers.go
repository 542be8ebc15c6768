// Package handlers provides HTTP handlers for the image-to-PDF API.
//
// This package contains the HTTP endpoints for session management, image
// upload, ordering and removal, PDF generation and download.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, generator, validator)
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"go-imagepdf/internal/intake"
	"go-imagepdf/internal/layout"
	"go-imagepdf/internal/pdf"
	"go-imagepdf/internal/probe"
	"go-imagepdf/internal/session"
	"go-imagepdf/internal/utils"

	"github.com/go-chi/chi/v5"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	Generator      *pdf.Generator
	Validator      intake.Validator
}

func NewAPIHandler(sm *session.SessionManager, gen *pdf.Generator, v intake.Validator) *APIHandler {
	return &APIHandler{SessionManager: sm, Generator: gen, Validator: v}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func (h *APIHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, exists := h.SessionManager.GetSession(chi.URLParam(r, "sessionID"))
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
	}
	return s, exists
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new image-to-PDF session and returns a session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.SessionManager.CreateSession()
	writeJSON(w, map[string]string{"sessionId": s.ID})
}

// DeleteSession godoc
// @Summary      Delete a session
// @Description  Drops the session with its images and generated document
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID} [delete]
func (h *APIHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.SessionManager.DeleteSession(s.ID)
	writeJSON(w, map[string]bool{"success": true})
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Appends a JPEG, PNG or WEBP image to the session
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        image      formData  file    true  "Image file"
// @Success      200  {object}  session.Image
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/images [post]
func (h *APIHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	maxUploadSize := h.Validator.MaxSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.Validator.MaxSize+1))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	name := utils.SanitizeFilename(handler.Filename)
	contentType := intake.DetectContentType(data)
	if err := h.Validator.Validate(name, contentType, int64(len(data))); err != nil {
		switch {
		case errors.Is(err, intake.ErrTooLarge):
			http.Error(w, "File too large", http.StatusBadRequest)
		default:
			http.Error(w, "Only JPG, JPEG, PNG and WEBP images are allowed", http.StatusBadRequest)
		}
		return
	}

	dims, err := probe.ProbeBytes(r.Context(), data)
	if err != nil {
		http.Error(w, "Uploaded file is not a valid image", http.StatusBadRequest)
		return
	}

	img := s.AddImage(&session.Image{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       dims.Width,
		Height:      dims.Height,
		Data:        data,
	})
	writeJSON(w, img)
}

// ListImages godoc
// @Summary      List images
// @Description  Lists the session images in page order
// @Tags         images
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {array}   session.Image
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/images [get]
func (h *APIHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.Images())
}

// UpdateOrder godoc
// @Summary      Set image order
// @Description  Sets the page order; the list must contain every image ID once
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        images     body      object  true  "{ images: [string] }"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/order [put]
func (h *APIHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var order struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid image order data", http.StatusBadRequest)
		return
	}
	if err := s.Reorder(order.Images); err != nil {
		http.Error(w, "Invalid image in order list", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// MoveImage godoc
// @Summary      Move an image
// @Description  Moves one image to a zero-based page index, shifting the images in between
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        imageID    path  string  true  "Image ID"
// @Param        position   body  object  true  "{ index: int }"
// @Success      200  {array}   session.Image
// @Failure      400  {string}  string  "Invalid position"
// @Failure      404  {string}  string  "Session or image not found"
// @Router       /api/sessions/{sessionID}/images/{imageID}/position [put]
func (h *APIHandler) MoveImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var position struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil || position.Index == nil {
		http.Error(w, "Invalid position data", http.StatusBadRequest)
		return
	}
	if err := s.Move(chi.URLParam(r, "imageID"), *position.Index); err != nil {
		switch {
		case errors.Is(err, session.ErrImageNotFound):
			http.Error(w, "Image not found", http.StatusNotFound)
		default:
			http.Error(w, "Invalid position", http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, s.Images())
}

// RemoveImage godoc
// @Summary      Remove an image
// @Tags         images
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        imageID    path  string  true  "Image ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {string}  string  "Session or image not found"
// @Router       /api/sessions/{sessionID}/images/{imageID} [delete]
func (h *APIHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveImage(chi.URLParam(r, "imageID")); err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// ClearImages godoc
// @Summary      Remove all images
// @Tags         images
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/images [delete]
func (h *APIHandler) ClearImages(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Clear()
	writeJSON(w, map[string]bool{"success": true})
}

// GeneratePDF godoc
// @Summary      Generate the PDF
// @Description  Builds one PDF page per image in the current order and returns a download URL
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string       true   "Session ID"
// @Param        options    body  pdf.Options  false  "Orientation, fill mode, file name and encoding"
// @Success      200  {object}  map[string]interface{}  "{ downloadUrl: string, fileName: string, pages: int, bytes: int }"
// @Failure      400  {string}  string  "No images or invalid options"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "Generation already in progress or images changed meanwhile"
// @Failure      500  {string}  string  "Could not generate document"
// @Router       /api/sessions/{sessionID}/actions/generate [post]
func (h *APIHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var opts pdf.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid options", http.StatusBadRequest)
		return
	}
	if err := validateOptions(opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	images, ok := s.BeginGenerate()
	if !ok {
		http.Error(w, "Generation already in progress", http.StatusConflict)
		return
	}

	sources := make([]pdf.Source, len(images))
	for i, img := range images {
		sources[i] = pdf.Source{Name: img.Name, Data: img.Data, Size: img.Size}
	}

	var buf bytes.Buffer
	res, err := h.Generator.Generate(r.Context(), sources, opts, &buf)
	if err != nil {
		s.FinishGenerate(nil)
		if errors.Is(err, pdf.ErrEmptyInput) {
			http.Error(w, "No images to process", http.StatusBadRequest)
			return
		}
		log.Printf("Error generating PDF for session %s: %v", s.ID, err)
		http.Error(w, "Could not generate document", http.StatusInternalServerError)
		return
	}

	out := &session.Output{
		ID:        utils.GenerateUUID(),
		FileName:  res.FileName,
		Data:      buf.Bytes(),
		CreatedAt: time.Now(),
	}
	if !s.FinishGenerate(out) {
		http.Error(w, "Images changed during generation", http.StatusConflict)
		return
	}
	log.Printf("Generated %s for session %s: %d pages, %d bytes", res.FileName, s.ID, res.Pages, res.Bytes)

	writeJSON(w, map[string]any{
		"downloadUrl": fmt.Sprintf("/api/sessions/%s/files/%s.pdf", s.ID, out.ID),
		"fileName":    res.FileName,
		"pages":       res.Pages,
		"bytes":       res.Bytes,
	})
}

func validateOptions(opts pdf.Options) error {
	if _, err := layout.ParseOrientation(string(opts.Orientation)); err != nil {
		return err
	}
	if _, err := layout.ParseFillMode(string(opts.FillMode)); err != nil {
		return err
	}
	_, err := pdf.ParseEncoding(string(opts.Encoding))
	return err
}

// DownloadFile godoc
// @Summary      Download the generated PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        sessionID  path      string  true  "Session ID"
// @Param        filename   path      string  true  "File name from the download URL"
// @Success      200  {file}  file  "PDF file download"
// @Failure      403  {string}  string  "Unauthorized access to file"
// @Failure      404  {string}  string  "Session or file not found"
// @Router       /api/sessions/{sessionID}/files/{filename} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	out, exists := s.Output()
	if !exists {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if chi.URLParam(r, "filename") != out.ID+".pdf" {
		http.Error(w, "Unauthorized access to file", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Disposition", utils.AttachmentHeader(out.FileName))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, out.FileName, out.CreatedAt, bytes.NewReader(out.Data))
}
