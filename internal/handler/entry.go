package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
)

// EntryHandler handles HTTP requests for saved password entries.
type EntryHandler struct {
	service *service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc *service.EntryService) *EntryHandler {
	return &EntryHandler{service: svc}
}

// HandleListNames handles GET /api/v1/entries requests.
// ?selection=1 prepends the empty "no selection" name.
func (h *EntryHandler) HandleListNames(w http.ResponseWriter, r *http.Request) {
	list := h.service.ListNames
	if r.URL.Query().Get("selection") == "1" {
		list = h.service.SelectionNames
	}

	names, err := list(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NamesResponse{Names: names})
}

// HandleSave handles POST /api/v1/entries requests. When password is empty a
// new one is generated from the request's generate options.
func (h *EntryHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req model.SaveEntryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	password := req.Password
	if password == "" {
		var gen model.GenerateRequest
		if req.Generate != nil {
			gen = *req.Generate
		}
		resp, err := h.service.GenerateAndSave(r.Context(), req.Name, gen)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		password = resp.Password
	} else if err := h.service.Save(r.Context(), req.Name, password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.EntryResponse{Name: req.Name, Password: password})
}

// HandleGet handles GET /api/v1/entries/{name} requests.
func (h *EntryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name, ok := entryName(w, r)
	if !ok {
		return
	}

	password, found, err := h.service.Get(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse(service.ErrEntryNotFound.Error()))
		return
	}

	writeJSON(w, http.StatusOK, model.EntryResponse{Name: name, Password: password})
}

// HandleDelete handles DELETE /api/v1/entries/{name} requests.
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := entryName(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), name); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCopy handles POST /api/v1/entries/{name}/copy requests. The password
// goes to the clipboard of the host running the server.
func (h *EntryHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	name, ok := entryName(w, r)
	if !ok {
		return
	}

	if err := h.service.Copy(r.Context(), name); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// entryName extracts the {name} parameter. chi matches on RawPath when the
// request carries one, in which case the parameter is still escaped.
func entryName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	var err error
	if r.URL.RawPath != "" {
		name, err = url.PathUnescape(name)
	}
	if err != nil || name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid entry name"))
		return "", false
	}
	return name, true
}

// writeServiceError maps store and validation errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrEntryNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(service.ErrEntryNotFound.Error()))
	case errors.Is(err, repository.ErrStorageUnavailable):
		slog.Error("password store unavailable", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse(repository.ErrStorageUnavailable.Error()))
	case errors.Is(err, repository.ErrCorruptData):
		slog.Error("password store corrupt", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(repository.ErrCorruptData.Error()))
	case errors.Is(err, clipboard.ErrUnsupported):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error()))
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
