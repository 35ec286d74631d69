// Package student contains the HTTP handlers for the student record
// resource — the thin boundary between the UI and the registry core.
//
// Handlers use the factory/closure pattern: each exported function
// takes the registry service once at route-registration time and
// returns the http.HandlerFunc that runs per request. Handlers only
// decode input, call the service, and translate its results (records
// or typed errors) into JSON notifications; no business rule lives
// here.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"studentregistry/internal/registry"
	"studentregistry/internal/storage"
	"studentregistry/internal/types"
	"studentregistry/internal/utils/response"
)

// Create handles POST /api/students.
// Decodes a submission with no editing id, runs it through the
// lifecycle, and returns 201 with the persisted record on success.
func Create(svc *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student record")

		input, ok := decodeSubmitInput(w, r)
		if !ok {
			return
		}
		input.EditingID = 0

		record, err := svc.Submit(input)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		slog.Info("student record created", slog.Int64("id", record.ID))
		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"status":  response.StatusOK,
			"message": "student record added successfully",
			"record":  record,
		})
	}
}

// Update handles PUT /api/students/{id}.
// Replaces all fields of an existing record.
func Update(svc *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student record", slog.Int64("id", id))

		input, ok := decodeSubmitInput(w, r)
		if !ok {
			return
		}
		input.EditingID = id

		record, err := svc.Submit(input)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		slog.Info("student record updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":  response.StatusOK,
			"message": "student record updated successfully",
			"record":  record,
		})
	}
}

// GetByID handles GET /api/students/{id}.
// Used by the UI to pre-populate the form when entering edit mode.
func GetByID(svc *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student record", slog.Int64("id", id))

		record, err := svc.Lookup(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting student record",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, record)
	}
}

// Search handles GET /api/students.
// With no q parameter it lists every record; with q it returns the
// records whose fullname, student ID, or course contains q,
// case-insensitively. Always returns a JSON array, [] when nothing
// matches.
func Search(svc *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		slog.Info("searching student records", slog.String("q", query))

		records, err := svc.Search(query)
		if err != nil {
			slog.Error("error searching student records", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, records)
	}
}

// Delete handles DELETE /api/students/{id}.
// The confirmation dialog is the UI's concern; by the time this runs
// the user has already confirmed. Deleting an id that is already gone
// still returns 200 — delete is idempotent.
func Delete(svc *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student record", slog.Int64("id", id))

		if err := svc.Delete(id); err != nil {
			slog.Error("error deleting student record",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student record deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":  response.StatusOK,
			"message": "student record deleted successfully",
		})
	}
}

// Meta handles GET /api/meta.
// Serves the constrained option sets the UI renders as form dropdowns.
func Meta() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"courses":    types.Courses,
			"yearLevels": types.YearLevels,
		})
	}
}

// pathID parses the {id} path segment. On failure it writes the 400
// response itself and returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

// decodeSubmitInput decodes the JSON request body. On failure it
// writes the 400 response itself and returns ok=false.
func decodeSubmitInput(w http.ResponseWriter, r *http.Request) (registry.SubmitInput, bool) {
	var input registry.SubmitInput

	err := json.NewDecoder(r.Body).Decode(&input)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return registry.SubmitInput{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return registry.SubmitInput{}, false
	}

	return input, true
}

// writeSubmitError maps the registry's error taxonomy onto HTTP
// statuses: user-correctable problems are 400, a vanished record is
// 404, anything else is a store failure and 500.
func writeSubmitError(w http.ResponseWriter, err error) {
	var verr *registry.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
	case errors.Is(err, storage.ErrDuplicateStudentID):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		slog.Error("error submitting student record", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
