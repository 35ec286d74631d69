package student

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentregistry/internal/config"
	"studentregistry/internal/registry"
	"studentregistry/internal/storage/sqlite"
	"studentregistry/internal/types"
)

// newTestRouter wires the handlers exactly as main does, backed by a
// throwaway SQLite file.
func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	store, err := sqlite.New(&config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "students.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Db.Close() })

	svc := registry.New(store)

	router := http.NewServeMux()
	router.HandleFunc("POST /api/students", Create(svc))
	router.HandleFunc("GET /api/students", Search(svc))
	router.HandleFunc("GET /api/students/{id}", GetByID(svc))
	router.HandleFunc("PUT /api/students/{id}", Update(svc))
	router.HandleFunc("DELETE /api/students/{id}", Delete(svc))
	router.HandleFunc("GET /api/meta", Meta())
	return router
}

func doJSON(t *testing.T, router *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]string {
	return map[string]string{
		"studentId": "S1",
		"fullname":  "Ann Lee",
		"email":     "a@b.com",
		"course":    "BSIT",
		"yearLevel": "1",
	}
}

func TestCreateReturnsCreatedRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Record  types.StudentRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, int64(1), resp.Record.ID)
	assert.Equal(t, "Ann Lee", resp.Record.Fullname)
}

func TestCreateEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/students", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body is empty")
}

func TestCreateValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	body := validBody()
	body["email"] = "not-an-email"

	rec := doJSON(t, router, http.MethodPost, "/api/students", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "field email")
}

func TestCreateDuplicateStudentID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/students", validBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestGetByID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.StudentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "S1", got.StudentID)
}

func TestGetByIDNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/students/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByIDInvalidID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/students/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid id")
}

func TestUpdateRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := validBody()
	body["fullname"] = "Ann Park"

	rec = doJSON(t, router, http.MethodPut, "/api/students/1", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.StudentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Ann Park", got.Fullname)
}

func TestUpdateVanishedRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/students/42", validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/students/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/students/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchListsAndFilters(t *testing.T) {
	router := newTestRouter(t)

	for i, sid := range []string{"S1", "S2"} {
		body := validBody()
		body["studentId"] = sid
		body["email"] = fmt.Sprintf("u%d@b.com", i)
		if sid == "S2" {
			body["course"] = "BSCS"
		}
		rec := doJSON(t, router, http.MethodPost, "/api/students", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []types.StudentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/students?q=bscs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var filtered []types.StudentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "S2", filtered[0].StudentID)
}

func TestMetaServesOptionSets(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/meta", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Courses    []string `json:"courses"`
		YearLevels []string `json:"yearLevels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, types.Courses, meta.Courses)
	assert.Equal(t, types.YearLevels, meta.YearLevels)
}

func TestSearchEmptyStoreReturnsEmptyArray(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
