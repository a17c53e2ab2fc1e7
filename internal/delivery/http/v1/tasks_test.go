package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prathmeshai01/task-manager/internal/repository"
	"github.com/prathmeshai01/task-manager/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryTaskRepository()
	taskService := services.NewTaskService(zerolog.Nop(), repo)
	handler := New(zerolog.Nop(), taskService)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	api := router.Group("/api")
	api.GET("/tasks", handler.HandleListTasks)
	api.GET("/tasks/:id", handler.HandleGetTask)
	api.POST("/tasks", handler.HandleCreateTask)
	api.PUT("/tasks/:id", handler.HandleUpdateTask)
	api.DELETE("/tasks/:id", handler.HandleDeleteTask)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createTask(t *testing.T, router *gin.Engine, body string) int64 {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/tasks", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body %s", w.Code, w.Body.String())
	}
	return int64(decodeBody(t, w)["id"].(float64))
}

func TestCreateTaskEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, http.MethodPost, "/api/tasks",
		`{"title":"Buy milk","priority":"high","category":"Errands"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201; body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["message"] != "task created successfully" {
		t.Errorf("message = %v", body["message"])
	}
	task := body["task"].(map[string]any)
	if task["status"] != "pending" {
		t.Errorf("status = %v, want pending", task["status"])
	}
	if task["priority"] != "high" {
		t.Errorf("priority = %v, want high", task["priority"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestCreateTaskEndpointValidation(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"","priority":"medium"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422; body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	fields := body["errors"].(map[string]any)
	if _, ok := fields["title"]; !ok {
		t.Errorf("expected a title error, got %v", fields)
	}
}

func TestCreateTaskEndpointMalformedJSON(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", w.Code)
	}
}

func TestCreateTaskEndpointIgnoresUnknownFields(t *testing.T) {
	router := newTestRouter()

	id := createTask(t, router, `{"title":"Buy milk","owner":"someone","is_admin":true}`)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if _, ok := body["owner"]; ok {
		t.Error("unknown field was persisted")
	}
}

func TestGetTaskEndpointNotFound(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, http.MethodGet, "/api/tasks/42", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/tasks/not-a-number", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("non-numeric id: got status %d, want 404", w.Code)
	}
}

func TestUpdateTaskEndpoint(t *testing.T) {
	router := newTestRouter()
	id := createTask(t, router, `{"title":"Buy milk"}`)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), `{"status":"completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200; body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "completed" {
		t.Errorf("status = %v, want completed", body["status"])
	}
	if body["title"] != "Buy milk" {
		t.Errorf("title = %v, want unchanged", body["title"])
	}
}

func TestUpdateTaskEndpointNotFound(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, http.MethodPut, "/api/tasks/42", `{"title":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	router := newTestRouter()
	id := createTask(t, router, `{"title":"Buy milk"}`)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if decodeBody(t, w)["message"] != "task deleted successfully" {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: got status %d, want 404", w.Code)
	}

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: got status %d, want 404", w.Code)
	}
}

func TestListTasksEndpoint(t *testing.T) {
	router := newTestRouter()
	createTask(t, router, `{"title":"Report","category":"Work"}`)
	createTask(t, router, `{"title":"Buy milk","category":"Errands"}`)

	w := doRequest(t, router, http.MethodGet, "/api/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	var all []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d tasks, want 2", len(all))
	}

	w = doRequest(t, router, http.MethodGet, "/api/tasks?category=Work", "")
	var filtered []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(filtered) != 1 || filtered[0]["title"] != "Report" {
		t.Errorf("category filter returned %v", filtered)
	}
}
