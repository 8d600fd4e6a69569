package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TariqTawalbeh/employees-board/api/middleware"
	"github.com/TariqTawalbeh/employees-board/internal/access"
	"github.com/TariqTawalbeh/employees-board/internal/users"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubUsersService struct {
	list       []users.UserSummary
	listErr    error
	getResp    *users.UserDTO
	getErr     error
	createResp *users.UserDTO
	createErr  error
	updateResp *users.UserDTO
	updateErr  error
	deleteErr  error

	updateActor  access.Actor
	updateTarget uuid.UUID
}

func (s *stubUsersService) List(context.Context) ([]users.UserSummary, error) {
	return s.list, s.listErr
}

func (s *stubUsersService) Get(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return s.getResp, s.getErr
}

func (s *stubUsersService) Create(context.Context, users.CreateParams) (*users.UserDTO, error) {
	return s.createResp, s.createErr
}

func (s *stubUsersService) Update(_ context.Context, actor access.Actor, id uuid.UUID, _ users.UpdateParams) (*users.UserDTO, error) {
	s.updateActor = actor
	s.updateTarget = id
	return s.updateResp, s.updateErr
}

func (s *stubUsersService) Delete(context.Context, uuid.UUID) error {
	return s.deleteErr
}

func routedRequest(t *testing.T, method, path, body string, handler http.HandlerFunc, actor *access.Actor) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	switch method {
	case http.MethodGet:
		r.Get("/api/v1/users/{userId}", handler)
	case http.MethodPut:
		r.Put("/api/v1/users/{userId}", handler)
	case http.MethodDelete:
		r.Delete("/api/v1/users/{userId}", handler)
	}

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUsersListWrapsPayload(t *testing.T) {
	svc := &stubUsersService{list: []users.UserSummary{
		{ID: uuid.New(), Name: "A", Email: "a@example.com", RoleID: enums.RoleMember},
	}}

	rec := httptest.NewRecorder()
	UsersList(svc, nil)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string][]users.UserSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(body["users"]) != 1 {
		t.Fatalf("expected users array, got %v", body)
	}
}

func TestUsersGetMapsNotFound(t *testing.T) {
	svc := &stubUsersService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}

	rec := routedRequest(t, http.MethodGet, "/api/v1/users/"+uuid.NewString(), "", UsersGet(svc, nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUsersGetRejectsMalformedID(t *testing.T) {
	rec := routedRequest(t, http.MethodGet, "/api/v1/users/not-a-uuid", "", UsersGet(&stubUsersService{}, nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}

func TestUsersCreateReturns201(t *testing.T) {
	svc := &stubUsersService{createResp: &users.UserDTO{
		ID:     uuid.New(),
		Name:   "New",
		Email:  "new@example.com",
		RoleID: enums.RoleMember,
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users",
		strings.NewReader(`{"name":"New","email":"new@example.com","password":"long-enough-pw","role_id":2}`))
	rec := httptest.NewRecorder()
	UsersCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUsersUpdatePassesActorAndTarget(t *testing.T) {
	target := uuid.New()
	actor := access.Actor{ID: target, Role: enums.RoleMember}
	svc := &stubUsersService{updateResp: &users.UserDTO{ID: target, Name: "Renamed"}}

	rec := routedRequest(t, http.MethodPut, "/api/v1/users/"+target.String(),
		`{"name":"Renamed"}`, UsersUpdate(svc, nil), &actor)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updateActor.ID != actor.ID {
		t.Fatalf("expected actor to reach service")
	}
	if svc.updateTarget != target {
		t.Fatalf("expected target %s, got %s", target, svc.updateTarget)
	}
}

func TestUsersUpdateWithoutActorIs401(t *testing.T) {
	rec := routedRequest(t, http.MethodPut, "/api/v1/users/"+uuid.NewString(),
		`{"name":"Renamed"}`, UsersUpdate(&stubUsersService{}, nil), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUsersUpdateMapsForbidden(t *testing.T) {
	actor := access.Actor{ID: uuid.New(), Role: enums.RoleAdministrator}
	svc := &stubUsersService{updateErr: pkgerrors.New(pkgerrors.CodeForbidden, "users may only update their own record")}

	rec := routedRequest(t, http.MethodPut, "/api/v1/users/"+uuid.NewString(),
		`{"name":"Renamed"}`, UsersUpdate(svc, nil), &actor)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUsersDeleteReturnsMessage(t *testing.T) {
	rec := routedRequest(t, http.MethodDelete, "/api/v1/users/"+uuid.NewString(), "",
		UsersDelete(&stubUsersService{}, nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("expected confirmation message, got %v", body)
	}
}

func TestUsersDeleteMapsNotFound(t *testing.T) {
	svc := &stubUsersService{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}

	rec := routedRequest(t, http.MethodDelete, "/api/v1/users/"+uuid.NewString(), "", UsersDelete(svc, nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
