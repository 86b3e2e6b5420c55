package news_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-api/internal/common/pagination"
	"news-api/internal/domain/entity"
	newsHandler "news-api/internal/handler/http/news"
	"news-api/internal/repository"
	"news-api/internal/resource"
	newsUC "news-api/internal/usecase/news"
)

/* ───────── スタブ ───────── */

type stubService struct {
	createFn func(context.Context, newsUC.CreateInput) (*entity.News, error)
	getFn    func(context.Context, int64) (*entity.News, error)
	listFn   func(context.Context, repository.NewsCriteria, pagination.Params) (*newsUC.PaginatedResult, error)
	updateFn func(context.Context, newsUC.UpdateInput) (*entity.News, error)
}

func (s *stubService) Create(ctx context.Context, in newsUC.CreateInput) (*entity.News, error) {
	return s.createFn(ctx, in)
}

func (s *stubService) Get(ctx context.Context, id int64) (*entity.News, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) List(ctx context.Context, c repository.NewsCriteria, p pagination.Params) (*newsUC.PaginatedResult, error) {
	return s.listFn(ctx, c, p)
}

func (s *stubService) Update(ctx context.Context, in newsUC.UpdateInput) (*entity.News, error) {
	return s.updateFn(ctx, in)
}

/* ───────── ヘルパ ───────── */

var stamp = time.Date(2025, 7, 19, 9, 0, 0, 0, time.UTC)

func sample(id int64) *entity.News {
	return &entity.News{
		ID:        id,
		Title:     "Launch Update",
		Content:   "Service goes live today.",
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

func newMux(svc newsHandler.Service, res resource.Config) *http.ServeMux {
	mux := http.NewServeMux()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	newsHandler.Register(mux, svc, res, pagination.Config{DefaultPage: 1, ItemsPerPage: res.ItemsPerPage}, logger)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

/* ───────── 1. POST /news ───────── */

func TestCreate_Success(t *testing.T) {
	var got newsUC.CreateInput
	svc := &stubService{createFn: func(_ context.Context, in newsUC.CreateInput) (*entity.News, error) {
		got = in
		return sample(1), nil
	}}

	rec := serve(newMux(svc, resource.Default()), http.MethodPost, "/news",
		`{"title":"Launch Update","content":"Service goes live today.","extra":"ignored"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/news/1", rec.Header().Get("Location"))
	require.NotNil(t, got.Title)
	require.NotNil(t, got.Content)
	assert.Equal(t, "Launch Update", *got.Title)

	assert.JSONEq(t, `{
		"id": 1,
		"title": "Launch Update",
		"content": "Service goes live today.",
		"createdAt": "2025-07-19T09:00:00Z",
		"updatedAt": "2025-07-19T09:00:00Z"
	}`, rec.Body.String())
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newsUC.NewService(nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "title too short",
			body: `{"title":"Hi","content":"Service goes live today."}`,
			want: `{"error":"validation failed","violations":[{"field":"title","message":"Le titre doit avoir au minimun 5 caractères"}]}`,
		},
		{
			name: "title too long",
			body: `{"title":"` + strings.Repeat("a", 226) + `","content":"Service goes live today."}`,
			want: `{"error":"validation failed","violations":[{"field":"title","message":"Le titre ne doit excéder les 255 caratères"}]}`,
		},
		{
			name: "content too short",
			body: `{"title":"Launch Update","content":"short"}`,
			want: `{"error":"validation failed","violations":[{"field":"content","message":"Le contenu doit au minimum avoir 10 caratères"}]}`,
		},
		{
			name: "both missing",
			body: `{}`,
			want: `{"error":"validation failed","violations":[
				{"field":"title","message":"Le titre ne peut être nul"},
				{"field":"content","message":"Le contenu du news ne peut être vide"}]}`,
		},
		{
			name: "explicit null",
			body: `{"title":null,"content":"Service goes live today."}`,
			want: `{"error":"validation failed","violations":[{"field":"title","message":"Le titre ne peut être nul"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newMux(svc, resource.Default()), http.MethodPost, "/news", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	svc := &stubService{createFn: func(context.Context, newsUC.CreateInput) (*entity.News, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	mux := newMux(svc, resource.Default())

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"not json", `{"title":`, "malformed JSON body"},
		{"wrong type", `{"title":123}`, `malformed JSON body: invalid value for field "title"`},
		{"array", `[1,2]`, "malformed JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, http.MethodPost, "/news", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeMap(t, rec)["error"])
		})
	}

	t.Run("empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/news", strings.NewReader("")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "malformed JSON body: empty body", decodeMap(t, rec)["error"])
	})
}

func TestCreate_BodyTooLarge(t *testing.T) {
	svc := &stubService{}
	mux := newMux(svc, resource.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/news",
		strings.NewReader(`{"title":"`+strings.Repeat("a", 100)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreate_WriteGroupIsEnforced(t *testing.T) {
	var got newsUC.CreateInput
	svc := &stubService{createFn: func(_ context.Context, in newsUC.CreateInput) (*entity.News, error) {
		got = in
		return sample(3), nil
	}}

	res := resource.Default()
	res.WriteGroup = []string{resource.FieldTitle}

	rec := serve(newMux(svc, res), http.MethodPost, "/news",
		`{"title":"Launch Update","content":"Service goes live today.","id":99,"createdAt":"2000-01-01T00:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got.Title)
	assert.Nil(t, got.Content, "content is outside the write group")
}

/* ───────── 2. GET /news/{id} ───────── */

func TestGet(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{name: "found", path: "/news/1", wantStatus: http.StatusOK},
		{name: "not numeric", path: "/news/abc", wantStatus: http.StatusBadRequest, wantError: "invalid news id"},
		{name: "zero", path: "/news/0", wantStatus: http.StatusBadRequest, wantError: "invalid news id"},
		{name: "negative", path: "/news/-4", wantStatus: http.StatusBadRequest, wantError: "invalid news id"},
		{name: "not found", path: "/news/9", svcErr: newsUC.ErrNewsNotFound, wantStatus: http.StatusNotFound, wantError: "news not found"},
		{
			name:       "breaker open",
			path:       "/news/1",
			svcErr:     errors.Join(errors.New("get news"), gobreaker.ErrOpenState),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "service temporarily unavailable",
		},
		{
			name:       "internal error is not leaked",
			path:       "/news/1",
			svcErr:     errors.New("get news: dial postgres://news:s3cret@db/news"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{getFn: func(_ context.Context, id int64) (*entity.News, error) {
				if tt.svcErr != nil {
					return nil, tt.svcErr
				}
				return sample(id), nil
			}}

			rec := serve(newMux(svc, resource.Default()), http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeMap(t, rec)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				assert.NotContains(t, rec.Body.String(), "s3cret")
			} else {
				assert.Equal(t, float64(1), body["id"])
			}
		})
	}
}

func TestGet_ReadGroupProjection(t *testing.T) {
	svc := &stubService{getFn: func(_ context.Context, id int64) (*entity.News, error) {
		return sample(id), nil
	}}

	res := resource.Default()
	res.ReadGroup = []string{resource.FieldID, resource.FieldTitle}

	rec := serve(newMux(svc, res), http.MethodGet, "/news/5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":5,"title":"Launch Update"}`, rec.Body.String())
}

/* ───────── 3. GET /news ───────── */

func TestList_PassesFiltersAndPage(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		filters   map[string]resource.MatchMode
		wantID    *int64
		wantTitle *string
		wantExact bool
		wantPage  int
	}{
		{name: "no filters", query: "", wantPage: 1},
		{name: "page", query: "?page=3", wantPage: 3},
		{name: "id exact", query: "?id=7", wantID: ptrInt(7), wantPage: 1},
		{name: "title partial", query: "?title=GO", wantTitle: ptrStr("GO"), wantPage: 1},
		{name: "both", query: "?id=2&title=digest&page=2", wantID: ptrInt(2), wantTitle: ptrStr("digest"), wantPage: 2},
		{name: "empty values ignored", query: "?id=&title=", wantPage: 1},
		{
			name:      "title exact mode",
			query:     "?title=Weekly",
			filters:   map[string]resource.MatchMode{resource.FieldTitle: resource.MatchExact},
			wantTitle: ptrStr("Weekly"),
			wantExact: true,
			wantPage:  1,
		},
		{
			name:     "unconfigured filter ignored",
			query:    "?id=7&title=x",
			filters:  map[string]resource.MatchMode{},
			wantPage: 1,
		},
		{name: "client limit ignored", query: "?limit=50&itemsPerPage=50", wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCrit repository.NewsCriteria
			var gotParams pagination.Params
			svc := &stubService{listFn: func(_ context.Context, c repository.NewsCriteria, p pagination.Params) (*newsUC.PaginatedResult, error) {
				gotCrit, gotParams = c, p
				return &newsUC.PaginatedResult{Pagination: pagination.Metadata{Page: p.Page, Limit: p.Limit}}, nil
			}}

			res := resource.Default()
			if tt.filters != nil {
				res.Filters = tt.filters
			}

			rec := serve(newMux(svc, res), http.MethodGet, "/news"+tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantID, gotCrit.ID)
			assert.Equal(t, tt.wantTitle, gotCrit.Title)
			assert.Equal(t, tt.wantExact, gotCrit.TitleExact)
			assert.Equal(t, tt.wantPage, gotParams.Page)
			assert.Equal(t, 1, gotParams.Limit)
		})
	}
}

func TestList_BadQuery(t *testing.T) {
	svc := &stubService{listFn: func(context.Context, repository.NewsCriteria, pagination.Params) (*newsUC.PaginatedResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	mux := newMux(svc, resource.Default())

	for _, q := range []string{"?page=0", "?page=-1", "?page=abc", "?page=1.5", "?id=abc", "?id=1.0"} {
		t.Run(q, func(t *testing.T) {
			rec := serve(mux, http.MethodGet, "/news"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestList_Envelope(t *testing.T) {
	svc := &stubService{listFn: func(_ context.Context, _ repository.NewsCriteria, p pagination.Params) (*newsUC.PaginatedResult, error) {
		return &newsUC.PaginatedResult{
			Data:       []*entity.News{sample(2)},
			Pagination: pagination.Metadata{Total: 3, Page: p.Page, Limit: 1, TotalPages: 3},
		}, nil
	}}

	rec := serve(newMux(svc, resource.Default()), http.MethodGet, "/news?page=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": [{
			"id": 2,
			"title": "Launch Update",
			"content": "Service goes live today.",
			"createdAt": "2025-07-19T09:00:00Z",
			"updatedAt": "2025-07-19T09:00:00Z"
		}],
		"pagination": {"total": 3, "page": 2, "limit": 1, "total_pages": 3}
	}`, rec.Body.String())
}

func TestList_EmptyPage(t *testing.T) {
	svc := &stubService{listFn: func(_ context.Context, _ repository.NewsCriteria, p pagination.Params) (*newsUC.PaginatedResult, error) {
		return &newsUC.PaginatedResult{Pagination: pagination.Metadata{Total: 1, Page: p.Page, Limit: 1, TotalPages: 1}}, nil
	}}

	rec := serve(newMux(svc, resource.Default()), http.MethodGet, "/news?page=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeMap(t, rec)["data"])
}

func TestList_ServiceError(t *testing.T) {
	svc := &stubService{listFn: func(context.Context, repository.NewsCriteria, pagination.Params) (*newsUC.PaginatedResult, error) {
		return nil, errors.New("count news: connection reset")
	}}

	rec := serve(newMux(svc, resource.Default()), http.MethodGet, "/news", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeMap(t, rec)["error"])
}

/* ───────── 4. PUT /news/{id} and disabled operations ───────── */

func TestUpdate_DisabledByDefault(t *testing.T) {
	mux := newMux(&stubService{}, resource.Default())

	rec := serve(mux, http.MethodPut, "/news/1", `{"title":"Launch Update 2"}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", decodeMap(t, rec)["error"])
}

func TestUnsupportedMethods(t *testing.T) {
	mux := newMux(&stubService{}, resource.Default())

	tests := []struct {
		method    string
		target    string
		wantAllow string
	}{
		{http.MethodDelete, "/news/1", "GET, HEAD"},
		{http.MethodPatch, "/news/1", "GET, HEAD"},
		{http.MethodDelete, "/news", "GET, HEAD, POST"},
		{http.MethodPut, "/news", "GET, HEAD, POST"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(mux, tt.method, tt.target, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}
}

func TestCollectionPost_Disabled(t *testing.T) {
	res := resource.Default()
	res.CollectionOperations = []resource.Operation{resource.OpGet}

	rec := serve(newMux(&stubService{}, res), http.MethodPost, "/news", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdate_Enabled(t *testing.T) {
	var got newsUC.UpdateInput
	svc := &stubService{updateFn: func(_ context.Context, in newsUC.UpdateInput) (*entity.News, error) {
		got = in
		n := sample(in.ID)
		n.Title = *in.Title
		n.UpdatedAt = stamp.Add(time.Hour)
		return n, nil
	}}

	res := resource.Default()
	res.ItemOperations = append(res.ItemOperations, resource.OpPut)

	rec := serve(newMux(svc, res), http.MethodPut, "/news/4", `{"title":"Launch Update 2"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(4), got.ID)
	assert.Nil(t, got.Content)
	body := decodeMap(t, rec)
	assert.Equal(t, "Launch Update 2", body["title"])
	assert.Equal(t, "2025-07-19T09:00:00Z", body["createdAt"])
	assert.Equal(t, "2025-07-19T10:00:00Z", body["updatedAt"])
}

func TestUpdate_Errors(t *testing.T) {
	res := resource.Default()
	res.ItemOperations = []resource.Operation{resource.OpGet, resource.OpPut}

	tests := []struct {
		name       string
		path       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "invalid id", path: "/news/x", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", path: "/news/1", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/news/1", body: `{}`, svcErr: newsUC.ErrNewsNotFound, wantStatus: http.StatusNotFound},
		{
			name:       "validation",
			path:       "/news/1",
			body:       `{"content":"short"}`,
			svcErr:     entity.ValidationErrors{{Field: "content", Message: entity.MsgContentTooShort}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{updateFn: func(context.Context, newsUC.UpdateInput) (*entity.News, error) {
				return nil, tt.svcErr
			}}
			rec := serve(newMux(svc, res), http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func ptrInt(v int64) *int64   { return &v }
func ptrStr(v string) *string { return &v }
