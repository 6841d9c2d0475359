package content_handler

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	entrepo "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := stdsql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "handler.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := entsql.OpenDB(dialect.SQLite, db)
	require.NoError(t, database.Migrate(context.Background(), drv))

	registry := content.NewDefaultRegistry(content.Repositories{
		About:           entrepo.NewAboutRepo(drv),
		Blog:            entrepo.NewBlogRepo(drv),
		Contact:         entrepo.NewContactRepo(drv),
		Home:            entrepo.NewHomeRepo(drv),
		Service:         entrepo.NewServiceRepo(drv),
		ServiceProvided: entrepo.NewServiceProvidedRepo(drv),
		SeparateService: entrepo.NewSeparateServiceRepo(drv),
		Team:            entrepo.NewTeamRepo(drv),
		Review:          entrepo.NewReviewRepo(drv),
		FooterLink:      entrepo.NewFooterLinkRepo(drv),
		Country:         entrepo.NewCountryRepo(drv),
		Address:         entrepo.NewAddressRepo(drv),
	}, content.Deps{})

	h := NewHandler(registry)
	r := gin.New()
	r.GET("/api/public/sections", h.ListSections)
	r.GET("/api/public/:section", h.PublicList)
	r.GET("/api/:section", h.List)
	r.POST("/api/:section", h.Create)
	r.GET("/api/:section/:id", h.Get)
	r.PUT("/api/:section/:id", h.Update)
	r.DELETE("/api/:section/:id", h.Delete)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestContentCRUD(t *testing.T) {
	r := newTestRouter(t)

	code, resp := do(t, r, http.MethodPost, "/api/review", `{"reviewer_name":"李四","content":"专业","rating":4}`)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var created struct {
		ID     uint `json:"id"`
		Rating int  `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, 4, created.Rating)

	code, resp = do(t, r, http.MethodPut, "/api/review/1", `{"reviewer_name":"李四","content":"专业","rating":4}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "内容未变化", resp.Message)

	code, resp = do(t, r, http.MethodPut, "/api/review/1", `{"reviewer_name":"李四","content":"非常专业","rating":5}`)
	require.Equal(t, http.StatusOK, code)
	var updated UpdateResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.True(t, updated.Changed)

	code, resp = do(t, r, http.MethodGet, "/api/review?page=1&pageSize=5", "")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total    int64 `json:"total"`
		PageSize int   `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 5, page.PageSize)

	code, _ = do(t, r, http.MethodGet, "/api/public/review", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodDelete, "/api/review/1", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/review/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

// reviewOfSize 生成长度正好为 n 字节的评价 JSON
func reviewOfSize(n int) string {
	prefix := `{"reviewer_name":"a","content":"`
	suffix := `"}`
	return prefix + strings.Repeat("x", n-len(prefix)-len(suffix)) + suffix
}

func oversizedReview() string { return reviewOfSize(maxBodyBytes + 1) }

func TestContentErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "未知板块", method: http.MethodGet, path: "/api/unknown", want: http.StatusNotFound},
		{name: "非法ID", method: http.MethodGet, path: "/api/review/abc", want: http.StatusBadRequest},
		{name: "ID为零", method: http.MethodDelete, path: "/api/review/0", want: http.StatusBadRequest},
		{name: "缺少必填字段", method: http.MethodPost, path: "/api/review", body: `{"rating":3}`, want: http.StatusBadRequest},
		{name: "非法JSON", method: http.MethodPost, path: "/api/review", body: `{`, want: http.StatusBadRequest},
		{name: "更新不存在的记录", method: http.MethodPut, path: "/api/review/99", body: `{"reviewer_name":"a","content":"b"}`, want: http.StatusNotFound},
		{name: "请求体过大", method: http.MethodPost, path: "/api/review", body: oversizedReview(), want: http.StatusRequestEntityTooLarge},
		{name: "请求体恰好达到上限", method: http.MethodPost, path: "/api/review", body: reviewOfSize(maxBodyBytes), want: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestListSections(t *testing.T) {
	r := newTestRouter(t)

	code, _ := do(t, r, http.MethodPost, "/api/country", `{"name":"中国","code":"CN"}`)
	require.Equal(t, http.StatusCreated, code)

	code, resp := do(t, r, http.MethodGet, "/api/public/sections", "")
	require.Equal(t, http.StatusOK, code)

	var sections []struct {
		Key     string                      `json:"key"`
		Options map[string][]content.Option `json:"options"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sections))
	assert.Len(t, sections, 12)

	for _, s := range sections {
		if s.Key == "address" {
			require.NotEmpty(t, s.Options, "地址板块带有国家下拉选项")
			for _, opts := range s.Options {
				require.Len(t, opts, 1)
			}
		}
	}
}
