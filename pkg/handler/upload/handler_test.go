package upload_handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploads struct {
	upload.IUploadService
	got     *upload.Request
	content []byte
	err     error
	deleted uint
}

func (f *fakeUploads) Upload(_ context.Context, req *upload.Request) (*model.Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.got = req
	f.content, _ = io.ReadAll(req.Reader)
	u := &model.Upload{URL: "/static/uploads/blog/a.png", ObjectKey: "blog/a.png", Size: req.Size, MimeType: "image/png"}
	u.ID = 7
	return u, nil
}

func (f *fakeUploads) Delete(_ context.Context, id uint) error {
	if id != 7 {
		return constant.ErrNotFound
	}
	f.deleted = id
	return nil
}

func newRouter(svc upload.IUploadService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/api/upload", h.Upload)
	r.DELETE("/api/uploads/:id", h.Delete)
	return r
}

func multipartBody(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	svc := &fakeUploads{}
	r := newRouter(svc)

	body, contentType := multipartBody(t, FormFileField, "a.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload?section=blog", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, "blog", svc.got.Section)
	assert.Equal(t, "a.png", svc.got.FileName)
	assert.Equal(t, int64(9), svc.got.Size)
	assert.Equal(t, []byte("png-bytes"), svc.content)

	var resp struct {
		Data UploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.Data.ID)
	assert.Equal(t, "blog/a.png", resp.Data.Key)
}

func TestUploadHandlerErrors(t *testing.T) {
	t.Run("缺少文件", func(t *testing.T) {
		body, contentType := multipartBody(t, "other", "a.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newRouter(&fakeUploads{}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("文件过大", func(t *testing.T) {
		body, contentType := multipartBody(t, FormFileField, "a.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newRouter(&fakeUploads{err: constant.ErrUploadTooLarge}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestDeleteHandler(t *testing.T) {
	svc := &fakeUploads{}
	r := newRouter(svc)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "删除成功", path: "/api/uploads/7", want: http.StatusOK},
		{name: "记录不存在", path: "/api/uploads/8", want: http.StatusNotFound},
		{name: "非法ID", path: "/api/uploads/x", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.Equal(t, uint(7), svc.deleted)
}
