package cleanup

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploads struct {
	upload.IUploadService
	referenced map[string]struct{}
	before     time.Time
	result     int
	err        error
}

func (f *fakeUploads) CleanupOrphans(_ context.Context, referenced map[string]struct{}, before time.Time) (int, error) {
	f.referenced = referenced
	f.before = before
	return f.result, f.err
}

type fakeURLs struct {
	urls map[string]struct{}
	err  error
}

func (f fakeURLs) ReferencedURLs(context.Context) (map[string]struct{}, error) {
	return f.urls, f.err
}

type stubSettings struct {
	setting.SettingService
	keepHours string
}

func (s stubSettings) GetInt(key string, fallback int) int {
	if key != constant.KeyUploadOrphanKeepHours.String() {
		return fallback
	}
	n, err := strconv.Atoi(s.keepHours)
	if err != nil {
		return fallback
	}
	return n
}

func TestCleanupOrphanedUploads(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	urls := map[string]struct{}{"/static/uploads/a.png": {}}

	tests := []struct {
		name       string
		keepHours  string
		wantBefore time.Time
	}{
		{name: "按配置保留", keepHours: "48", wantBefore: now.Add(-48 * time.Hour)},
		{name: "配置为零时使用默认值", keepHours: "0", wantBefore: now.Add(-24 * time.Hour)},
		{name: "配置非法时使用默认值", keepHours: "abc", wantBefore: now.Add(-24 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := &fakeUploads{result: 3}
			svc := NewCleanupService(uploads, fakeURLs{urls: urls}, stubSettings{keepHours: tt.keepHours}).(*CleanupService)
			svc.now = func() time.Time { return now }

			n, err := svc.CleanupOrphanedUploads(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, urls, uploads.referenced)
			assert.True(t, tt.wantBefore.Equal(uploads.before))
		})
	}
}

func TestCleanupOrphanedUploadsErrors(t *testing.T) {
	ctx := context.Background()

	svc := NewCleanupService(&fakeUploads{}, fakeURLs{err: errors.New("db down")}, stubSettings{keepHours: "1"})
	_, err := svc.CleanupOrphanedUploads(ctx)
	assert.ErrorContains(t, err, "db down")

	uploads := &fakeUploads{err: errors.New("storage down")}
	svc = NewCleanupService(uploads, fakeURLs{}, stubSettings{keepHours: "1"})
	_, err = svc.CleanupOrphanedUploads(ctx)
	assert.ErrorContains(t, err, "storage down")
}
