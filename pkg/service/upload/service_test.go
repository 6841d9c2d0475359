package upload

import (
	"bytes"
	"context"
	stdsql "database/sql"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	entrepo "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSettings 是只读的内存配置
type stubSettings struct {
	setting.SettingService
	values map[string]string
}

func (s *stubSettings) Get(key string) string { return s.values[key] }

func (s *stubSettings) GetInt(key string, fallback int) int {
	v, ok := s.values[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *stubSettings) GetList(key string) []string {
	if s.values[key] == "" {
		return nil
	}
	return strings.Split(s.values[key], ",")
}

type testEnv struct {
	svc     IUploadService
	repo    repository.UploadRepository
	root    string
	metrics *metrics.Collector
	bus     *event.EventBus
}

func newTestEnv(t *testing.T, settings map[string]string) *testEnv {
	t.Helper()
	db, err := stdsql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "upload.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := entsql.OpenDB(dialect.SQLite, db)
	require.NoError(t, database.Migrate(context.Background(), drv))

	root := t.TempDir()
	policy := &model.StoragePolicy{Type: constant.PolicyTypeLocal, BucketName: root}
	repo := entrepo.NewUploadRepo(drv)
	collector := metrics.NewCollector()
	bus := event.NewEventBusWithSize(1, 16)
	t.Cleanup(bus.Shutdown)

	svc := NewUploadService(repo, storage.NewLocalProvider(), policy,
		&stubSettings{values: settings}, utility.NewColorService(), bus, collector)
	return &testEnv{svc: svc, repo: repo, root: root, metrics: collector, bus: bus}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 4), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		constant.KeyUploadAllowedExtensions.String(): "png,jpg",
		constant.KeyUploadImageMaxWidth.String():     "32",
	})
	data := pngBytes(t, 64, 32)

	received := make(chan *model.Upload, 1)
	env.bus.Subscribe(event.UploadCreated, func(payload interface{}) {
		received <- payload.(*model.Upload)
	})

	rec, err := env.svc.Upload(context.Background(), &Request{
		Section:  "Blog",
		FileName: "cover.PNG",
		Size:     int64(len(data)),
		Reader:   bytes.NewReader(data),
	})
	require.NoError(t, err)

	assert.NotZero(t, rec.ID)
	assert.Equal(t, "blog", rec.Section)
	assert.Equal(t, "cover.PNG", rec.FileName)
	assert.Equal(t, "32x16", rec.Dimension, "超过最大宽度应等比缩小")
	assert.True(t, strings.HasPrefix(rec.MainColor, "#"))
	assert.Equal(t, "image/png", rec.MimeType)
	assert.Equal(t, string(constant.PolicyTypeLocal), rec.PolicyType)
	assert.Empty(t, rec.Camera, "没有 EXIF")
	assert.True(t, strings.HasPrefix(rec.URL, constant.LocalUploadRoute+"/blog/"+time.Now().Format("2006/01")+"/"))
	assert.True(t, strings.HasSuffix(rec.ObjectKey, ".png"))

	stored, err := os.ReadFile(filepath.Join(env.root, filepath.FromSlash(rec.ObjectKey)))
	require.NoError(t, err)
	assert.Equal(t, rec.Size, int64(len(stored)))

	select {
	case got := <-received:
		assert.Equal(t, rec.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("没有收到 UploadCreated 事件")
	}
	assert.Equal(t, float64(1), uploadsCounted(t, env.metrics))
}

// uploadsCounted 从 Registry 中读取 uploads_total 的值
func uploadsCounted(t *testing.T, c *metrics.Collector) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "anheyu_uploads_total" {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestUploadRejects(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		constant.KeyUploadAllowedExtensions.String(): "png,.pdf",
		constant.KeyUploadMaxSizeMB.String():         "1",
	})
	big := bytes.Repeat([]byte("a"), 1024*1024+1)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "空请求", req: nil, wantErr: constant.ErrBadRequest},
		{name: "缺少扩展名", req: &Request{FileName: "noext", Reader: strings.NewReader("x")}, wantErr: constant.ErrUploadTypeDenied},
		{name: "不在白名单", req: &Request{FileName: "run.exe", Reader: strings.NewReader("x")}, wantErr: constant.ErrUploadTypeDenied},
		{name: "声明大小超限", req: &Request{FileName: "a.pdf", Size: int64(len(big)), Reader: bytes.NewReader(big)}, wantErr: constant.ErrUploadTooLarge},
		{name: "实际大小超限", req: &Request{FileName: "a.pdf", Size: -1, Reader: bytes.NewReader(big)}, wantErr: constant.ErrUploadTooLarge},
		{name: "空文件", req: &Request{FileName: "a.pdf", Reader: strings.NewReader("")}, wantErr: constant.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Upload(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUploadNonImageAndBrokenImage(t *testing.T) {
	env := newTestEnv(t, map[string]string{constant.KeyUploadAllowedExtensions.String(): "pdf,png"})
	ctx := context.Background()

	pdf, err := env.svc.Upload(ctx, &Request{Section: "../etc", FileName: "doc.pdf", Reader: strings.NewReader("%PDF-1.4")})
	require.NoError(t, err)
	assert.Equal(t, DefaultSection, pdf.Section, "非法板块名回退到默认目录")
	assert.Empty(t, pdf.Dimension)
	assert.Equal(t, "application/pdf", pdf.MimeType)

	broken, err := env.svc.Upload(ctx, &Request{FileName: "bad.png", Reader: strings.NewReader("not really a png")})
	require.NoError(t, err, "解码失败的图片按原文件上传")
	assert.Empty(t, broken.Dimension)
}

func TestDeleteAndCleanup(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	upload := func(name string) *model.Upload {
		rec, err := env.svc.Upload(ctx, &Request{Section: "about", FileName: name, Reader: strings.NewReader("data-" + name)})
		require.NoError(t, err)
		return rec
	}
	kept := upload("kept.txt")
	orphan := upload("orphan.txt")
	deleted := upload("deleted.txt")

	require.NoError(t, env.svc.Delete(ctx, deleted.ID))
	_, err := os.Stat(filepath.Join(env.root, filepath.FromSlash(deleted.ObjectKey)))
	assert.True(t, os.IsNotExist(err))
	assert.ErrorIs(t, env.svc.Delete(ctx, deleted.ID), constant.ErrNotFound)

	referenced := map[string]struct{}{kept.URL: {}}

	n, err := env.svc.CleanupOrphans(ctx, referenced, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "未超过保留时长的文件不清理")

	n, err = env.svc.CleanupOrphans(ctx, referenced, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = env.svc.Get(ctx, orphan.ID)
	assert.ErrorIs(t, err, constant.ErrNotFound)
	_, err = env.svc.Get(ctx, kept.ID)
	assert.NoError(t, err)

	page, err := env.svc.List(ctx, repository.PageQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestDeleteAfterPolicyChange(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	rec := &model.Upload{ObjectKey: "old/a.png", URL: "https://oss.example.com/old/a.png", PolicyType: string(constant.PolicyTypeAliOSS)}
	require.NoError(t, env.repo.Create(ctx, rec))

	require.NoError(t, env.svc.Delete(ctx, rec.ID), "其它存储类型的记录只删除数据库记录")
	_, err := env.repo.FindByID(ctx, rec.ID)
	assert.ErrorIs(t, err, constant.ErrNotFound)
}

func TestCleanupPastReferencedBatch(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.(*uploadService).batchSize = 2
	ctx := context.Background()

	referenced := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		rec := &model.Upload{ObjectKey: "ref/" + strconv.Itoa(i) + ".png", URL: "https://oss.example.com/ref/" + strconv.Itoa(i) + ".png", PolicyType: string(constant.PolicyTypeAliOSS)}
		require.NoError(t, env.repo.Create(ctx, rec))
		referenced[rec.URL] = struct{}{}
	}
	orphan := &model.Upload{ObjectKey: "orphan.png", URL: "https://oss.example.com/orphan.png", PolicyType: string(constant.PolicyTypeAliOSS)}
	require.NoError(t, env.repo.Create(ctx, orphan))

	n, err := env.svc.CleanupOrphans(ctx, referenced, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "排在被引用记录之后的孤儿在第一次清理中被删除")
	_, err = env.repo.FindByID(ctx, orphan.ID)
	assert.ErrorIs(t, err, constant.ErrNotFound)

	page, err := env.svc.List(ctx, repository.PageQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
}

func TestNormalizeSection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Blog", expected: "blog"},
		{input: " service_provided ", expected: "service_provided"},
		{input: "", expected: DefaultSection},
		{input: "../x", expected: DefaultSection},
		{input: strings.Repeat("a", 33), expected: DefaultSection},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeSection(tt.input), tt.input)
	}
}

func TestExtractPhotoInfoWithoutExif(t *testing.T) {
	assert.True(t, hasExif(".jpg"))
	assert.True(t, hasExif(".webp"))
	assert.False(t, hasExif(".gif"))

	info := extractPhotoInfo(pngBytes(t, 4, 4), ".png")
	assert.Equal(t, photoInfo{}, info)

	info = extractPhotoInfo([]byte("garbage"), ".jpg")
	assert.Equal(t, photoInfo{}, info)
}

func TestPolicyFromConfig(t *testing.T) {
	t.Run("默认本地存储", func(t *testing.T) {
		policy, err := PolicyFromConfig(config.NewConfigWithValues(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, constant.PolicyTypeLocal, policy.Type)
		assert.Equal(t, constant.DefaultLocalUploadDir, policy.BucketName)
	})

	t.Run("云存储", func(t *testing.T) {
		policy, err := PolicyFromConfig(config.NewConfigWithValues(map[string]string{
			config.KeyStorageType:       "Aliyun_OSS",
			config.KeyStorageBucket:     " cms ",
			config.KeyStoragePathPrefix: "/site/",
			config.KeyStoragePrivate:    "true",
		}))
		require.NoError(t, err)
		assert.Equal(t, constant.PolicyTypeAliOSS, policy.Type)
		assert.Equal(t, "cms", policy.BucketName)
		assert.Equal(t, "site", policy.BasePath)
		assert.True(t, policy.IsPrivate)
	})

	t.Run("未知类型", func(t *testing.T) {
		_, err := PolicyFromConfig(config.NewConfigWithValues(map[string]string{config.KeyStorageType: "ftp"}))
		assert.ErrorIs(t, err, constant.ErrInvalidPolicyType)
	})
}
