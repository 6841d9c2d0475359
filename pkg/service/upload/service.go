/*
 * @Description: 图片等静态资源上传：校验、压缩、提取主色调后写入对象存储
 * @Author: 安知鱼
 * @Date: 2025-07-10 15:23:10
 * @LastEditTime: 2026-10-19 15:02:18
 * @LastEditors: 安知鱼
 */
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// DefaultSection 未指定或指定了非法板块时使用的目录
	DefaultSection    = "common"
	defaultMaxSizeMB  = 10
	resizeJPEGQuality = 85
	cleanupBatchSize  = 500
)

var sectionPattern = regexp.MustCompile(`^[a-z0-9_]{1,32}$`)

// Request 描述了一次上传
type Request struct {
	Section     string
	FileName    string
	ContentType string
	Size        int64 // 未知时为 -1
	Reader      io.Reader
}

// IUploadService 定义了上传相关的业务接口
type IUploadService interface {
	Upload(ctx context.Context, req *Request) (*model.Upload, error)
	Get(ctx context.Context, id uint) (*model.Upload, error)
	List(ctx context.Context, query repository.PageQuery) (*repository.PageResult[model.Upload], error)
	// Delete 删除对象存储中的文件和上传记录
	Delete(ctx context.Context, id uint) error
	// CleanupOrphans 删除早于 before 且 URL 不在 referenced 中的上传
	CleanupOrphans(ctx context.Context, referenced map[string]struct{}, before time.Time) (int, error)
	Policy() *model.StoragePolicy
}

type uploadService struct {
	repo       repository.UploadRepository
	provider   storage.IStorageProvider
	policy     *model.StoragePolicy
	settingSvc setting.SettingService
	colorSvc   *utility.ColorService
	eventBus   *event.EventBus
	metrics    *metrics.Collector
	batchSize  int
}

// NewUploadService 是 uploadService 的构造函数，eventBus 和 collector 可以为 nil
func NewUploadService(
	repo repository.UploadRepository,
	provider storage.IStorageProvider,
	policy *model.StoragePolicy,
	settingSvc setting.SettingService,
	colorSvc *utility.ColorService,
	eventBus *event.EventBus,
	collector *metrics.Collector,
) IUploadService {
	return &uploadService{
		repo:       repo,
		provider:   provider,
		policy:     policy,
		settingSvc: settingSvc,
		colorSvc:   colorSvc,
		eventBus:   eventBus,
		metrics:    collector,
		batchSize:  cleanupBatchSize,
	}
}

func (s *uploadService) Policy() *model.StoragePolicy {
	return s.policy
}

// NormalizeSection 返回可以安全用作目录名的板块名
func NormalizeSection(section string) string {
	section = strings.ToLower(strings.TrimSpace(section))
	if !sectionPattern.MatchString(section) {
		return DefaultSection
	}
	return section
}

// checkExtension 校验后缀名白名单，白名单为空时不限制
func (s *uploadService) checkExtension(fileName string) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		return "", fmt.Errorf("%w: 文件缺少扩展名", constant.ErrUploadTypeDenied)
	}
	allowed := s.settingSvc.GetList(constant.KeyUploadAllowedExtensions.String())
	if len(allowed) == 0 {
		return ext, nil
	}
	for _, a := range allowed {
		if strings.TrimPrefix(a, ".") == ext[1:] {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", constant.ErrUploadTypeDenied, ext)
}

// readLimited 读取全部内容，超过 maxBytes 时返回 constant.ErrUploadTooLarge
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: 最大 %d MB", constant.ErrUploadTooLarge, maxBytes/1024/1024)
	}
	return data, nil
}

// isRaster 是否为可解码的位图格式
func isRaster(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// processImage 记录尺寸，过宽的 jpeg/png 按 maxWidth 等比缩小，并计算主色调。
// 解码失败的图片原样上传。
func (s *uploadService) processImage(data []byte, ext string, maxWidth int) ([]byte, string, string) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("[UploadService] ⚠️ 图片解码失败，按原文件上传: %v", err)
		return data, "", ""
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth && (ext == ".jpg" || ext == ".jpeg" || ext == ".png") {
		resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
		format, fmtErr := imaging.FormatFromExtension(ext)
		var buf bytes.Buffer
		if fmtErr == nil {
			fmtErr = imaging.Encode(&buf, resized, format, imaging.JPEGQuality(resizeJPEGQuality))
		}
		if fmtErr != nil {
			log.Printf("[UploadService] ⚠️ 图片缩放后编码失败，按原文件上传: %v", fmtErr)
		} else {
			log.Printf("[UploadService] 图片宽度 %d 超过 %d，已等比缩小", img.Bounds().Dx(), maxWidth)
			img = resized
			data = buf.Bytes()
		}
	}

	dimension := fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	mainColor, err := s.colorSvc.PrimaryColorOf(img)
	if err != nil {
		log.Printf("[UploadService] ⚠️ 提取主色调失败: %v", err)
		mainColor = utility.DefaultPrimaryColor
	}
	return data, dimension, mainColor
}

// objectKey 生成 <section>/<yyyy>/<mm>/<uuid><ext>
func objectKey(section, ext string, now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s/%s/%s%s", section, now.Format("2006/01"), id, ext)
}

func (s *uploadService) Upload(ctx context.Context, req *Request) (*model.Upload, error) {
	if req == nil || req.Reader == nil {
		return nil, fmt.Errorf("%w: 缺少上传文件", constant.ErrBadRequest)
	}
	ext, err := s.checkExtension(req.FileName)
	if err != nil {
		return nil, err
	}

	maxBytes := int64(s.settingSvc.GetInt(constant.KeyUploadMaxSizeMB.String(), defaultMaxSizeMB)) * 1024 * 1024
	if req.Size > maxBytes {
		return nil, fmt.Errorf("%w: 最大 %d MB", constant.ErrUploadTooLarge, maxBytes/1024/1024)
	}
	data, err := readLimited(req.Reader, maxBytes)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 上传文件为空", constant.ErrBadRequest)
	}

	var photo photoInfo
	if hasExif(ext) {
		photo = extractPhotoInfo(data, ext)
	}

	var dimension, mainColor string
	if isRaster(ext) {
		maxWidth := s.settingSvc.GetInt(constant.KeyUploadImageMaxWidth.String(), 0)
		data, dimension, mainColor = s.processImage(data, ext, maxWidth)
	}

	section := NormalizeSection(req.Section)
	key := objectKey(section, ext, time.Now())

	result, err := s.provider.Upload(ctx, s.policy, key, bytes.NewReader(data), int64(len(data)), req.ContentType)
	if err != nil {
		return nil, err
	}
	url, err := s.provider.PublicURL(s.policy, result.Key)
	if err != nil {
		s.removeObject(ctx, result.Key)
		return nil, err
	}

	record := &model.Upload{
		Section:    section,
		ObjectKey:  result.Key,
		URL:        url,
		FileName:   path.Base(req.FileName),
		Size:       result.Size,
		MimeType:   result.MimeType,
		Dimension:  dimension,
		MainColor:  mainColor,
		Camera:     photo.Camera,
		TakenAt:    photo.TakenAt,
		PolicyType: string(s.policy.Type),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.removeObject(ctx, result.Key)
		return nil, fmt.Errorf("保存上传记录失败: %w", err)
	}

	s.metrics.RecordUpload(string(s.policy.Type))
	if s.eventBus != nil {
		s.eventBus.Publish(event.UploadCreated, record)
	}
	log.Printf("[UploadService] ✅ 上传完成: %s -> %s", record.FileName, record.URL)
	return record, nil
}

// removeObject 回滚已写入存储的对象，失败只记录日志
func (s *uploadService) removeObject(ctx context.Context, key string) {
	if err := s.provider.Delete(ctx, s.policy, key); err != nil {
		log.Printf("[UploadService] ⚠️ 回滚对象 %s 失败: %v", key, err)
	}
}

func (s *uploadService) Get(ctx context.Context, id uint) (*model.Upload, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *uploadService) List(ctx context.Context, query repository.PageQuery) (*repository.PageResult[model.Upload], error) {
	return s.repo.FindListByPage(ctx, query)
}

func (s *uploadService) Delete(ctx context.Context, id uint) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 存储类型变更后旧文件已不在当前存储中，只删除记录
	if record.PolicyType == string(s.policy.Type) {
		if err := s.provider.Delete(ctx, s.policy, record.ObjectKey); err != nil {
			return fmt.Errorf("删除存储对象失败: %w", err)
		}
	} else {
		log.Printf("[UploadService] ⚠️ 上传 #%d 属于存储类型 '%s'，当前为 '%s'，仅删除记录", record.ID, record.PolicyType, s.policy.Type)
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, constant.ErrNotFound) {
		return err
	}
	return nil
}

func (s *uploadService) CleanupOrphans(ctx context.Context, referenced map[string]struct{}, before time.Time) (int, error) {
	cleaned := 0
	var lastID uint
	// 按 ID 分批遍历，被引用的记录不会让后面的批次饿死
	for {
		candidates, err := s.repo.FindCreatedBefore(ctx, before, lastID, s.batchSize)
		if err != nil {
			return cleaned, fmt.Errorf("查询待清理上传失败: %w", err)
		}
		for _, item := range candidates {
			lastID = item.ID
			if _, ok := referenced[item.URL]; ok {
				continue
			}
			if err := s.Delete(ctx, item.ID); err != nil {
				log.Printf("[UploadService] ⚠️ 清理孤儿上传 #%d 失败: %v", item.ID, err)
				continue
			}
			cleaned++
		}
		if len(candidates) < s.batchSize {
			return cleaned, nil
		}
		if err := ctx.Err(); err != nil {
			return cleaned, err
		}
	}
}
