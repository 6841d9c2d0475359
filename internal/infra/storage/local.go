// internal/infra/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// LocalProvider 把文件写入本机磁盘，policy.BucketName 为根目录，
// 文件通过 constant.LocalUploadRoute 对外提供访问。
type LocalProvider struct{}

func NewLocalProvider() IStorageProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) root(policy *model.StoragePolicy) string {
	if policy.BucketName == "" {
		return constant.DefaultLocalUploadDir
	}
	return policy.BucketName
}

// physicalPath 返回对象键对应的磁盘路径，拒绝跳出根目录的键
func (p *LocalProvider) physicalPath(policy *model.StoragePolicy, key string) (string, error) {
	root, err := filepath.Abs(p.root(policy))
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(key))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("非法的对象键: %s", key)
	}
	return full, nil
}

func (p *LocalProvider) Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	objectKey := buildObjectKey(policy, key)
	dst, err := p.physicalPath(policy, objectKey)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	// 先写临时文件再重命名，避免读到写了一半的文件
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("创建临时文件失败: %w", err)
	}
	written, copyErr := io.Copy(tmp, reader)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		if copyErr != nil {
			return nil, fmt.Errorf("写入文件失败: %w", copyErr)
		}
		return nil, fmt.Errorf("关闭文件失败: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	log.Printf("[LocalProvider] 文件已保存: %s (%d bytes)", dst, written)
	return &UploadResult{
		Key:      objectKey,
		Size:     written,
		MimeType: detectContentType(objectKey, contentType),
	}, nil
}

func (p *LocalProvider) Delete(ctx context.Context, policy *model.StoragePolicy, key string) error {
	full, err := p.physicalPath(policy, key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除本地文件 '%s' 失败: %w", full, err)
	}
	return nil
}

// PublicURL 未配置 BaseURL 时返回站内相对路径
func (p *LocalProvider) PublicURL(policy *model.StoragePolicy, key string) (string, error) {
	route := constant.LocalUploadRoute + "/" + strings.TrimPrefix(key, "/")
	if policy.BaseURL == "" {
		return route, nil
	}
	return strings.TrimSuffix(policy.BaseURL, "/") + route, nil
}
