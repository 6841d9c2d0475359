/*
 * @Description: 定义了所有存储驱动需要遵守的接口和公共结构
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 14:02:37
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// UploadResult 封装了上传操作成功后的文件信息。
type UploadResult struct {
	// Key 是对象在存储中的完整键（已包含 BasePath），删除和生成链接时原样传回
	Key      string
	Size     int64
	MimeType string
}

// ErrPrivateBucketNeedsBaseURL 私有存储桶生成的签名链接会过期，不能写入内容记录
var ErrPrivateBucketNeedsBaseURL = errors.New("私有存储桶必须配置 Storage.BaseURL（开启回源鉴权的 CDN 域名）")

// IStorageProvider 定义了所有存储提供者必须实现的接口。
type IStorageProvider interface {
	// Upload 把 reader 的内容写入 key（相对于 policy.BasePath）。size 未知时传 -1。
	Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error)
	// Delete 删除 Upload 返回的完整键，对象不存在时不报错。
	Delete(ctx context.Context, policy *model.StoragePolicy, key string) error
	// PublicURL 返回对象长期有效的公开访问地址。
	PublicURL(policy *model.StoragePolicy, key string) (string, error)
}

// NewProvider 根据存储类型返回对应的驱动
func NewProvider(policyType constant.StoragePolicyType) (IStorageProvider, error) {
	switch policyType {
	case constant.PolicyTypeLocal:
		return NewLocalProvider(), nil
	case constant.PolicyTypeS3:
		return NewAWSS3Provider(), nil
	case constant.PolicyTypeAliOSS:
		return NewAliOSSProvider(), nil
	case constant.PolicyTypeTencentCOS:
		return NewTencentCOSProvider(), nil
	case constant.PolicyTypeQiniu:
		return NewQiniuKodoProvider(), nil
	}
	return nil, fmt.Errorf("%w: %s", constant.ErrInvalidPolicyType, policyType)
}

// buildObjectKey 把 BasePath 和相对键拼接为对象键，结果不以 "/" 开头
func buildObjectKey(policy *model.StoragePolicy, key string) string {
	basePath := strings.Trim(policy.BasePath, "/")
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if basePath == "" {
		return key
	}
	return basePath + "/" + key
}

// joinURL 拼接访问域名和对象键，域名缺少协议时补 https://
func joinURL(baseURL, key string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return baseURL + "/" + strings.TrimPrefix(key, "/")
}

// detectContentType 调用方未提供类型时根据扩展名推断
func detectContentType(key, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// checkPrivate 私有存储桶只能通过自定义域名访问
func checkPrivate(policy *model.StoragePolicy) error {
	if policy.IsPrivate && policy.BaseURL == "" {
		return ErrPrivateBucketNeedsBaseURL
	}
	return nil
}
