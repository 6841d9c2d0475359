/*
 * @Description: 腾讯云COS存储提供者
 * @Author: 安知鱼
 * @Date: 2025-09-28 17:00:00
 * @LastEditTime: 2026-10-19 14:23:10
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type TencentCOSProvider struct{}

func NewTencentCOSProvider() IStorageProvider {
	return &TencentCOSProvider{}
}

// getCOSClient Server 为存储桶访问域名，如 https://examplebucket-1250000000.cos.ap-guangzhou.myqcloud.com
func (p *TencentCOSProvider) getCOSClient(policy *model.StoragePolicy) (*cos.Client, error) {
	if policy.AccessKey == "" || policy.SecretKey == "" {
		return nil, fmt.Errorf("腾讯云COS策略缺少SecretID或SecretKey")
	}
	if policy.Server == "" {
		return nil, fmt.Errorf("腾讯云COS策略缺少访问域名配置")
	}
	u, err := url.Parse(policy.Server)
	if err != nil {
		return nil, fmt.Errorf("解析存储桶URL失败: %w", err)
	}

	return cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Timeout: 100 * time.Second,
		Transport: &cos.AuthorizationTransport{
			SecretID:  policy.AccessKey,
			SecretKey: policy.SecretKey,
		},
	}), nil
}

func (p *TencentCOSProvider) Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	client, err := p.getCOSClient(policy)
	if err != nil {
		return nil, err
	}
	objectKey := buildObjectKey(policy, key)
	mimeType := detectContentType(objectKey, contentType)

	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentType: mimeType},
	}
	if size >= 0 {
		opt.ObjectPutHeaderOptions.ContentLength = size
	}

	counter := &countingReader{r: reader}
	if _, err := client.Object.Put(ctx, objectKey, counter, opt); err != nil {
		log.Printf("[腾讯云COS] 上传失败: objectKey=%s, err=%v", objectKey, err)
		return nil, fmt.Errorf("上传文件到腾讯云COS失败: %w", err)
	}

	log.Printf("[腾讯云COS] 上传成功: objectKey=%s", objectKey)
	return &UploadResult{Key: objectKey, Size: counter.n, MimeType: mimeType}, nil
}

func (p *TencentCOSProvider) Delete(ctx context.Context, policy *model.StoragePolicy, key string) error {
	client, err := p.getCOSClient(policy)
	if err != nil {
		return err
	}
	if _, err := client.Object.Delete(ctx, key); err != nil {
		if cosErr, ok := err.(*cos.ErrorResponse); ok && cosErr.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("删除腾讯云COS对象 %s 失败: %w", key, err)
	}
	return nil
}

// PublicURL 默认直接使用存储桶访问域名
func (p *TencentCOSProvider) PublicURL(policy *model.StoragePolicy, key string) (string, error) {
	if err := checkPrivate(policy); err != nil {
		return "", err
	}
	if policy.BaseURL != "" {
		return joinURL(policy.BaseURL, key), nil
	}
	if policy.Server == "" {
		return "", fmt.Errorf("腾讯云COS策略缺少访问域名配置")
	}
	return joinURL(policy.Server, key), nil
}
