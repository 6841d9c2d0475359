/*
 * @Description: 七牛云Kodo存储提供者
 * @Author: 安知鱼
 * @Date: 2025-12-01 10:00:00
 * @LastEditTime: 2026-10-19 14:29:44
 * @LastEditors: 安知鱼
 */
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"

	"github.com/qiniu/go-sdk/v7/auth"
	"github.com/qiniu/go-sdk/v7/storage"
)

// 七牛云删除不存在的文件时返回的状态码
const qiniuNoSuchEntry = 612

type QiniuKodoProvider struct{}

func NewQiniuKodoProvider() IStorageProvider {
	return &QiniuKodoProvider{}
}

func (p *QiniuKodoProvider) getCredentials(policy *model.StoragePolicy) (*auth.Credentials, error) {
	if policy.AccessKey == "" || policy.SecretKey == "" {
		return nil, fmt.Errorf("七牛云策略缺少AccessKey或SecretKey")
	}
	return auth.New(policy.AccessKey, policy.SecretKey), nil
}

// getUploadConfig 从 Server 字段推断区域，例如 https://up-z0.qiniup.com 为华东
func (p *QiniuKodoProvider) getUploadConfig(policy *model.StoragePolicy) *storage.Config {
	cfg := &storage.Config{UseHTTPS: true}

	server := strings.ToLower(policy.Server)
	switch {
	case strings.Contains(server, "up-z1"):
		cfg.Region = &storage.ZoneHuabei
	case strings.Contains(server, "up-z2"):
		cfg.Region = &storage.ZoneHuanan
	case strings.Contains(server, "up-na0"):
		cfg.Region = &storage.ZoneBeimei
	case strings.Contains(server, "up-as0"):
		cfg.Region = &storage.ZoneXinjiapo
	default:
		cfg.Region = &storage.ZoneHuadong
	}
	return cfg
}

func (p *QiniuKodoProvider) Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	mac, err := p.getCredentials(policy)
	if err != nil {
		return nil, err
	}
	if policy.BucketName == "" {
		return nil, fmt.Errorf("七牛云策略缺少存储空间名称")
	}
	objectKey := buildObjectKey(policy, key)
	mimeType := detectContentType(objectKey, contentType)

	putPolicy := storage.PutPolicy{
		Scope: fmt.Sprintf("%s:%s", policy.BucketName, objectKey),
	}
	upToken := putPolicy.UploadToken(mac)

	// 表单上传需要知道文件大小
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}

	ret := storage.PutRet{}
	putExtra := storage.PutExtra{MimeType: mimeType}
	formUploader := storage.NewFormUploader(p.getUploadConfig(policy))
	if err := formUploader.Put(ctx, &ret, upToken, objectKey, bytes.NewReader(data), int64(len(data)), &putExtra); err != nil {
		log.Printf("[七牛云] 上传失败: objectKey=%s, err=%v", objectKey, err)
		return nil, fmt.Errorf("上传文件到七牛云失败: %w", err)
	}

	log.Printf("[七牛云] 上传成功: objectKey=%s, hash=%s", objectKey, ret.Hash)
	return &UploadResult{Key: objectKey, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (p *QiniuKodoProvider) Delete(ctx context.Context, policy *model.StoragePolicy, key string) error {
	mac, err := p.getCredentials(policy)
	if err != nil {
		return err
	}
	bucketManager := storage.NewBucketManager(mac, &storage.Config{UseHTTPS: true})
	if err := bucketManager.Delete(policy.BucketName, key); err != nil {
		if e, ok := err.(interface{ HttpCode() int }); ok && e.HttpCode() == qiniuNoSuchEntry {
			return nil
		}
		return fmt.Errorf("删除七牛云对象 %s 失败: %w", key, err)
	}
	return nil
}

// PublicURL 七牛云没有默认的公开域名，必须配置 BaseURL（绑定的 CDN 域名）
func (p *QiniuKodoProvider) PublicURL(policy *model.StoragePolicy, key string) (string, error) {
	if policy.BaseURL == "" {
		return "", fmt.Errorf("七牛云策略必须配置 Storage.BaseURL")
	}
	return storage.MakePublicURLv2(strings.TrimSuffix(joinURL(policy.BaseURL, ""), "/"), key), nil
}
