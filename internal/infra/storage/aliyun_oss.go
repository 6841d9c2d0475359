/*
 * @Description: 阿里云OSS存储提供者
 * @Author: 安知鱼
 * @Date: 2025-09-28 18:00:00
 * @LastEditTime: 2026-10-19 14:18:26
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type AliOSSProvider struct{}

func NewAliOSSProvider() IStorageProvider {
	return &AliOSSProvider{}
}

// getBucket 根据策略创建 OSS 客户端并返回存储桶。Server 为 endpoint，如 https://oss-cn-shanghai.aliyuncs.com
func (p *AliOSSProvider) getBucket(policy *model.StoragePolicy) (*oss.Bucket, error) {
	if policy.BucketName == "" {
		return nil, fmt.Errorf("阿里云OSS策略缺少存储桶名称")
	}
	if policy.AccessKey == "" || policy.SecretKey == "" {
		return nil, fmt.Errorf("阿里云OSS策略缺少AccessKey或SecretKey")
	}
	if policy.Server == "" {
		return nil, fmt.Errorf("阿里云OSS策略缺少Endpoint配置")
	}

	client, err := oss.New(policy.Server, policy.AccessKey, policy.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("创建阿里云OSS客户端失败: %w", err)
	}
	bucket, err := client.Bucket(policy.BucketName)
	if err != nil {
		return nil, fmt.Errorf("获取阿里云OSS存储桶失败: %w", err)
	}
	return bucket, nil
}

func (p *AliOSSProvider) Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	bucket, err := p.getBucket(policy)
	if err != nil {
		return nil, err
	}
	objectKey := buildObjectKey(policy, key)
	mimeType := detectContentType(objectKey, contentType)

	counter := &countingReader{r: reader}
	if err := bucket.PutObject(objectKey, counter, oss.ContentType(mimeType), oss.WithContext(ctx)); err != nil {
		log.Printf("[阿里云OSS] 上传失败: objectKey=%s, err=%v", objectKey, err)
		return nil, fmt.Errorf("上传文件到阿里云OSS失败: %w", err)
	}

	log.Printf("[阿里云OSS] 上传成功: objectKey=%s", objectKey)
	return &UploadResult{Key: objectKey, Size: counter.n, MimeType: mimeType}, nil
}

// Delete OSS 删除不存在的对象同样返回成功
func (p *AliOSSProvider) Delete(ctx context.Context, policy *model.StoragePolicy, key string) error {
	bucket, err := p.getBucket(policy)
	if err != nil {
		return err
	}
	if err := bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("删除阿里云OSS对象 %s 失败: %w", key, err)
	}
	return nil
}

// PublicURL 默认使用 https://<bucket>.<endpoint host>/<key>
func (p *AliOSSProvider) PublicURL(policy *model.StoragePolicy, key string) (string, error) {
	if err := checkPrivate(policy); err != nil {
		return "", err
	}
	if policy.BaseURL != "" {
		return joinURL(policy.BaseURL, key), nil
	}
	if policy.Server == "" {
		return "", fmt.Errorf("阿里云OSS策略缺少Endpoint配置")
	}

	endpoint := policy.Server
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("解析OSS endpoint失败: %w", err)
	}
	return fmt.Sprintf("%s://%s.%s/%s", parsed.Scheme, policy.BucketName, parsed.Host, key), nil
}

// countingReader 统计实际读取的字节数
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	return n, err
}
