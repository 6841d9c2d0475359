/*
 * @Description: AWS S3 及兼容服务（MinIO、R2 等）存储提供者，使用 aws-sdk-go-v2
 * @Author: 安知鱼
 * @Date: 2025-09-28 19:00:00
 * @LastEditTime: 2026-10-19 14:10:52
 * @LastEditors: 安知鱼
 */
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultS3Region = "us-east-1"

type AWSS3Provider struct{}

func NewAWSS3Provider() IStorageProvider {
	return &AWSS3Provider{}
}

// resolveEndpoint 解析 Server 字段：可以是地域名，也可以是完整的 endpoint URL
func resolveEndpoint(server string) (region string, endpoint string) {
	region = defaultS3Region
	if server == "" {
		return region, ""
	}
	if !strings.HasPrefix(server, "http") {
		return server, ""
	}
	if parsed, err := url.Parse(server); err == nil && strings.Contains(parsed.Host, "amazonaws.com") {
		// s3.us-west-2.amazonaws.com
		parts := strings.Split(parsed.Host, ".")
		if len(parts) >= 4 && strings.HasPrefix(parts[0], "s3") {
			region = parts[1]
		}
	}
	return region, server
}

func (p *AWSS3Provider) getS3Client(ctx context.Context, policy *model.StoragePolicy) (*s3.Client, error) {
	if policy.BucketName == "" {
		return nil, fmt.Errorf("AWS S3策略缺少存储桶名称")
	}
	if policy.AccessKey == "" || policy.SecretKey == "" {
		return nil, fmt.Errorf("AWS S3策略缺少AccessKey或SecretKey")
	}

	region, endpoint := resolveEndpoint(policy.Server)
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(policy.AccessKey, policy.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("创建AWS S3配置失败: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// 自定义 endpoint 通常需要 path-style
			o.UsePathStyle = true
		}
	}), nil
}

func (p *AWSS3Provider) Upload(ctx context.Context, policy *model.StoragePolicy, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	client, err := p.getS3Client(ctx, policy)
	if err != nil {
		return nil, err
	}
	objectKey := buildObjectKey(policy, key)

	// 读入内存以得到准确的 ContentLength 和校验和，Ceph RGW、MinIO 对此更严格
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取文件内容失败: %w", err)
	}
	hash := sha256.Sum256(content)
	mimeType := detectContentType(objectKey, contentType)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(policy.BucketName),
		Key:            aws.String(objectKey),
		Body:           bytes.NewReader(content),
		ContentLength:  aws.Int64(int64(len(content))),
		ContentType:    aws.String(mimeType),
		ChecksumSHA256: aws.String(base64.StdEncoding.EncodeToString(hash[:])),
	})
	if err != nil {
		log.Printf("[AWS S3] 上传失败: objectKey=%s, err=%v", objectKey, err)
		return nil, fmt.Errorf("上传文件到AWS S3失败: %w", err)
	}

	log.Printf("[AWS S3] 上传成功: objectKey=%s", objectKey)
	return &UploadResult{Key: objectKey, Size: int64(len(content)), MimeType: mimeType}, nil
}

func (p *AWSS3Provider) Delete(ctx context.Context, policy *model.StoragePolicy, key string) error {
	client, err := p.getS3Client(ctx, policy)
	if err != nil {
		return err
	}
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(policy.BucketName),
		Key:    aws.String(key),
	})
	var notFound *types.NoSuchKey
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("删除AWS S3对象 %s 失败: %w", key, err)
	}
	return nil
}

func (p *AWSS3Provider) PublicURL(policy *model.StoragePolicy, key string) (string, error) {
	if err := checkPrivate(policy); err != nil {
		return "", err
	}
	if policy.BaseURL != "" {
		return joinURL(policy.BaseURL, key), nil
	}
	region, endpoint := resolveEndpoint(policy.Server)
	if endpoint != "" {
		return joinURL(strings.TrimSuffix(endpoint, "/")+"/"+policy.BucketName, key), nil
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", region, policy.BucketName, key), nil
}
