// pkg/service/upload/policy.go
package upload

import (
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// PolicyFromConfig 读取配置文件的 [Storage] 段，未知类型返回 constant.ErrInvalidPolicyType
func PolicyFromConfig(cfg *config.Config) (*model.StoragePolicy, error) {
	policyType := constant.StoragePolicyType(strings.ToLower(strings.TrimSpace(cfg.GetString(config.KeyStorageType))))
	if policyType == "" {
		policyType = constant.PolicyTypeLocal
	}
	if !policyType.IsValid() {
		return nil, constant.ErrInvalidPolicyType
	}

	policy := &model.StoragePolicy{
		Type:       policyType,
		Server:     strings.TrimSpace(cfg.GetString(config.KeyStorageServer)),
		BucketName: strings.TrimSpace(cfg.GetString(config.KeyStorageBucket)),
		IsPrivate:  cfg.GetBool(config.KeyStoragePrivate),
		AccessKey:  cfg.GetString(config.KeyStorageAccessKey),
		SecretKey:  cfg.GetString(config.KeyStorageSecretKey),
		BasePath:   strings.Trim(cfg.GetString(config.KeyStoragePathPrefix), "/ "),
		BaseURL:    strings.TrimSpace(cfg.GetString(config.KeyStorageBaseURL)),
	}
	// 本地存储把 LocalDir 当作存储桶
	if policyType == constant.PolicyTypeLocal {
		policy.BucketName = strings.TrimSpace(cfg.GetString(config.KeyStorageLocalDir))
		if policy.BucketName == "" {
			policy.BucketName = constant.DefaultLocalUploadDir
		}
	}
	return policy, nil
}
