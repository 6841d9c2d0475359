// pkg/constant/setting.go
/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-21 17:18:09
 * @LastEditTime: 2026-10-19 10:36:18
 * @LastEditors: 安知鱼
 */
package constant

// SettingKey 为所有在应用中使用的配置键定义了类型安全的常量。
type SettingKey string

// String 方便地将 SettingKey 转换为 string 类型。
func (k SettingKey) String() string {
	return string(k)
}

const (
	// --- 站点基础配置 (可暴露给前端) ---
	KeyAppName        SettingKey = "APP_NAME"
	KeySubTitle       SettingKey = "SUB_TITLE"
	KeySiteURL        SettingKey = "SITE_URL"
	KeyAppVersion     SettingKey = "APP_VERSION"
	KeyAdminPageTitle SettingKey = "ADMIN_PAGE_TITLE"

	// --- 上传相关 ---
	KeyUploadMaxSizeMB         SettingKey = "UPLOAD_MAX_SIZE_MB"
	KeyUploadAllowedExtensions SettingKey = "UPLOAD_ALLOWED_EXTENSIONS"
	KeyUploadImageMaxWidth     SettingKey = "UPLOAD_IMAGE_MAX_WIDTH"
	KeyUploadOrphanKeepHours   SettingKey = "UPLOAD_ORPHAN_KEEP_HOURS"

	// --- 安全相关 (不可暴露) ---
	KeyJWTSecret          SettingKey = "JWT_SECRET"
	KeyIDSeed             SettingKey = "ID_SEED"
	KeyEnableLoginCaptcha SettingKey = "ENABLE_LOGIN_CAPTCHA"
)
