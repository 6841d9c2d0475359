package configdef

import (
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
)

// Definition 定义了单个配置项的所有属性。
type Definition struct {
	Key      constant.SettingKey
	Value    string
	Comment  string
	IsPublic bool
}

// AllSettings 是系统中所有配置项的"单一事实来源"。
// JWT_SECRET 和 ID_SEED 的默认值为空，由 bootstrap 在首次启动时随机生成。
var AllSettings = []Definition{
	// --- 站点基础配置 ---
	{Key: constant.KeyAppName, Value: "安和鱼", Comment: "站点名称", IsPublic: true},
	{Key: constant.KeySubTitle, Value: "内容管理后台", Comment: "站点副标题", IsPublic: true},
	{Key: constant.KeySiteURL, Value: "http://localhost:8091", Comment: "站点URL", IsPublic: true},
	{Key: constant.KeyAdminPageTitle, Value: "内容管理", Comment: "后台页面标题", IsPublic: false},

	// --- 上传配置 ---
	{Key: constant.KeyUploadMaxSizeMB, Value: "10", Comment: "单个上传文件的最大体积(MB)", IsPublic: true},
	{Key: constant.KeyUploadAllowedExtensions, Value: "jpg,jpeg,png,gif,webp,svg,ico,pdf", Comment: "允许上传的文件后缀名白名单，逗号分隔", IsPublic: true},
	{Key: constant.KeyUploadImageMaxWidth, Value: "1920", Comment: "图片最大宽度，超过时自动等比缩小，0为不处理", IsPublic: false},
	{Key: constant.KeyUploadOrphanKeepHours, Value: "24", Comment: "未被任何内容引用的上传文件保留时长(小时)", IsPublic: false},

	// --- 安全配置 ---
	{Key: constant.KeyJWTSecret, Value: "", Comment: "JWT 签名密钥", IsPublic: false},
	{Key: constant.KeyIDSeed, Value: "", Comment: "公共ID混淆种子", IsPublic: false},
	{Key: constant.KeyEnableLoginCaptcha, Value: "true", Comment: "登录时是否需要图形验证码", IsPublic: true},
}
