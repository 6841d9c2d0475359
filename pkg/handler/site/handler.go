// pkg/handler/site/handler.go
package site_handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/anzhiyu-c/anheyu-cms/internal/configdef"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"

	"github.com/gin-gonic/gin"
)

// secretKeys 只在首次启动时生成，不允许通过接口读取或修改
var secretKeys = map[constant.SettingKey]struct{}{
	constant.KeyJWTSecret: {},
	constant.KeyIDSeed:    {},
}

type Handler struct {
	settingSvc setting.SettingService
}

func NewHandler(settingSvc setting.SettingService) *Handler {
	return &Handler{settingSvc: settingSvc}
}

// GetSiteConfig 返回可以公开的站点配置
// @Summary      获取站点配置
// @Tags         站点
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /public/site [get]
func (h *Handler) GetSiteConfig(c *gin.Context) {
	cfg := h.settingSvc.GetSiteConfig()
	cfg[constant.KeyAppVersion.String()] = version.GetVersion()
	response.Success(c, cfg, "获取站点配置成功")
}

// SettingItem 是后台看到的一个配置项
type SettingItem struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Comment string `json:"comment"`
	Public  bool   `json:"public"`
}

// ListSettings 列出全部可编辑的配置项
// @Summary      获取全部配置
// @Tags         站点
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]SettingItem}
// @Router       /settings [get]
func (h *Handler) ListSettings(c *gin.Context) {
	items := make([]SettingItem, 0, len(configdef.AllSettings))
	for _, def := range configdef.AllSettings {
		if _, secret := secretKeys[def.Key]; secret {
			continue
		}
		items = append(items, SettingItem{
			Key:     def.Key.String(),
			Value:   h.settingSvc.Get(def.Key.String()),
			Comment: def.Comment,
			Public:  def.IsPublic,
		})
	}
	response.Success(c, items, "获取配置成功")
}

// validateUpdate 只允许修改代码中定义过的非密钥配置
func validateUpdate(values map[string]string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: 没有需要更新的配置项", constant.ErrBadRequest)
	}
	known := make(map[string]struct{}, len(configdef.AllSettings))
	for _, def := range configdef.AllSettings {
		known[def.Key.String()] = struct{}{}
	}
	for key := range values {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("%w: 未知的配置项 %s", constant.ErrBadRequest, key)
		}
		if _, secret := secretKeys[constant.SettingKey(key)]; secret {
			return fmt.Errorf("%w: 配置项 %s 不允许修改", constant.ErrForbidden, key)
		}
	}
	return nil
}

// UpdateSettings 批量更新配置，立即生效
// @Summary      更新配置
// @Tags         站点
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]string  true  "配置键值"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}
	if err := validateUpdate(values); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.settingSvc.UpdateSettings(c.Request.Context(), values); err != nil {
		log.Printf("[SiteHandler] ⚠️ 更新配置失败: %v", err)
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "配置更新成功")
}
