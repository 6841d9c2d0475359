/*
 * @Description: 内容板块的 JSON 接口，所有板块共用一套路由
 * @Author: 安知鱼
 * @Date: 2026-10-19 16:10:27
 * @LastEditTime: 2026-10-19 16:10:27
 * @LastEditors: 安知鱼
 */
package content_handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"

	"github.com/gin-gonic/gin"
)

// 请求体上限，富文本内容较长
const maxBodyBytes = 2 << 20

type Handler struct {
	registry *content.Registry
}

func NewHandler(registry *content.Registry) *Handler {
	return &Handler{registry: registry}
}

// SectionDescriptor 是板块描述加上已解析的下拉框选项
type SectionDescriptor struct {
	content.Section
	Options map[string][]content.Option `json:"options,omitempty"`
}

// UpdateResponse PUT 的返回值，changed 为 false 时表示内容未变化且没有写库
type UpdateResponse struct {
	Changed bool `json:"changed"`
	Record  any  `json:"record"`
}

// ListResponse 分页列表
type ListResponse struct {
	List     []any `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func (h *Handler) panel(c *gin.Context) (content.Panel, bool) {
	p, err := h.registry.Get(c.Param("section"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return p, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, http.StatusBadRequest, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// readBody 读取请求体，超过 maxBodyBytes 时返回 413
func readBody(c *gin.Context) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "读取请求体失败")
		return nil, false
	}
	if len(data) > maxBodyBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("请求体超过 %d MB 限制", maxBodyBytes>>20))
		return nil, false
	}
	return data, true
}

// ListSections 返回所有板块的描述
// @Summary      板块列表
// @Tags         内容
// @Produce      json
// @Success      200  {object}  response.Response{data=[]SectionDescriptor}
// @Router       /public/sections [get]
func (h *Handler) ListSections(c *gin.Context) {
	ctx := c.Request.Context()
	out := make([]SectionDescriptor, 0)
	for _, section := range h.registry.Sections() {
		desc := SectionDescriptor{Section: section}
		for _, f := range section.FieldsOfKind(content.KindSelect) {
			if f.Options == nil {
				continue
			}
			opts, err := f.Options(ctx)
			if err != nil {
				log.Printf("[ContentHandler] ⚠️ 加载板块 %s 字段 %s 的选项失败: %v", section.Key, f.Name, err)
				continue
			}
			if desc.Options == nil {
				desc.Options = make(map[string][]content.Option)
			}
			desc.Options[f.Name] = opts
		}
		out = append(out, desc)
	}
	response.Success(c, out, "获取板块列表成功")
}

// PublicList 返回板块的公开数据（带缓存）
// @Summary      板块公开数据
// @Tags         内容
// @Produce      json
// @Param        section  path  string  true  "板块名"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /public/{section} [get]
func (h *Handler) PublicList(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}
	items, err := p.PublicList(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items, "获取成功")
}

// List 管理端列表，带 page 参数时分页
// @Summary      板块记录列表
// @Tags         内容管理
// @Security     BearerAuth
// @Produce      json
// @Param        section   path   string  true   "板块名"
// @Param        page      query  int     false  "页码"
// @Param        pageSize  query  int     false  "每页数量"
// @Router       /{section} [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}

	if c.Query("page") == "" {
		items, err := p.List(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, items, "获取列表成功")
		return
	}

	var query repository.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "分页参数错误")
		return
	}
	query = query.Normalize()
	items, total, err := p.Page(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ListResponse{List: items, Total: total, Page: query.Page, PageSize: query.PageSize}, "获取列表成功")
}

// Get 获取单条记录
// @Summary      获取记录
// @Tags         内容管理
// @Security     BearerAuth
// @Router       /{section}/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := p.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rec, "获取成功")
}

// Create 新建记录
// @Summary      新建记录
// @Tags         内容管理
// @Security     BearerAuth
// @Accept       json
// @Router       /{section} [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	rec, err := p.Create(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, rec, "创建成功")
}

// Update 更新记录，内容没有变化时不会写库
// @Summary      更新记录
// @Tags         内容管理
// @Security     BearerAuth
// @Accept       json
// @Success      200  {object}  response.Response{data=UpdateResponse}
// @Router       /{section}/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	changed, rec, err := p.Update(c.Request.Context(), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := "更新成功"
	if !changed {
		msg = "内容未变化"
	}
	response.Success(c, UpdateResponse{Changed: changed, Record: rec}, msg)
}

// Delete 删除记录
// @Summary      删除记录
// @Tags         内容管理
// @Security     BearerAuth
// @Router       /{section}/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	p, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := p.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "删除成功")
}

