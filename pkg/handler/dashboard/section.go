// pkg/handler/dashboard/section.go
package dashboard

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"

	"github.com/gin-gonic/gin"
)

// panel 取出 URL 中的板块，未知板块直接渲染错误页
func (h *Handler) panel(c *gin.Context) (content.Panel, *content.Section, bool) {
	p, err := h.registry.Get(c.Param("section"))
	if err != nil {
		h.renderError(c, nil, err)
		return nil, nil, false
	}
	section := p.Section()
	return p, &section, true
}

func (h *Handler) recordID(c *gin.Context, section *content.Section) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.renderError(c, section, fmt.Errorf("%w: 无效的ID %s", constant.ErrBadRequest, c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

func sectionURL(section *content.Section) string {
	return "/admin/" + string(section.Key)
}

// renderForm 渲染新建或编辑表单
func (h *Handler) renderForm(c *gin.Context, status int, section *content.Section, id uint, values content.Record, errMsg, notice string) {
	action := sectionURL(section)
	title := "新建" + section.Title
	if id != 0 {
		action = fmt.Sprintf("%s/%d", action, id)
		title = "编辑" + section.Title
	}
	data := h.view(c, title)
	data["Section"] = section
	data["Form"] = buildForm(c.Request.Context(), *section, action, id != 0, values)
	data["Error"] = errMsg
	data["Notice"] = notice
	c.HTML(status, "form.html", data)
}

// List GET /admin/:section
// 加载失败显示错误文字，没有记录时直接显示新建表单，否则显示列表
func (h *Handler) List(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	items, err := p.List(c.Request.Context())
	if err != nil {
		h.renderError(c, section, err)
		return
	}
	if len(items) == 0 {
		h.renderForm(c, http.StatusOK, section, 0, nil, "", "还没有任何记录，填写下面的表单创建第一条。")
		return
	}

	cols := listColumns(*section)
	data := h.view(c, section.Title)
	data["Section"] = section
	data["Columns"] = cols
	data["Rows"] = buildRows(*section, cols, items)
	c.HTML(http.StatusOK, "list.html", data)
}

// New GET /admin/:section/new
func (h *Handler) New(c *gin.Context) {
	_, section, ok := h.panel(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, section, 0, nil, "", "")
}

// Create POST /admin/:section
func (h *Handler) Create(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	values, err := formValues(c, *section, h.uploadSvc)
	if err != nil {
		h.renderForm(c, response.StatusOf(err), section, 0, recordFromValues(*section, values), err.Error(), "")
		return
	}
	data, err := content.DecodeForm(*section, values)
	if err == nil {
		_, err = p.Create(c.Request.Context(), data)
	}
	if err != nil {
		h.renderForm(c, response.StatusOf(err), section, 0, recordFromValues(*section, values), err.Error(), "")
		return
	}
	c.Redirect(http.StatusFound, sectionURL(section)+"?msg=created")
}

// Edit GET /admin/:section/:id/edit，每次都重新读取记录
func (h *Handler) Edit(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c, section)
	if !ok {
		return
	}
	rec, err := p.Get(c.Request.Context(), id)
	if err != nil {
		h.renderFetchError(c, section, err)
		return
	}
	values, err := content.ToRecord(rec)
	if err != nil {
		h.renderError(c, section, err)
		return
	}
	h.renderForm(c, http.StatusOK, section, id, values, "", "")
}

// renderFetchError 记录不存在时显示 NoDataMessage
func (h *Handler) renderFetchError(c *gin.Context, section *content.Section, err error) {
	if !isNotFound(err) {
		h.renderError(c, section, err)
		return
	}
	data := h.view(c, section.Title)
	data["Section"] = section
	data["Message"] = NoDataMessage
	c.HTML(http.StatusNotFound, "message.html", data)
}

// Update POST /admin/:section/:id，内容没有变化时不写库
func (h *Handler) Update(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c, section)
	if !ok {
		return
	}
	values, err := formValues(c, *section, h.uploadSvc)
	if err != nil {
		h.renderForm(c, response.StatusOf(err), section, id, recordFromValues(*section, values), err.Error(), "")
		return
	}

	var changed bool
	data, err := content.DecodeForm(*section, values)
	if err == nil {
		changed, _, err = p.Update(c.Request.Context(), id, data)
	}
	if err != nil {
		if isNotFound(err) {
			h.renderFetchError(c, section, err)
			return
		}
		h.renderForm(c, response.StatusOf(err), section, id, recordFromValues(*section, values), err.Error(), "")
		return
	}

	msg := "updated"
	if !changed {
		msg = "unchanged"
	}
	c.Redirect(http.StatusFound, sectionURL(section)+"?msg="+msg)
}

// ConfirmDelete GET /admin/:section/:id/delete
func (h *Handler) ConfirmDelete(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c, section)
	if !ok {
		return
	}
	rec, err := p.Get(c.Request.Context(), id)
	if err != nil {
		h.renderFetchError(c, section, err)
		return
	}
	title := ""
	if values, err := content.ToRecord(rec); err == nil {
		title = values.String(section.TitleField)
	}

	data := h.view(c, "删除"+section.Title)
	data["Section"] = section
	data["ID"] = id
	data["RecordTitle"] = title
	c.HTML(http.StatusOK, "confirm.html", data)
}

// Delete POST /admin/:section/:id/delete
func (h *Handler) Delete(c *gin.Context) {
	p, section, ok := h.panel(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c, section)
	if !ok {
		return
	}
	if err := p.Delete(c.Request.Context(), id); err != nil {
		h.renderFetchError(c, section, err)
		return
	}
	c.Redirect(http.StatusFound, sectionURL(section)+"?msg=deleted")
}
