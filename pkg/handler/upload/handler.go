/*
 * @Description: 上传接口
 * @Author: 安知鱼
 * @Date: 2025-07-10 15:23:10
 * @LastEditTime: 2026-10-19 16:20:05
 * @LastEditors: 安知鱼
 */
package upload_handler

import (
	"net/http"
	"strconv"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"

	"github.com/gin-gonic/gin"
)

// FormFileField 上传表单中的文件字段名
const FormFileField = "file"

type Handler struct {
	uploadSvc upload.IUploadService
}

func NewHandler(uploadSvc upload.IUploadService) *Handler {
	return &Handler{uploadSvc: uploadSvc}
}

// UploadResponse 上传成功后的返回值
type UploadResponse struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	Key       string `json:"key"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
	Dimension string `json:"dimension"`
	MainColor string `json:"main_color"`
	Camera    string `json:"camera,omitempty"`
	TakenAt   string `json:"taken_at,omitempty"`
}

func toResponse(u *model.Upload) UploadResponse {
	return UploadResponse{
		ID:        u.ID,
		URL:       u.URL,
		Key:       u.ObjectKey,
		Size:      u.Size,
		MimeType:  u.MimeType,
		Dimension: u.Dimension,
		MainColor: u.MainColor,
		Camera:    u.Camera,
		TakenAt:   u.TakenAt,
	}
}

// Upload 上传单个文件
// @Summary      上传文件
// @Tags         上传
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        section  query     string  false  "所属板块"
// @Param        file     formData  file    true   "文件"
// @Success      201  {object}  response.Response{data=UploadResponse}
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Router       /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile(FormFileField)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "请选择要上传的文件")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "读取上传文件失败")
		return
	}
	defer f.Close()

	section := c.Query("section")
	if section == "" {
		section = c.PostForm("section")
	}

	record, err := h.uploadSvc.Upload(c.Request.Context(), &upload.Request{
		Section:     section,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      f,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, toResponse(record), "上传成功")
}

// List 分页列出上传记录
// @Summary      上传记录
// @Tags         上传
// @Security     BearerAuth
// @Router       /uploads [get]
func (h *Handler) List(c *gin.Context) {
	var query repository.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "分页参数错误")
		return
	}
	result, err := h.uploadSvc.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "获取成功")
}

// Delete 删除上传的文件
// @Summary      删除上传
// @Tags         上传
// @Security     BearerAuth
// @Router       /uploads/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, http.StatusBadRequest, "无效的ID")
		return
	}
	if err := h.uploadSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "删除成功")
}
