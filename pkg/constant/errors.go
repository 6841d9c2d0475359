/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-27 12:08:15
 * @LastEditTime: 2026-10-19 10:20:31
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrForbidden 表示无权访问，可以由 Handler 转换为 403
	ErrForbidden = errors.New("操作禁止")

	// ErrConflict 表示资源冲突，可以由 Handler 转换为 409
	ErrConflict = errors.New("资源冲突")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrInvalidPublicID 表示无效的公共ID，可以由 Handler 转换为 400
	ErrInvalidPublicID = errors.New("无效的公共ID")

	// ErrCaptchaInvalid 表示验证码错误或已过期
	ErrCaptchaInvalid = errors.New("验证码错误或已过期")

	// ErrInvalidPolicyType 表示无效的存储策略类型
	ErrInvalidPolicyType = errors.New("无效的存储策略类型")

	// ErrUploadTooLarge 表示上传文件超过大小限制，可以由 Handler 转换为 413
	ErrUploadTooLarge = errors.New("上传文件超过大小限制")

	// ErrUploadTypeDenied 表示上传的文件类型不被允许，可以由 Handler 转换为 400
	ErrUploadTypeDenied = errors.New("不允许上传该类型的文件")

	// ErrUnknownSection 表示请求了不存在的内容板块
	ErrUnknownSection = errors.New("未知的内容板块")
)
