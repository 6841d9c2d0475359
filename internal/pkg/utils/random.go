/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:25:50
 * @LastEditTime: 2026-10-19 12:07:33
 * @LastEditors: 安知鱼
 */
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomString 生成指定长度的 URL 安全随机字符串
func GenerateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("无效的随机字符串长度: %d", length)
	}
	// base64 每 3 字节编码为 4 个字符，多取一些再截断
	bytes := make([]byte, (length*3)/4+3)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:length], nil
}
