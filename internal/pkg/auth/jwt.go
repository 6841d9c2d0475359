/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 12:18:45
 * @LastEditors: 安知鱼
 */
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/idgen"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySecret = errors.New("JWT Secret 不能为空")

func generate(adminID uint, username string, tokenType TokenType, ttl time.Duration, secretKey []byte) (string, time.Time, error) {
	if len(secretKey) == 0 {
		return "", time.Time{}, errEmptySecret
	}

	publicID, err := idgen.GeneratePublicID(adminID, idgen.EntityTypeAdminUser)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("生成管理员公共ID失败: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := CustomClaims{
		AdminID:   publicID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateToken 生成 Access Token，返回令牌及其过期时间
func GenerateToken(adminID uint, username string, secretKey []byte) (string, time.Time, error) {
	return generate(adminID, username, TokenTypeAccess, AccessTokenTTL, secretKey)
}

// GenerateRefreshToken 生成 Refresh Token
func GenerateRefreshToken(adminID uint, secretKey []byte) (string, time.Time, error) {
	return generate(adminID, "", TokenTypeRefresh, RefreshTokenTTL, secretKey)
}

// ParseToken 解析并校验令牌，expected 为期望的令牌类型
func ParseToken(tokenStr string, expected TokenType, secretKey []byte) (*CustomClaims, error) {
	if len(secretKey) == 0 {
		return nil, errEmptySecret
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidToken, err)
	}
	if !token.Valid || claims.TokenType != expected {
		return nil, constant.ErrInvalidToken
	}
	return claims, nil
}

// AdminIDFromClaims 把 Claims 中的公共 ID 解码为数据库 ID
func AdminIDFromClaims(claims *CustomClaims) (uint, error) {
	id, err := idgen.DecodePublicID(claims.AdminID, idgen.EntityTypeAdminUser)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", constant.ErrInvalidPublicID, err)
	}
	return id, nil
}
