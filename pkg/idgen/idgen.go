/*
 * @Description: 公共 ID 生成和解码服务
 * @Author: 安知鱼
 * @Date: 2025-06-17 20:38:15
 * @LastEditTime: 2026-10-19 12:14:20
 * @LastEditors: 安知鱼
 */
package idgen

import (
	"fmt"
	mrand "math/rand"
	"sync"

	"github.com/sqids/sqids-go"
)

// DefaultAlphabet 是默认的字母表
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityType 区分不同实体的公共 ID，避免不同表的同一个自增 ID 编码后相同
const (
	EntityTypeAdminUser uint64 = 1
	EntityTypeUpload    uint64 = 2
)

var (
	mu           sync.RWMutex
	sqidsEncoder *sqids.Sqids
)

// shuffleAlphabet 使用种子确定性地打乱字母表
func shuffleAlphabet(seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}
	r := mrand.New(mrand.NewSource(seedInt))

	alphabet := []rune(DefaultAlphabet)
	r.Shuffle(len(alphabet), func(i, j int) {
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	})
	return string(alphabet)
}

// InitSqidsEncoderWithSeed 使用 ID_SEED 初始化编码器，seed 为空时使用默认字母表
func InitSqidsEncoderWithSeed(seed string) error {
	alphabet := DefaultAlphabet
	if seed != "" {
		alphabet = shuffleAlphabet(seed)
	}

	s, err := sqids.New(sqids.Options{
		MinLength: 6,
		Alphabet:  alphabet,
	})
	if err != nil {
		return fmt.Errorf("初始化 Sqids 编码器失败: %w", err)
	}

	mu.Lock()
	sqidsEncoder = s
	mu.Unlock()
	return nil
}

func encoder() (*sqids.Sqids, error) {
	mu.RLock()
	defer mu.RUnlock()
	if sqidsEncoder == nil {
		return nil, fmt.Errorf("Sqids 编码器未初始化")
	}
	return sqidsEncoder, nil
}

// GeneratePublicID 把数据库 ID 和实体类型编码为公共 ID
func GeneratePublicID(dbID uint, entityType uint64) (string, error) {
	s, err := encoder()
	if err != nil {
		return "", err
	}
	id, err := s.Encode([]uint64{uint64(dbID), entityType})
	if err != nil {
		return "", fmt.Errorf("编码公共ID失败: %w", err)
	}
	return id, nil
}

// DecodePublicID 解码公共 ID，并校验实体类型
func DecodePublicID(publicID string, expectedType uint64) (uint, error) {
	s, err := encoder()
	if err != nil {
		return 0, err
	}
	numbers := s.Decode(publicID)
	if len(numbers) != 2 {
		return 0, fmt.Errorf("无法从公共ID解码出预期数量的数字(期望2个，得到%d个)", len(numbers))
	}
	if numbers[1] != expectedType {
		return 0, fmt.Errorf("公共ID的实体类型不匹配(期望%d，得到%d)", expectedType, numbers[1])
	}
	return uint(numbers[0]), nil
}
