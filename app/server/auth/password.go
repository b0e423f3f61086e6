package auth

import (
	"fmt"
	"github.com/alexedwards/argon2id"
)

// HashPassword 生成带随机盐的 argon2id 哈希，结果是自描述的编码字符串，可以直接入库
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword 校验密码与存储的哈希是否匹配
// 密码不一致返回 (false, nil) ；哈希本身格式损坏时才返回错误，方便调用方区分记录日志
func VerifyPassword(storedHash string, candidate string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(candidate, storedHash)
	if err != nil {
		return false, fmt.Errorf("failed to check password hash: %w", err)
	}
	return match, nil
}
