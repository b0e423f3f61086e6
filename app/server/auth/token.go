package auth

import (
	"corner-shop/app/server/constants"
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewSessionToken 生成 128 位字母数字会话令牌
// 必须使用密码学安全的随机源，不能用 math/rand 之类可预测的生成器
func NewSessionToken() (string, error) {
	token := make([]byte, constants.SessionTokenLen)
	max := big.NewInt(int64(len(tokenAlphabet)))

	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		token[i] = tokenAlphabet[n.Int64()]
	}

	return string(token), nil
}
