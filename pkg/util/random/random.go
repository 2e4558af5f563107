package random

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetNowAndLenRandomString 生成带日期前缀的随机字符串
// 格式: YYMMDD + 字母数字混合，示例: 261019AbCdE12345
func GetNowAndLenRandomString(length int) string {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return time.Now().Format("060102") + string(result)
}

// NewUuid 生成业务实体 ID，prefix 区分实体类型（U 资料，R 请求，C 会话，N 通知，P 动态）
func NewUuid(prefix string) string {
	return prefix + GetNowAndLenRandomString(11)
}

// GetSecureToken 生成 n 字节的十六进制随机串，用于一次性链接
func GetSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
