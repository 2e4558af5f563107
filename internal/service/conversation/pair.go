package conversation

import "venturedeck/pkg/errorx"

// CanonicalPair 把无序用户对规范为 (较小, 较大)，两个方向得到同一个键
func CanonicalPair(a, b string) (string, string, error) {
	if a == "" || b == "" {
		return "", "", errorx.ErrInvalidParam
	}
	if a == b {
		return "", "", errorx.New(errorx.CodeInvalidParam, "不能和自己创建会话")
	}
	if a < b {
		return a, b, nil
	}
	return b, a, nil
}
