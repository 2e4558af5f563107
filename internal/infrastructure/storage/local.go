package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalAvatarRoute 本地头像的静态路由前缀
const LocalAvatarRoute = "/static/avatars"

// LocalStorage 开发环境使用的磁盘存储
type LocalStorage struct {
	dir       string
	publicURL string
}

func NewLocalStorage(dir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir %s: %w", dir, err)
	}
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" {
		base = LocalAvatarRoute
	}
	return &LocalStorage{dir: dir, publicURL: base}, nil
}

func (s *LocalStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	// key 可能带目录，本地统一平铺
	name := filepath.Base(key)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return s.publicURL + "/" + name, nil
}

func (s *LocalStorage) PresignPut(context.Context, string, string) (*PresignedUpload, error) {
	return nil, ErrPresignUnsupported
}

// Dir 本地目录，供静态路由挂载
func (s *LocalStorage) Dir() string {
	return s.dir
}
