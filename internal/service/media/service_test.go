package media

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"venturedeck/internal/dto/request"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	key     string
	data    string
	presign bool
}

func (s *recordingStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.key, s.data = key, string(b)
	return "https://cdn.local/" + key, nil
}

func (s *recordingStore) PresignPut(_ context.Context, key, _ string) (*storage.PresignedUpload, error) {
	if !s.presign {
		return nil, storage.ErrPresignUnsupported
	}
	return &storage.PresignedUpload{URL: "https://s3.local/" + key + "?sig", Key: key, PublicURL: "https://cdn.local/" + key, ExpiresAt: time.Now()}, nil
}

type recordingProfiles struct {
	url string
}

func (p *recordingProfiles) SetAvatar(_ context.Context, _ session.Session, url string) error {
	p.url = url
	return nil
}

func TestUploadAvatar(t *testing.T) {
	store, profiles := &recordingStore{}, &recordingProfiles{}
	svc := NewMediaService(store, profiles)
	me := session.New("U1")

	rsp, err := svc.UploadAvatar(context.Background(), me, "me.PNG", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "avatars/U1-"))
	assert.True(t, strings.HasSuffix(store.key, ".png"))
	assert.Equal(t, "png", store.data, "content stored unmodified")
	assert.Equal(t, rsp.AvatarUrl, profiles.url)
}

func TestUploadAvatarRejects(t *testing.T) {
	svc := NewMediaService(&recordingStore{}, &recordingProfiles{})
	me := session.New("U1")
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, me, "big.png", "image/png", constants.FILE_MAX_SIZE+1, strings.NewReader(""))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, err = svc.UploadAvatar(ctx, me, "doc.pdf", "application/pdf", 10, strings.NewReader(""))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, err = svc.UploadAvatar(ctx, me, "x.exe", "image/png", 10, strings.NewReader(""))
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestPresign(t *testing.T) {
	me := session.New("U1")
	req := request.PresignRequest{FileName: "me.jpg", ContentType: "image/jpeg"}

	_, err := NewMediaService(&recordingStore{}, &recordingProfiles{}).Presign(context.Background(), me, req)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	rsp, err := NewMediaService(&recordingStore{presign: true}, &recordingProfiles{}).Presign(context.Background(), me, req)
	require.NoError(t, err)
	assert.Contains(t, rsp.UploadUrl, "?sig")
	assert.True(t, strings.HasSuffix(rsp.PublicUrl, ".jpg"))
}
