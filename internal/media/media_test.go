package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadStoresUnderItemTypeFolder(t *testing.T) {
	disk := NewMemDisk()
	svc := &Service{Disk: disk}

	res, err := svc.Upload(context.Background(), "colors", "image/png", 4, strings.NewReader("fake"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.PublicID, "fidgi/colors/"))
	require.True(t, strings.HasSuffix(res.PublicID, ".png"))
	require.Equal(t, "https://media.test/"+res.PublicID, res.URL)
	require.Contains(t, disk.Objects, res.PublicID)
}

func TestUploadRejectsUnknownItemType(t *testing.T) {
	svc := &Service{Disk: NewMemDisk()}
	_, err := svc.Upload(context.Background(), "gadgets", "image/png", 4, strings.NewReader("fake"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestUploadRejectsUnknownContentType(t *testing.T) {
	svc := &Service{Disk: NewMemDisk()}
	_, err := svc.Upload(context.Background(), "colors", "application/pdf", 4, strings.NewReader("fake"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestUploadRejectsBadSize(t *testing.T) {
	svc := &Service{Disk: NewMemDisk()}

	_, err := svc.Upload(context.Background(), "colors", "image/png", 0, strings.NewReader(""))
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(context.Background(), "colors", "image/png", MaxUploadSize+1, strings.NewReader("x"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteByPublicIDAndByURL(t *testing.T) {
	disk := NewMemDisk()
	svc := &Service{Disk: disk}
	ctx := context.Background()

	a, err := svc.Upload(ctx, "prebuilt", "image/jpeg", 4, strings.NewReader("aaaa"))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, "prebuilt", "image/jpeg", 4, strings.NewReader("bbbb"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "", a.PublicID))
	require.NotContains(t, disk.Objects, a.PublicID)

	require.NoError(t, svc.Delete(ctx, b.URL, ""))
	require.NotContains(t, disk.Objects, b.PublicID)

	require.ErrorIs(t, svc.Delete(ctx, "", ""), ErrValidation)
}

func TestExtractPublicID(t *testing.T) {
	id, err := ExtractPublicID("https://bucket.s3.eu-west-1.amazonaws.com/fidgi/colors/abc.png")
	require.NoError(t, err)
	require.Equal(t, "fidgi/colors/abc.png", id)

	// Path-style endpoints keep the bucket in the path.
	id, err = ExtractPublicID("https://minio.local/fidgi-media/fidgi/switches/x.webp")
	require.NoError(t, err)
	require.Equal(t, "fidgi/switches/x.webp", id)

	_, err = ExtractPublicID("https://elsewhere.test/uploads/abc.png")
	require.ErrorIs(t, err, ErrValidation)
}
