package httpserver_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, itemType, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="upload.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)

	require.NoError(t, w.WriteField("item_type", itemType))
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (v *env) upload(t *testing.T, token, itemType, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, formType := multipartUpload(t, itemType, contentType, payload)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/media/upload", body)
	req.Header.Set(echo.HeaderContentType, formType)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func TestMediaUploadEndpoint(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	rec := v.upload(t, token, "colors", "image/png", []byte("not really a png"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	decode(t, rec, &res)
	require.NotEmpty(t, res.URL)
	require.Contains(t, v.disk.Objects, res.PublicID)

	rec = v.upload(t, token, "colors", "text/html", []byte("<html>"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = v.upload(t, token, "gadgets", "image/png", []byte("png"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaDeleteEndpoint(t *testing.T) {
	v := newEnv(t)
	token := v.adminToken(t)

	rec := v.upload(t, token, "other-fidgets", "image/webp", []byte("webp"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var res struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	decode(t, rec, &res)

	rec = v.do(t, http.MethodDelete, "/api/admin/media", map[string]any{
		"public_id": res.PublicID,
	}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, v.disk.Objects, res.PublicID)
}
