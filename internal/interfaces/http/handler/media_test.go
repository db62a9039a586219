package handler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appmedia "github.com/atedres/boldnet-sub000/internal/application/media"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/genai"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIcons struct {
	icon *genai.Icon
	err  error
}

func (s stubIcons) Generate(context.Context, string) (*genai.Icon, error) {
	return s.icon, s.err
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 30, G: uint8(y), B: uint8(x), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		fw, err := mw.CreateFormFile("file", "logo.png")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func mediaEngine(svc *appmedia.MediaService) *gin.Engine {
	h := NewMediaHandler(svc)
	engine := gin.New()
	engine.POST("/media/images", h.UploadImage)
	engine.POST("/media/icons", h.GenerateIcon)
	return engine
}

func TestMediaHandler_UploadImage(t *testing.T) {
	store := storage.NewStubImageStore("https://cdn.example.com")
	engine := mediaEngine(appmedia.NewMediaService(store, nil, nil, 0, nil, nil))

	t.Run("hosts the image", func(t *testing.T) {
		body, ct := multipartBody(t, testPNG(t, 80, 40), map[string]string{"width": "20", "height": "20"})
		req := httptest.NewRequest(http.MethodPost, "/media/images", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(data["url"].(string), "https://cdn.example.com/images/"))
		assert.EqualValues(t, 20, data["width"])
		assert.Equal(t, 1, store.Len())
	})

	tests := []struct {
		name   string
		data   []byte
		fields map[string]string
		status int
		code   string
	}{
		{"missing file", nil, nil, http.StatusBadRequest, "ERR_BAD_REQUEST"},
		{"not an image", []byte("plain text, not pixels"), nil, http.StatusUnsupportedMediaType, appmedia.ErrUnsupportedImageType.Code},
		{"width out of range", testPNG(t, 4, 4), map[string]string{"width": "5000"}, http.StatusBadRequest, "ERR_BAD_REQUEST"},
		{"height not a number", testPNG(t, 4, 4), map[string]string{"height": "tall"}, http.StatusBadRequest, "ERR_BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, tt.data, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/media/images", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestMediaHandler_UploadImageTooLarge(t *testing.T) {
	store := storage.NewStubImageStore("")
	svc := appmedia.NewMediaService(store, nil, nil, 1024, nil, nil)
	h := NewMediaHandler(svc)
	assert.Equal(t, int64(1024)+MultipartOverhead, h.BodyLimit())

	body, ct := multipartBody(t, bytes.Repeat([]byte{0x89}, 2048), nil)
	req := httptest.NewRequest(http.MethodPost, "/media/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	mediaEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, appmedia.ErrFileTooLarge.Code, decodeResponse(t, w).Error.Code)
	assert.Zero(t, store.Len())
}

func TestMediaHandler_GenerateIcon(t *testing.T) {
	tests := []struct {
		name   string
		icons  appmedia.IconGenerator
		body   string
		status int
	}{
		{"generated", stubIcons{icon: &genai.Icon{Data: testPNG(t, 16, 16), ContentType: "image/png"}}, `{"serviceName":"Web Design"}`, http.StatusCreated},
		{"billing disabled", stubIcons{err: genai.ErrBillingDisabled}, `{"serviceName":"Web Design"}`, http.StatusPaymentRequired},
		{"not configured", nil, `{"serviceName":"Web Design"}`, http.StatusServiceUnavailable},
		{"name required", stubIcons{}, `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := appmedia.NewMediaService(storage.NewStubImageStore(""), nil, tt.icons, 0, nil, nil)
			req := httptest.NewRequest(http.MethodPost, "/media/icons", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			mediaEngine(svc).ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}
