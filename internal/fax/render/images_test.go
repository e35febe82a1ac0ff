// internal/fax/render/images_test.go
package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSniffImageType(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	got, ok := sniffImageType(pngBuf.Bytes())
	require.True(t, ok)
	assert.Equal(t, "PNG", got)

	got, ok = sniffImageType([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	require.True(t, ok)
	assert.Equal(t, "JPG", got)

	_, ok = sniffImageType([]byte("GIF89a"))
	assert.False(t, ok)
}

func TestFetchAllMixedResults(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.png":
			_, _ = w.Write(pngBuf.Bytes())
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "/not-an-image":
			_, _ = w.Write([]byte("<html>hello</html>"))
		}
	}))
	defer srv.Close()

	f := NewImageFetcher(2, 2*time.Second, zap.NewNop())
	results := f.FetchAll(context.Background(), []string{
		srv.URL + "/good.png",
		srv.URL + "/broken",
		srv.URL + "/not-an-image",
	})

	require.Len(t, results, 1)
	got := results[srv.URL+"/good.png"]
	assert.Equal(t, "PNG", got.Type)
	assert.Equal(t, pngBuf.Bytes(), got.Data)
}

func TestFetchAllEmptyInput(t *testing.T) {
	f := NewImageFetcher(4, time.Second, zap.NewNop())
	assert.Empty(t, f.FetchAll(context.Background(), nil))
}

func TestFetchAllCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewImageFetcher(1, 2*time.Second, zap.NewNop())
	results := f.FetchAll(ctx, []string{srv.URL + "/slow.png"})
	assert.Empty(t, results)
}

func TestFetchAllTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewImageFetcher(1, 50*time.Millisecond, zap.NewNop())
	start := time.Now()
	results := f.FetchAll(context.Background(), []string{srv.URL + "/slow.png"})
	assert.Empty(t, results)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}
