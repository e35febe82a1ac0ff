// internal/fax/render/renderer_test.go
package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faxgen/internal/fax/builder"
	"faxgen/internal/fax/document"
	"faxgen/internal/fax/paginate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func welcomeTemplate(t *testing.T, refID string) document.Template {
	t.Helper()
	blocks := builder.Welcome(document.WelcomeFaxData{
		PhoneNumber:  "819012345678",
		EmailAddress: "819012345678@me.faxi.jp",
	})
	pages, err := paginate.Paginate(blocks, refID)
	require.NoError(t, err)
	return document.Template{Type: document.TypeWelcome, ReferenceID: refID, Pages: pages}
}

func TestRenderMagicBytes(t *testing.T) {
	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), welcomeTemplate(t, "FX-2026-000123"))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, []byte("%PDF"), out[:4])
}

func TestRenderFooterTextOnEveryPage(t *testing.T) {
	// uncompressed streams let us assert on drawn text directly
	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), welcomeTemplate(t, "FX-2026-000123"))
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte("FX-2026-000123")))
	assert.True(t, bytes.Contains(out, []byte("Page 1 of")))
}

func TestRenderIdempotent(t *testing.T) {
	tmpl := welcomeTemplate(t, "FX-2026-000456")
	r := New(nil, zap.NewNop())

	first, err := r.Render(context.Background(), tmpl)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), tmpl)
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.Equal(t,
		bytes.Count(first, []byte("/Type /Page")),
		bytes.Count(second, []byte("/Type /Page")))
}

func TestRenderDrawsCheckboxRows(t *testing.T) {
	pages, err := paginate.Paginate([]document.Block{
		document.Header{Text: "Delivery preferences", FontSize: 18, Alignment: document.AlignCenter, MarginBottom: 8},
		document.Checkbox{Options: []document.Option{
			{Label: "A", Text: "Leave at front door"},
			{Label: "B", Text: "Hand to resident"},
		}},
	}, "FX-2026-000088")
	require.NoError(t, err)

	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), document.Template{
		Type:        document.TypeWelcome,
		ReferenceID: "FX-2026-000088",
		Pages:       pages,
	})
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte("A. Leave at front door")))
	assert.True(t, bytes.Contains(out, []byte("B. Hand to resident")))
	// squares are stroked rects, not circles
	assert.True(t, bytes.Contains(out, []byte(" re\n")) || bytes.Contains(out, []byte(" re ")))
}

func TestRenderImageFallback(t *testing.T) {
	pages, err := paginate.Paginate([]document.Block{
		document.Header{Text: "Faxi", FontSize: 24},
		document.Image{URL: "http://unreachable.invalid/x.png", Fallback: "[Image unavailable: diagram]"},
	}, "FX-2026-000900")
	require.NoError(t, err)

	// nil fetcher means no image ever resolves
	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), document.Template{
		Type: document.TypeGeneralInquiry, ReferenceID: "FX-2026-000900", Pages: pages,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out[:4])
	assert.True(t, bytes.Contains(out, []byte("Image unavailable: diagram")))
}

func TestRenderEmbedsFetchedImage(t *testing.T) {
	var pngBuf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	require.NoError(t, png.Encode(&pngBuf, img))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBuf.Bytes())
	}))
	defer srv.Close()

	pages, err := paginate.Paginate([]document.Block{
		document.Header{Text: "Faxi", FontSize: 24},
		document.Image{URL: srv.URL + "/pic.png", Caption: "test image"},
	}, "FX-2026-000901")
	require.NoError(t, err)

	fetcher := NewImageFetcher(2, 2*time.Second, zap.NewNop())
	r := New(fetcher, zap.NewNop())
	out, err := r.Render(context.Background(), document.Template{
		Type: document.TypeGeneralInquiry, ReferenceID: "FX-2026-000901", Pages: pages,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out[:4])
	assert.True(t, bytes.Contains(out, []byte("/XObject")))
	assert.False(t, bytes.Contains(out, []byte("unavailable")))
}

func TestRenderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(nil, zap.NewNop())
	out, err := r.Render(ctx, welcomeTemplate(t, "FX-2026-000999"))
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestRenderEmptyTemplateFails(t *testing.T) {
	r := New(nil, zap.NewNop())
	_, err := r.Render(context.Background(), document.Template{ReferenceID: "FX-2026-000000"})
	require.Error(t, err)
}

func TestRenderComplaintMeetsMinimumSize(t *testing.T) {
	blocks := builder.Complaint(document.ComplaintDetails{
		MessageID:            "msg-42",
		ComplainedRecipients: []string{"yamada@example.com"},
		Timestamp:            time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC),
	})
	pages, err := paginate.Paginate(blocks, "FX-2026-000808")
	require.NoError(t, err)
	require.Greater(t, len(pages), 1)

	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), document.Template{
		Type: document.TypeComplaint, ReferenceID: "FX-2026-000808", Pages: pages,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(out), 5000)
}

func TestRenderMultiPageInquiry(t *testing.T) {
	answer := ""
	for i := 0; i < 50; i++ {
		answer += "This paragraph repeats to force the answer across several pages of large print output.\n"
	}
	blocks := builder.GeneralInquiry(document.GeneralInquiryData{
		Question: "Why is the sky blue?",
		Answer:   answer,
	})
	pages, err := paginate.Paginate(blocks, "FX-2026-000321")
	require.NoError(t, err)
	require.Greater(t, len(pages), 1)

	r := New(nil, zap.NewNop())
	out, err := r.Render(context.Background(), document.Template{
		Type: document.TypeGeneralInquiry, ReferenceID: "FX-2026-000321", Pages: pages,
	})
	require.NoError(t, err)

	assert.Equal(t,
		len(pages),
		bytes.Count(out, []byte("/Type /Page"))-bytes.Count(out, []byte("/Type /Pages")))
}
