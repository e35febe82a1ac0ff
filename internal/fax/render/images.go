// internal/fax/render/images.go
package render

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	apperrors "faxgen/internal/common/errors"
	httpx "faxgen/internal/common/http"
	"faxgen/internal/common/metrics"

	"go.uber.org/zap"
)

// maxImageBytes caps a single downloaded image. Fax output is monochrome
// A4; anything larger than this is not worth embedding.
const maxImageBytes = 4 << 20

// FetchedImage is one successfully downloaded and sniffed image.
type FetchedImage struct {
	Data []byte
	Type string // "PNG" or "JPG", per gofpdf's type tags
}

// ImageFetcher downloads document images ahead of rendering. Fetches run
// concurrently under a bounded semaphore, each with its own timeout, and
// every failure is soft: the renderer falls back to text for any URL absent
// from the returned map.
type ImageFetcher struct {
	client      *httpx.Client
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

func NewImageFetcher(concurrency int, timeout time.Duration, logger *zap.Logger) *ImageFetcher {
	if concurrency < 1 {
		concurrency = 4
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ImageFetcher{
		client:      httpx.NewClient(timeout),
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// FetchAll downloads the given URLs and returns whatever succeeded, keyed by
// URL. It never returns an error: a slow or broken image costs its own
// timeout window, not the document. Cancelling ctx aborts outstanding
// fetches.
func (f *ImageFetcher) FetchAll(ctx context.Context, urls []string) map[string]FetchedImage {
	results := make(map[string]FetchedImage, len(urls))
	if len(urls) == 0 {
		return results
	}

	type fetched struct {
		url string
		img FetchedImage
		err error
	}

	sem := make(chan struct{}, f.concurrency)
	out := make(chan fetched, len(urls))

	for _, url := range urls {
		go func(url string) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				out <- fetched{url: url, err: ctx.Err()}
				return
			}
			img, err := f.fetchOne(ctx, url)
			out <- fetched{url: url, img: img, err: err}
		}(url)
	}

	for range urls {
		r := <-out
		if r.err != nil {
			metrics.FaxImageFetchFailures.Inc()
			stdErr := apperrors.NewImageFetchFailedError(r.url, r.err)
			f.logger.Warn("image fetch failed, will fall back to text",
				zap.String("url", r.url),
				zap.String("code", string(stdErr.Code)),
				zap.Error(r.err))
			continue
		}
		results[r.url] = r.img
	}
	return results
}

func (f *ImageFetcher) fetchOne(ctx context.Context, url string) (FetchedImage, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return FetchedImage{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchedImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchedImage{}, &httpStatusError{status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return FetchedImage{}, err
	}
	if len(data) > maxImageBytes {
		return FetchedImage{}, &httpStatusError{status: "image exceeds size limit"}
	}

	imgType, ok := sniffImageType(data)
	if !ok {
		return FetchedImage{}, &httpStatusError{status: "unsupported image format"}
	}
	return FetchedImage{Data: data, Type: imgType}, nil
}

type httpStatusError struct{ status string }

func (e *httpStatusError) Error() string { return "image fetch: " + e.status }

// sniffImageType recognizes the two formats the renderer can embed.
func sniffImageType(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8}):
		return "JPG", true
	}
	return "", false
}
