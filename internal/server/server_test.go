package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"untile/api"
	"untile/api/untile/Descramble"
	"untile/internal/cache"
	untileImage "untile/pkg/image"
	"untile/test"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"
)

const (
	scrambledSourceURL   = "https://cdn.example.com/pages/FGHABCDE/001.png?expires=1700000000&key=0"
	unscrambledSourceURL = "https://cdn.example.com/pages/fghabcde/001.png?expires=1700000000&key=0"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *gin.Engine) {
	s := New(cache.NewResultCache())
	return s, s.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("Error encoding request body: %s", err)
		}
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp T
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Error decoding response body %q: %s", rec.Body.String(), err)
	}
	return resp
}

func scramble(t *testing.T, router http.Handler, imageBytes []byte, seed string) []byte {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/scramble/image", api.ScrambleImageRequest{Image: imageBytes, Seed: seed})
	if rec.Code != http.StatusOK {
		t.Fatalf("Error scrambling test image, status %d: %s", rec.Code, rec.Body.String())
	}
	return decodeResponse[api.ScrambleImageResponse](t, rec).Image
}

func TestDescrambleImageWithSeed(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()
	original := test.GenerateRandomImage(230, 130)
	scrambled := scramble(t, router, test.EncodePNG(t, original), "QWERTYUI")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", api.DescrambleImageRequest{Image: scrambled, Seed: "QWERTYUI"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Error, expected status 200 but got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse[api.DescrambleImageResponse](t, rec)
	if !resp.Descrambled || resp.Cached {
		t.Errorf("Error, expected a freshly descrambled page, got descrambled=%v cached=%v", resp.Descrambled, resp.Cached)
	}
	if resp.Format != "png" || resp.Seed != "QWERTYUI" {
		t.Errorf("Error, unexpected format %q or seed %q", resp.Format, resp.Seed)
	}
	if resp.Stats.Groups != 4 || resp.Stats.Tiles != 15 {
		t.Errorf("Error, expected 4 groups and 15 tiles, got %d and %d", resp.Stats.Groups, resp.Stats.Tiles)
	}

	descrambled, err := untileImage.Decode(bytes.NewReader(resp.Image))
	if err != nil {
		t.Fatalf("Error decoding response image: %s", err)
	}
	test.AssertSamePixels(t, descrambled, original)
}

func TestDescrambleImageRawResponse(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()
	original := test.GenerateRandomImage(120, 80)
	scrambled := scramble(t, router, test.EncodePNG(t, original), "FGHABCDE")

	var reqBody bytes.Buffer
	if err := json.NewEncoder(&reqBody).Encode(api.DescrambleImageRequest{Image: scrambled, Seed: "FGHABCDE", Format: "jpg"}); err != nil {
		t.Fatalf("Error encoding request body: %s", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/descramble/image", &reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Error, expected status 200 but got %d: %s", rec.Code, rec.Body.String())
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "image/jpeg" {
		t.Errorf("Error, expected image/jpeg content type but got %q", contentType)
	}
	if gotSeed := rec.Header().Get(seedHeader); gotSeed != "FGHABCDE" {
		t.Errorf("Error, expected the seed header to be FGHABCDE but got %q", gotSeed)
	}
	if _, err := untileImage.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("Error decoding raw response image: %s", err)
	}
}

func TestDescrambleImageFromSourceURLIsCached(t *testing.T) {
	t.Parallel()
	s, router := newTestServer()
	original := test.GenerateRandomImage(120, 80)
	scrambled := scramble(t, router, test.EncodePNG(t, original), "FGHABCDE")

	request := api.DescrambleImageRequest{Image: scrambled, SourceURL: scrambledSourceURL}
	first := decodeResponse[api.DescrambleImageResponse](t, doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", request))
	if first.Cached || first.Seed != "FGHABCDE" {
		t.Fatalf("Error, expected an uncached page with seed FGHABCDE, got cached=%v seed=%q", first.Cached, first.Seed)
	}
	if s.resultCache.Len() != 1 {
		t.Fatalf("Error, expected one cached url, got %d", s.resultCache.Len())
	}

	second := decodeResponse[api.DescrambleImageResponse](t, doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", request))
	if !second.Cached || !bytes.Equal(first.Image, second.Image) {
		t.Errorf("Error, expected the second response to be served from cache with the same image")
	}

	descrambled, err := untileImage.Decode(bytes.NewReader(second.Image))
	if err != nil {
		t.Fatalf("Error decoding response image: %s", err)
	}
	test.AssertSamePixels(t, descrambled, original)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cache?url="+url.QueryEscape(scrambledSourceURL), nil)
	invalidate := decodeResponse[api.InvalidateCacheResponse](t, rec)
	if !invalidate.Invalidated || invalidate.Remaining != 0 {
		t.Errorf("Error, expected the url to be invalidated, got %+v", invalidate)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cache?url="+url.QueryEscape(scrambledSourceURL), nil)
	if decodeResponse[api.InvalidateCacheResponse](t, rec).Invalidated {
		t.Errorf("Error, invalidating twice should report nothing was cached")
	}
}

func TestDescrambleImageUnscrambledSourceIsConverted(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()
	original := test.GenerateRandomImage(120, 80)
	source := test.EncodePNG(t, original)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/descramble/image",
		api.DescrambleImageRequest{Image: source, SourceURL: unscrambledSourceURL})
	if rec.Code != http.StatusOK {
		t.Fatalf("Error, expected status 200 but got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse[api.DescrambleImageResponse](t, rec)
	if resp.Descrambled {
		t.Errorf("Error, a page with a lowercase seed should not be descrambled")
	}
	if !bytes.Equal(resp.Image, source) {
		t.Errorf("Error, expected a png page requested as png to be returned unchanged")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/descramble/image",
		api.DescrambleImageRequest{Image: source, SourceURL: unscrambledSourceURL, Format: "bmp"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Error, expected status 200 but got %d: %s", rec.Code, rec.Body.String())
	}
	resp = decodeResponse[api.DescrambleImageResponse](t, rec)
	if resp.Format != "bmp" || bytes.Equal(resp.Image, source) {
		t.Errorf("Error, expected the page to be converted to bmp, got format %q", resp.Format)
	}
	converted, err := untileImage.Decode(bytes.NewReader(resp.Image))
	if err != nil {
		t.Fatalf("Error decoding response image: %s", err)
	}
	test.AssertSamePixels(t, converted, original)
}

func TestDescrambleImageCacheKeepsTileSizesApart(t *testing.T) {
	t.Parallel()
	s, router := newTestServer()
	source := test.EncodePNG(t, test.GenerateRandomImage(120, 80))

	first := decodeResponse[api.DescrambleImageResponse](t, doJSON(t, router, http.MethodPost, "/api/v1/descramble/image",
		api.DescrambleImageRequest{Image: source, SourceURL: unscrambledSourceURL}))
	if first.Cached {
		t.Fatalf("Error, the first request should not be served from cache")
	}

	other := decodeResponse[api.DescrambleImageResponse](t, doJSON(t, router, http.MethodPost, "/api/v1/descramble/image",
		api.DescrambleImageRequest{Image: source, SourceURL: unscrambledSourceURL, TileWidth: 40}))
	if other.Cached {
		t.Errorf("Error, a request with another tile size was served from the cache")
	}

	for _, variant := range []string{"png/50x50", "png/40x40"} {
		if _, found := s.resultCache.Get(unscrambledSourceURL, variant); !found {
			t.Errorf("Error, expected variant %s to be cached", variant)
		}
	}

	again := decodeResponse[api.DescrambleImageResponse](t, doJSON(t, router, http.MethodPost, "/api/v1/descramble/image",
		api.DescrambleImageRequest{Image: source, SourceURL: unscrambledSourceURL, TileWidth: 40}))
	if !again.Cached {
		t.Errorf("Error, expected the repeated request to be served from cache")
	}
}

func TestClearCache(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()
	original := test.EncodePNG(t, test.GenerateRandomImage(100, 100))

	doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", api.DescrambleImageRequest{Image: original, SourceURL: scrambledSourceURL})
	doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", api.DescrambleImageRequest{Image: original, SourceURL: scrambledSourceURL, Format: "bmp"})

	resp := decodeResponse[api.InvalidateCacheResponse](t, doJSON(t, router, http.MethodDelete, "/api/v1/cache", nil))
	if !resp.Invalidated || resp.Remaining != 0 {
		t.Errorf("Error, expected the whole cache to be cleared, got %+v", resp)
	}
}

func TestDescrambleImageErrors(t *testing.T) {
	t.Parallel()
	validImage := test.EncodePNG(t, test.GenerateRandomImage(100, 100))

	cases := []struct {
		name         string
		body         any
		expectedCode string
	}{
		{"missing image", map[string]string{"seed": "FGHABCDE"}, ""},
		{"invalid image", api.DescrambleImageRequest{Image: []byte("not an image"), Seed: "FGHABCDE"}, errInvalidImage.Code},
		{"missing seed", api.DescrambleImageRequest{Image: validImage}, errInvalidSeed.Code},
		{"invalid source url", api.DescrambleImageRequest{Image: validImage, SourceURL: "https://cdn.example.com/001.png"}, errInvalidSeed.Code},
		{"unsupported format", api.DescrambleImageRequest{Image: validImage, Seed: "FGHABCDE", Format: "tiff"}, errUnsupportedFormat.Code},
		{"negative tile width", api.DescrambleImageRequest{Image: validImage, Seed: "FGHABCDE", TileWidth: -5}, errInvalidGeometry.Code},
		{"negative tile height", api.DescrambleImageRequest{Image: validImage, SourceURL: unscrambledSourceURL, TileWidth: 20, TileHeight: -1}, errInvalidGeometry.Code},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, router := newTestServer()
			rec := doJSON(t, router, http.MethodPost, "/api/v1/descramble/image", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Error, expected status 400 but got %d: %s", rec.Code, rec.Body.String())
			}
			if resp := decodeResponse[api.Error](t, rec); resp.Code != tc.expectedCode {
				t.Errorf("Error, expected error code %q but got %q", tc.expectedCode, resp.Code)
			}
		})
	}
}

func TestDescrambleImageFlatbuffers(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()
	original := test.GenerateRandomImage(230, 130)
	scrambled := scramble(t, router, test.EncodePNG(t, original), "JKLMNOPQ")

	builder := flatbuffers.NewBuilder(len(scrambled) + 64)
	imageOffset := builder.CreateByteVector(scrambled)
	seedOffset := builder.CreateString("JKLMNOPQ")
	formatOffset := builder.CreateString("bmp")
	Descramble.DescrambleRequestStart(builder)
	Descramble.DescrambleRequestAddImage(builder, imageOffset)
	Descramble.DescrambleRequestAddSeed(builder, seedOffset)
	Descramble.DescrambleRequestAddFormat(builder, formatOffset)
	Descramble.FinishDescrambleRequestBuffer(builder, Descramble.DescrambleRequestEnd(builder))

	req := httptest.NewRequest(http.MethodPost, "/descramble/image", bytes.NewReader(builder.FinishedBytes()))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Error, expected status 200 but got %d: %s", rec.Code, rec.Body.String())
	}

	resp := Descramble.GetRootAsDescrambleResponse(rec.Body.Bytes(), 0)
	if string(resp.Format()) != "bmp" {
		t.Errorf("Error, expected bmp output but got %q", resp.Format())
	}
	descrambled, err := untileImage.Decode(bytes.NewReader(resp.ImageBytes()))
	if err != nil {
		t.Fatalf("Error decoding response image: %s", err)
	}
	test.AssertSamePixels(t, descrambled, original)
}

func TestDescrambleImageFlatbuffersWithoutSeed(t *testing.T) {
	t.Parallel()
	_, router := newTestServer()

	builder := flatbuffers.NewBuilder(128)
	imageOffset := builder.CreateByteVector(test.EncodePNG(t, test.GenerateRandomImage(50, 50)))
	Descramble.DescrambleRequestStart(builder)
	Descramble.DescrambleRequestAddImage(builder, imageOffset)
	Descramble.FinishDescrambleRequestBuffer(builder, Descramble.DescrambleRequestEnd(builder))

	req := httptest.NewRequest(http.MethodPost, "/descramble/image", bytes.NewReader(builder.FinishedBytes()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Error, expected status 400 but got %d", rec.Code)
	}
}

func TestLogFormatterProducesJSON(t *testing.T) {
	t.Parallel()
	line := logFormatter(gin.LogFormatterParams{
		Request:      httptest.NewRequest(http.MethodPost, "/api/v1/descramble/image", nil),
		TimeStamp:    time.Now(),
		StatusCode:   http.StatusBadRequest,
		Latency:      2 * time.Minute,
		ClientIP:     "127.0.0.1",
		Method:       http.MethodPost,
		Path:         "/api/v1/descramble/image",
		ErrorMessage: `quoted "error"`,
		BodySize:     2048,
	})

	var fields map[string]string
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		t.Fatalf("Error, log line %q is not valid JSON: %s", line, err)
	}
	if fields["response_size"] != "2.0 kB" || fields["latency"] != "2m0s" {
		t.Errorf("Error, unexpected humanized fields %v", fields)
	}
}
