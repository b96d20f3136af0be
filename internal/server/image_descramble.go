package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strings"
	"untile/api"
	"untile/internal/logging"
	"untile/pkg/config"
	untileImage "untile/pkg/image"
	"untile/pkg/model"
	"untile/pkg/seed"

	"github.com/gin-gonic/gin"
)

const seedHeader = "X-Untile-Seed"

type reassembledPage struct {
	content     []byte
	format      untileImage.Format
	descrambled bool
	stats       model.DescrambleStats
}

// DescrambleImageHandler godoc
//
// @Summary Descramble a tile shuffled image
// @Description This endpoint puts the tiles of a scrambled page back in place. The seed is either supplied directly or derived from the url the page was served from, in which case the result is cached. The raw image is returned when the Accept header only asks for an image, all errors are returned as JSON
// @Tags image
// @Accept json
// @Produce json,png,jpeg,gif,image/bmp
// @Param requestBody body api.DescrambleImageRequest true "Body with the scrambled image and the seed or source url"
// @Success 200 {object} api.DescrambleImageResponse
// @Failure 400 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /descramble/image [post]
func (s *Server) DescrambleImageHandler(ctx *gin.Context) {
	var requestBody api.DescrambleImageRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing image descramble request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	pageSeed, err := resolveSeed(requestBody.Seed, requestBody.SourceURL)
	if err != nil {
		abortWithError(ctx, logger, err)
		return
	}

	iConfig := serverConfig(requestBody.TileWidth, requestBody.TileHeight, requestBody.Format)
	format, err := untileImage.ParseFormat(iConfig.Format)
	if err != nil {
		abortWithError(ctx, logger, err)
		return
	}

	cacheable := requestBody.Seed == "" && requestBody.SourceURL != ""
	variant := cacheVariant(iConfig, format)
	if cacheable {
		if cached, found := s.resultCache.Get(requestBody.SourceURL, variant); found {
			logger.Debug("Serving descrambled image from cache", "source_url", requestBody.SourceURL)
			respondWithPage(ctx, api.DescrambleImageResponse{
				Image:       cached.Content,
				Format:      cached.Format,
				Seed:        pageSeed,
				Descrambled: seed.IsScrambled(pageSeed),
				Cached:      true,
			})
			return
		}
	}

	// pages served with a seed that does not look scrambled are only converted, unless the caller picked the seed
	page, err := reassemble(requestBody.Image, pageSeed, iConfig, requestBody.Seed == "" && !seed.IsScrambled(pageSeed))
	if err != nil {
		abortWithError(ctx, logger, err)
		return
	}

	if cacheable {
		s.resultCache.Put(requestBody.SourceURL, variant, model.OutputPage{
			Name:    requestBody.SourceURL,
			Format:  string(page.format),
			Content: page.content,
		})
	}

	logger.With("stats", toHumanizedDescrambleStats(page.stats, len(page.content))).Info("Image descrambling was successful")

	respondWithPage(ctx, api.DescrambleImageResponse{
		Image:       page.content,
		Format:      string(page.format),
		Seed:        pageSeed,
		Descrambled: page.descrambled,
		Stats:       page.stats,
	})
}

// InvalidateCacheHandler godoc
//
// @Summary Invalidate cached descrambled pages
// @Description Drops the cached results of the supplied source url, or every cached result when no url is supplied
// @Tags cache
// @Produce json
// @Param url query string false "Source url of the page to invalidate"
// @Success 200 {object} api.InvalidateCacheResponse
// @Router /cache [delete]
func (s *Server) InvalidateCacheHandler(ctx *gin.Context) {
	sourceURL := ctx.Query("url")

	var invalidated bool
	if sourceURL == "" {
		invalidated = s.resultCache.Len() > 0
		s.resultCache.Clear()
	} else {
		invalidated = s.resultCache.Invalidate(sourceURL)
	}

	ctx.JSON(http.StatusOK, api.InvalidateCacheResponse{Invalidated: invalidated, Remaining: s.resultCache.Len()})
}

// respondWithPage sends the raw image when the client only accepts images, and the JSON response otherwise
func respondWithPage(ctx *gin.Context, resp api.DescrambleImageResponse) {
	if strings.HasPrefix(ctx.GetHeader("Accept"), "image/") {
		ctx.Header(seedHeader, resp.Seed)
		ctx.Data(http.StatusOK, untileImage.Format(resp.Format).MimeType(), resp.Image)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func resolveSeed(explicitSeed, sourceURL string) (string, error) {
	if explicitSeed != "" {
		return explicitSeed, nil
	}
	if sourceURL == "" {
		return "", errMissingSeed
	}
	return seed.ForURL(sourceURL)
}

func serverConfig(tileWidth, tileHeight int, format string) config.DescrambleConfig {
	iConfig := config.DescrambleConfig{
		TileWidth:           tileWidth,
		TileHeight:          tileHeight,
		Format:              format,
		PngCompressionLevel: png.BestCompression, // to reduce bandwidth costs since lower compression results in huge images
	}
	iConfig.PopulateUnsetConfigVars()
	return iConfig
}

// cacheVariant identifies one rendition of a cached url, the same page split with other tiles is a different result
func cacheVariant(iConfig config.DescrambleConfig, format untileImage.Format) string {
	return fmt.Sprintf("%s/%dx%d", format, iConfig.TileWidth, iConfig.TileHeight)
}

func reassemble(imageBytes []byte, pageSeed string, iConfig config.DescrambleConfig, convertOnly bool) (reassembledPage, error) {
	if err := iConfig.Validate(); err != nil {
		return reassembledPage{}, err
	}

	var format untileImage.Format
	if convertOnly {
		var err error
		if format, err = untileImage.ParseFormat(iConfig.Format); err != nil {
			return reassembledPage{}, err
		}
		// already in the requested format, sent back as received
		if sourceFormat, err := untileImage.DetectFormat(imageBytes); err == nil && sourceFormat == format {
			return reassembledPage{content: imageBytes, format: format}, nil
		}
	}

	scrambled, err := untileImage.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return reassembledPage{}, fmt.Errorf("%w: %w", errUndecodableImage, err)
	}

	if convertOnly {
		content, err := untileImage.EncodeToBytes(scrambled, format, untileImage.EncodeOptionsFromConfig(iConfig))
		if err != nil {
			return reassembledPage{}, err
		}
		return reassembledPage{content: content, format: format}, nil
	}

	descrambler, err := untileImage.NewDescrambler(scrambled, iConfig)
	if err != nil {
		return reassembledPage{}, err
	}
	if err = descrambler.Descramble(pageSeed); err != nil {
		return reassembledPage{}, err
	}
	content, err := descrambler.Bytes()
	if err != nil {
		return reassembledPage{}, err
	}

	return reassembledPage{
		content:     content,
		format:      descrambler.Format(),
		descrambled: true,
		stats:       descrambler.Stats(),
	}, nil
}

func abortWithError(ctx *gin.Context, logger *logging.Logger, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).Error("Error descrambling image")
	} else {
		logger.WithError(err).Warn("Rejected descramble request")
	}
	ctx.AbortWithStatusJSON(status, body)
}
