package server

import (
	"bytes"
	"fmt"
	"net/http"
	"untile/api"
	"untile/internal/logging"
	untileImage "untile/pkg/image"

	"github.com/gin-gonic/gin"
)

// ScrambleImageHandler godoc
//
// @Summary Scramble an image
// @Description This endpoint shuffles the tiles of an image with the supplied seed, the inverse of descrambling
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.ScrambleImageRequest true "Body with the image and the seed"
// @Success 200 {object} api.ScrambleImageResponse
// @Failure 400 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /scramble/image [post]
func (s *Server) ScrambleImageHandler(ctx *gin.Context) {
	var requestBody api.ScrambleImageRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing image scramble request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	original, err := untileImage.Decode(bytes.NewReader(requestBody.Image))
	if err != nil {
		abortWithError(ctx, logger, fmt.Errorf("%w: %w", errUndecodableImage, err))
		return
	}

	scrambler, err := untileImage.NewScrambler(original, serverConfig(requestBody.TileWidth, requestBody.TileHeight, requestBody.Format))
	if err != nil {
		abortWithError(ctx, logger, err)
		return
	}
	if err = scrambler.Scramble(requestBody.Seed); err != nil {
		abortWithError(ctx, logger, err)
		return
	}

	scrambled, err := scrambler.Bytes()
	if err != nil {
		abortWithError(ctx, logger, err)
		return
	}

	ctx.JSON(http.StatusOK, api.ScrambleImageResponse{Image: scrambled, Format: string(scrambler.Format())})
}
