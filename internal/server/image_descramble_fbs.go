package server

import (
	"errors"
	"io"
	"net/http"
	"untile/api/untile/Descramble"
	"untile/internal/logging"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"
)

// DescrambleImageFlatbuffersHandler serves the same operation as DescrambleImageHandler for clients that send a
// Descramble.DescrambleRequest flatbuffer, errors are returned as plain text
func (s *Server) DescrambleImageFlatbuffersHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	requestBody, err := io.ReadAll(ctx.Request.Body)
	if err != nil || len(requestBody) < flatbuffers.SizeUOffsetT {
		if err == nil {
			err = errors.New("request body too short")
		}
		logger.WithError(err).Error("Error reading request body")
		ctx.String(http.StatusBadRequest, "error reading body")
		return
	}

	descrambleRequest := Descramble.GetRootAsDescrambleRequest(requestBody, 0)
	iConfig := serverConfig(int(descrambleRequest.TileWidth()), int(descrambleRequest.TileHeight()), string(descrambleRequest.Format()))

	page, err := reassemble(descrambleRequest.ImageBytes(), string(descrambleRequest.Seed()), iConfig, false)
	if err != nil {
		status, body := errorResponse(err)
		logger.WithError(err).Error("Error descrambling image")
		ctx.String(status, body.Error)
		return
	}

	logger.With("stats", toHumanizedDescrambleStats(page.stats, len(page.content))).Info("Image descrambling was successful")

	builder := flatbuffers.NewBuilder(len(page.content) + 64)
	imageOffset := builder.CreateByteVector(page.content)
	formatOffset := builder.CreateString(string(page.format))
	Descramble.DescrambleResponseStart(builder)
	Descramble.DescrambleResponseAddImage(builder, imageOffset)
	Descramble.DescrambleResponseAddFormat(builder, formatOffset)
	Descramble.FinishDescrambleResponseBuffer(builder, Descramble.DescrambleResponseEnd(builder))

	ctx.Data(http.StatusOK, "application/octet-stream", builder.FinishedBytes())
}
