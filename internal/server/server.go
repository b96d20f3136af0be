package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"untile/internal/cache"
	"untile/internal/logging"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "untile/docs"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"

	shutdownTimeout = 10 * time.Second
)

type Server struct {
	resultCache *cache.ResultCache
}

func New(resultCache *cache.ResultCache) *Server {
	return &Server{resultCache: resultCache}
}

// StartServer godoc
// @title untile API
// @version 1.0
// @description An API to descramble tile shuffled images
// @BasePath /api/v1
func StartServer(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: New(cache.NewResultCache()).Router(),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	logging.BuildLogger().Info("Starting server", "port", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/descramble/image", s.DescrambleImageHandler)
	v1.POST("/scramble/image", s.ScrambleImageHandler)
	v1.DELETE("/cache", s.InvalidateCacheHandler)

	r.POST("/descramble/image", s.DescrambleImageFlatbuffersHandler)

	return r
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	return fmt.Sprintf("{\"timestamp\":%q, \"status_code\": \"%d\", \"latency\": %q, \"latency_raw\": \"%d\", \"response_size\": %q, \"response_size_raw\": \"%d\", \"client_ip\":%q, \"method\": %q, \"path\": %q, \"error\": %q}\n",
		param.TimeStamp.Format(RFC3339Millis),
		param.StatusCode,
		param.Latency.String(),
		param.Latency,
		humanize.Bytes(uint64(max(param.BodySize, 0))),
		param.BodySize,
		param.ClientIP,
		param.Method,
		param.Path,
		param.ErrorMessage,
	)
}
