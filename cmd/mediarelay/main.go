package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mediarelay/internal/adapters/downloader"
	"mediarelay/internal/adapters/ffmpeg"
	"mediarelay/internal/adapters/localstorage"
	"mediarelay/internal/adapters/scraper"
	"mediarelay/internal/config"
	"mediarelay/internal/logging"
	"mediarelay/internal/service"
	"mediarelay/internal/web"
)

const shutdownGrace = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may be set directly.
	envErr := godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		logger.Debug("no .env file found")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize adapters
	storage, err := localstorage.NewOSStorage(cfg.UploadDir)
	if err != nil {
		return err
	}
	if err := storage.Init(ctx); err != nil {
		return err
	}

	transcoder := ffmpeg.NewTranscoder(cfg.FFmpegPath)
	if !transcoder.Available() {
		logger.Warnf("%s not found; /image-to-video will fail", cfg.FFmpegPath)
	}

	dl := downloader.NewHTTPDownloader(nil)
	pages := scraper.NewPageScraper(cfg.UpstreamUserAgent)

	// Services
	uploader := service.NewUploader(storage)
	converter := service.NewConverter(dl, storage, transcoder, logger)
	resolver := service.NewResolver(pages, cfg.UpstreamPageTemplate, logger)
	proxy := service.NewProxy(dl, logger)

	handler := web.NewHandler(uploader, converter, resolver, proxy, storage, logger)
	handler.TranscoderAvailable = transcoder.Available

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: web.NewEngine(handler, logger, cfg.CORSAllowOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("file uploader running at http://localhost:%d", cfg.Port)
		logger.Infof("uploaded files available at http://localhost:%d%s/ (dir %s)", cfg.Port, web.StaticPrefix, storage.BaseDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("received interrupt signal, shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
