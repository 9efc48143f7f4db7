package web

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
	"mediarelay/internal/service"
)

// StaticPrefix is where stored files are served.
const StaticPrefix = "/uploads"

// Handler serves the public HTTP surface. It holds no per-request state.
type Handler struct {
	uploader  *service.Uploader
	converter *service.Converter
	resolver  *service.Resolver
	proxy     *service.Proxy
	storage   ports.Storage
	logger    logrus.FieldLogger

	// TranscoderAvailable is reported by /healthz. Nil means unknown.
	TranscoderAvailable func() bool
}

// NewHandler creates a new Handler.
func NewHandler(
	uploader *service.Uploader,
	converter *service.Converter,
	resolver *service.Resolver,
	proxy *service.Proxy,
	storage ports.Storage,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		uploader:  uploader,
		converter: converter,
		resolver:  resolver,
		proxy:     proxy,
		storage:   storage,
		logger:    logger,
	}
}

// RegisterRoutes mounts every route on server.
func (h *Handler) RegisterRoutes(server *gin.Engine) {
	server.POST("/upload", h.Upload)
	server.GET(StaticPrefix+"/:name", h.ServeFile)
	server.HEAD(StaticPrefix+"/:name", h.ServeFile)
	server.GET("/image-to-video", h.ImageToVideo)

	api := server.Group("/api")
	api.GET("/download/:id", h.Download)
	// Standard base64 may contain '/', so the token takes the rest of the path.
	api.GET("/proxy/*token", h.Proxy)

	server.GET("/healthz", h.Health)
}

// Upload stores the multipart field "file" and answers with its public URL.
func (h *Handler) Upload(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		h.failJSON(ctx, domain.ValidationError("No file uploaded"))
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.failJSON(ctx, domain.InternalError(errors.Wrap(err, "open multipart file"), "Upload failed"))
		return
	}
	defer file.Close()

	stored, err := h.uploader.Upload(ctx.Request.Context(), fh.Filename, file)
	if err != nil {
		h.failJSON(ctx, err)
		return
	}

	h.log(ctx).WithField("file", stored.Name).WithField("bytes", stored.Size).Info("file uploaded")
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "fileUrl": publicURL(ctx, stored.Name)})
}

// ServeFile returns a stored file by name.
func (h *Handler) ServeFile(ctx *gin.Context) {
	name := ctx.Param("name")
	file, err := h.storage.Open(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.String(http.StatusNotFound, "Not Found")
			return
		}
		h.failText(ctx, domain.InternalError(err, "Internal Server Error"))
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		h.failText(ctx, domain.InternalError(err, "Internal Server Error"))
		return
	}

	// ServeContent picks the content type from the name's extension.
	http.ServeContent(ctx.Writer, ctx.Request, name, info.ModTime(), file)
}

// ImageToVideo converts the image at ?url= and links the resulting video.
func (h *Handler) ImageToVideo(ctx *gin.Context) {
	name, err := h.converter.ConvertURL(ctx.Request.Context(), ctx.Query("url"))
	if err != nil {
		h.failText(ctx, err)
		return
	}

	link := html.EscapeString(publicURL(ctx, name))
	body := fmt.Sprintf(`<p>Video created: <a href="%s" target="_blank">%s</a></p>`, link, link)
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

// Download resolves a movie id and redirects to the proxy route.
func (h *Handler) Download(ctx *gin.Context) {
	link, err := h.resolver.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.failText(ctx, err)
		return
	}

	// Set Location directly: http.Redirect would path-clean the token.
	ctx.Header("Location", "/api/proxy/"+link.Token)
	ctx.Status(http.StatusFound)
}

// Proxy relays the resource behind a token as a download.
func (h *Handler) Proxy(ctx *gin.Context) {
	tok := strings.TrimPrefix(ctx.Param("token"), "/")

	stream, err := h.proxy.Open(ctx.Request.Context(), tok)
	if err != nil {
		h.failText(ctx, err)
		return
	}
	defer stream.Body.Close()

	ctx.Header("Content-Type", "application/octet-stream")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(stream.Filename, `"`, `\"`)))
	if stream.Length >= 0 {
		ctx.Header("Content-Length", strconv.FormatInt(stream.Length, 10))
	}
	ctx.Status(http.StatusOK)

	n, err := io.Copy(ctx.Writer, stream.Body)
	if err != nil {
		// Headers are gone; the client sees a truncated body.
		h.log(ctx).WithError(err).WithField("bytes", n).Warn("proxy stream interrupted")
		return
	}
	h.log(ctx).WithField("bytes", n).Debug("proxy stream finished")
}

// Health reports liveness and whether the transcoder was found.
func (h *Handler) Health(ctx *gin.Context) {
	resp := gin.H{"ok": true}
	if h.TranscoderAvailable != nil {
		resp["ffmpeg"] = h.TranscoderAvailable()
	}
	ctx.JSON(http.StatusOK, resp)
}

func (h *Handler) failJSON(ctx *gin.Context, err error) {
	status := h.report(ctx, err)
	ctx.JSON(status, gin.H{"ok": false, "error": domain.MessageOf(err)})
}

func (h *Handler) failText(ctx *gin.Context, err error) {
	status := h.report(ctx, err)
	ctx.String(status, domain.MessageOf(err))
}

// report logs err with its detail and returns the status to send.
func (h *Handler) report(ctx *gin.Context, err error) int {
	status := StatusOf(err)
	entry := h.log(ctx).WithError(err).WithField("kind", domain.KindOf(err).String())
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}
	return status
}

func (h *Handler) log(ctx *gin.Context) logrus.FieldLogger {
	if id := ctx.GetString(requestIDKey); id != "" {
		return h.logger.WithField("request_id", id)
	}
	return h.logger
}

// StatusOf maps an error to the HTTP status sent to the client.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicURL is the absolute URL of a stored file for the current request.
func publicURL(ctx *gin.Context, name string) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + ctx.Request.Host + StaticPrefix + "/" + url.PathEscape(name)
}
