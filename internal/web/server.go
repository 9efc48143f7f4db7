package web

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewEngine builds the gin engine with middlewares and routes.
func NewEngine(h *Handler, logger logrus.FieldLogger, corsOrigins []string) *gin.Engine {
	server := gin.New()
	server.Use(RequestID(), AccessLog(logger), Recovery(logger))
	if len(corsOrigins) > 0 {
		server.Use(CORS(corsOrigins))
	}
	h.RegisterRoutes(server)
	return server
}
