package common

import (
	"time"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/logging"
)

func LogRequest(ctx *gin.Context) {
	start := time.Now()

	ctx.Next()

	logging.Default().Infof("%s %s -> %d (%s)", ctx.Request.Method, ctx.Request.URL.Path,
		ctx.Writer.Status(), time.Since(start))
}
