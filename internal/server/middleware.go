package server

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

func withAccessLog(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		method := string(ctx.Method())
		path := string(ctx.Path())
		next(ctx)
		status := ctx.Response.StatusCode()
		duration := time.Since(start).Truncate(time.Millisecond)
		msg := fmt.Sprintf("%s %s %d %s", method, path, status, duration)
		switch {
		case status >= fasthttp.StatusInternalServerError:
			log.Error(msg)
		case status >= fasthttp.StatusBadRequest:
			log.Warn(msg)
		default:
			log.Info(msg)
		}
	}
}
