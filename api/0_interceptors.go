package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"github.com/google/uuid"
)

const contextRequestIdKey = "a4b1d2c8-6f3e-11ef-9c5a-2b7d4e9f1c30"

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				debug.PrintStack()
				box.SetError(ctx, fmt.Errorf("panic: %v", err))
			}
		}()
		next(ctx)
	}
}

// RequestId propagates the caller X-Request-Id or generates a new one
func RequestId(next box.H) box.H {
	return func(ctx context.Context) {
		id := box.GetRequest(ctx).Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		box.GetResponse(ctx).Header().Set("X-Request-Id", id)

		next(context.WithValue(ctx, contextRequestIdKey, id))
	}
}

func GetRequestId(ctx context.Context) string {
	id, _ := ctx.Value(contextRequestIdKey).(string)
	return id
}

func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), GetRequestId(ctx), formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
