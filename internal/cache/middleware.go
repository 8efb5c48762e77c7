package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page caches successful GET responses of the wrapped route, keyed by
// path and query. Within the TTL the cached bytes are replayed verbatim
// even if the underlying data has changed; no write path invalidates
// the cache, staleness simply expires.
func Page(c *Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.RequestURI()
		if entry, ok := c.Get(key); ok {
			ctx.Data(http.StatusOK, entry.ContentType, entry.Body)
			ctx.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer
		ctx.Next()

		if writer.Status() == http.StatusOK {
			c.Set(key, Entry{
				Body:        writer.buf.Bytes(),
				ContentType: writer.Header().Get("Content-Type"),
			})
		}
	}
}

// captureWriter tees the response body so it can be cached after the
// handler runs.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
