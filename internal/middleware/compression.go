package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are served as-is; the Prometheus handler negotiates its
// own encoding.
var uncompressedPaths = []string{"/metrics"}

// Compression returns a middleware that gzips responses for clients that
// accept it. Multi-day plans for large pools compress well.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
