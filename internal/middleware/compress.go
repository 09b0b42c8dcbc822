package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// MinCompressLength is the smallest body Brotli bothers with.
const MinCompressLength = 1024

// bufferedWriter holds the body until the handler is done so the size is
// known before choosing an encoding.
type bufferedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Brotli compresses responses of at least minLength bytes for clients that
// accept "br". Admin listings carry every user's courses and grow quickly.
func Brotli(quality, minLength int) gin.HandlerFunc {
	if quality < brotli.BestSpeed || quality > brotli.BestCompression {
		quality = brotli.DefaultCompression
	}
	if minLength <= 0 {
		minLength = MinCompressLength
	}

	return func(c *gin.Context) {
		if !acceptsBrotli(c.Request) || strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}

		original := c.Writer
		bw := &bufferedWriter{ResponseWriter: original}
		c.Writer = bw
		c.Next()
		c.Writer = original

		original.Header().Add("Vary", "Accept-Encoding")
		if bw.body.Len() < minLength {
			original.Header().Set("Content-Length", strconv.Itoa(bw.body.Len()))
			_, _ = original.Write(bw.body.Bytes())
			return
		}

		original.Header().Set("Content-Encoding", "br")
		original.Header().Del("Content-Length")
		enc := brotli.NewWriterLevel(original, quality)
		if _, err := enc.Write(bw.body.Bytes()); err != nil {
			_ = c.Error(err)
		}
		if err := enc.Close(); err != nil {
			_ = c.Error(err)
		}
	}
}

// DefaultBrotli is Brotli at the default quality and MinCompressLength.
func DefaultBrotli() gin.HandlerFunc {
	return Brotli(brotli.DefaultCompression, MinCompressLength)
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
