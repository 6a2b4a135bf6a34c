package handler

import (
	"github.com/gorilla/schema"
	"math"
	"net/http"
)

// ViewportParams is the size of the surface a layout is drawn on. Zero means the configured default.
type ViewportParams struct {
	Width  float64 `schema:"width"`
	Height float64 `schema:"height"`
}

// LogParams selects and formats the logs of a request.
type LogParams struct {
	SpanId  string `schema:"span_id"`
	Search  string `schema:"search"`
	Level   string `schema:"level"`
	Service string `schema:"service"`
	Format  string `schema:"format"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decodeQuery(r *http.Request, dst interface{}) error {
	return decoder.Decode(dst, r.URL.Query())
}

func decodeViewport(r *http.Request) (ViewportParams, error) {
	var params ViewportParams
	if err := decodeQuery(r, &params); err != nil {
		return params, err
	}
	return params, validateViewport(params.Width, params.Height)
}

// validateViewport rejects sizes no layout can be scaled to. schema parses NaN and Inf like any
// other float.
func validateViewport(width float64, height float64) error {
	if !isFinite(width) || !isFinite(height) {
		return ErrInvalidViewport
	}
	if width < 0 || height < 0 {
		return ErrNegativeViewport
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
