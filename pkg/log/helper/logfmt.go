package helper

import (
	"fmt"
	"github.com/Avi18971911/Lens/pkg/log/service"
	"github.com/go-logfmt/logfmt"
	"io"
	"strings"
	"unicode/utf8"
)

// EncodeLogfmt writes one logfmt line per record. Fixed keys come first, followed by the log
// fields in key order.
func EncodeLogfmt(w io.Writer, records []service.LogRecord) error {
	encoder := logfmt.NewEncoder(w)
	for _, record := range records {
		err := encoder.EncodeKeyvals(
			"time", FormatTimestamp(record.AbsoluteTime),
			"level", string(record.Log.Level),
			"span_id", record.Span.Id,
			"service", record.Span.Service,
			"span", record.Span.Name,
			"msg", record.Log.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to encode log record of span %s: %w", record.Span.Id, err)
		}
		for _, key := range sortedKeys(record.Log.Fields) {
			if err := encoder.EncodeKeyval(sanitizeKey(key), logfmtValue(record.Log.Fields[key])); err != nil {
				return fmt.Errorf("failed to encode field %s of span %s: %w", key, record.Span.Id, err)
			}
		}
		if err := encoder.EndRecord(); err != nil {
			return fmt.Errorf("failed to end log record: %w", err)
		}
	}
	return nil
}

func logfmtValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	}
	encoded, err := valueJson.MarshalToString(value)
	if err != nil {
		return ""
	}
	return encoded
}

func sanitizeKey(key string) string {
	if key == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if r <= ' ' || r == '=' || r == '"' || r == utf8.RuneError {
			return '_'
		}
		return r
	}, key)
}
