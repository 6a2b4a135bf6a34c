package helper

import (
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"math"
	"sort"
	"strings"
)

var valueJson = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// FormatTimestamp renders a millisecond offset as mm:ss.mmm, or hh:mm:ss.mmm once it reaches an hour.
func FormatTimestamp(milliseconds float64) string {
	totalMs := int64(math.Round(milliseconds))
	if totalMs < 0 {
		totalMs = 0
	}
	ms := totalMs % 1000
	seconds := (totalMs / 1000) % 60
	minutes := (totalMs / 60000) % 60
	hours := totalMs / 3600000
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, ms)
}

// FormatFields renders log fields as space separated key=value pairs sorted by key, with every
// value JSON encoded. Fields that cannot be encoded produce an empty string.
func FormatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(fields))
	for _, key := range sortedKeys(fields) {
		value, err := valueJson.MarshalToString(fields[key])
		if err != nil {
			return ""
		}
		pairs = append(pairs, key+"="+value)
	}
	return strings.Join(pairs, " ")
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
