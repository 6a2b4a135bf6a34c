package helper

import (
	"bytes"
	logModel "github.com/Avi18971911/Lens/pkg/log/model"
	"github.com/Avi18971911/Lens/pkg/log/service"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	t.Run("should format offsets under an hour as minutes", func(t *testing.T) {
		assert.Equal(t, "00:00.000", FormatTimestamp(0))
		assert.Equal(t, "00:00.045", FormatTimestamp(45))
		assert.Equal(t, "00:01.250", FormatTimestamp(1249.6))
		assert.Equal(t, "59:59.999", FormatTimestamp(3599999))
	})

	t.Run("should include hours once they are reached", func(t *testing.T) {
		assert.Equal(t, "01:00:00.000", FormatTimestamp(3600000))
		assert.Equal(t, "02:03:04.005", FormatTimestamp(7384005))
	})
}

func TestFormatFields(t *testing.T) {
	t.Run("should render sorted json encoded pairs", func(t *testing.T) {
		res := FormatFields(map[string]interface{}{"sku": "ABC-123", "remaining": 2, "tags": []string{"a"}})
		assert.Equal(t, `remaining=2 sku="ABC-123" tags=["a"]`, res)
	})

	t.Run("should not escape html sensitive characters", func(t *testing.T) {
		res := FormatFields(map[string]interface{}{"sql": "SELECT * WHERE n > 5 && m < 3"})
		assert.Equal(t, `sql="SELECT * WHERE n > 5 && m < 3"`, res)
	})

	t.Run("should return an empty string for missing or broken fields", func(t *testing.T) {
		assert.Equal(t, "", FormatFields(nil))
		assert.Equal(t, "", FormatFields(map[string]interface{}{}))
		assert.Equal(t, "", FormatFields(map[string]interface{}{"ok": 1, "bad": make(chan int)}))
	})
}

func TestEncodeLogfmt(t *testing.T) {
	span := &traceModel.Span{Id: "span-002", Name: "validateOrder", Service: "order-service", StartTime: 10}
	records := []service.LogRecord{
		{
			Span:         span,
			Log:          &logModel.LogEntry{Timestamp: 0, Level: logModel.DebugLevel, Message: "Validating order"},
			AbsoluteTime: 10,
		},
		{
			Span: span,
			Log: &logModel.LogEntry{
				Timestamp: 35,
				Level:     logModel.WarnLevel,
				Message:   "Inventory low",
				Fields:    map[string]interface{}{"sku": "ABC-123", "remaining": 2, "bad key": true},
			},
			AbsoluteTime: 45,
		},
	}

	t.Run("should write one line per record", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeLogfmt(&buf, records))
		assert.Equal(t,
			`time=00:00.010 level=debug span_id=span-002 service=order-service span=validateOrder msg="Validating order"`+"\n"+
				`time=00:00.045 level=warn span_id=span-002 service=order-service span=validateOrder msg="Inventory low" bad_key=true remaining=2 sku=ABC-123`+"\n",
			buf.String(),
		)
	})

	t.Run("should write nothing for no records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeLogfmt(&buf, nil))
		assert.Empty(t, buf.String())
	})
}
