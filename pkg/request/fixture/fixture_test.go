package fixture

import (
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSampleRequests(t *testing.T) {
	t.Run("should decode every sample request", func(t *testing.T) {
		requests, err := SampleRequests()
		require.NoError(t, err)
		require.Len(t, requests, 4)
		assert.Equal(t, "req-001", requests[0].Id)
		assert.Equal(t, traceModel.RequestCompleted, requests[0].Status)
		assert.Equal(t, traceModel.RequestError, requests[2].Status)
		require.NotNil(t, requests[0].Duration)
		assert.Equal(t, 245.0, *requests[0].Duration)
		assert.Len(t, requests[3].Trace.Spans, 17)
	})

	t.Run("should keep parent links and log fields", func(t *testing.T) {
		requests, err := SampleRequests()
		require.NoError(t, err)
		span := requests[0].Trace.FindSpan("span-3")
		require.NotNil(t, span)
		assert.Equal(t, "span-2", span.ParentId)
		assert.Equal(t, traceModel.DatabaseSpan, span.Type)
		assert.Equal(t, "idx_users_email", span.Logs[2].Fields["index"])
		assert.Equal(t, "postgresql", span.Tags["db.type"])
	})
}
