package event_bus

import (
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"sync"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLensEventBus(t *testing.T) {
	logger := zap.NewNop()

	t.Run("should deliver typed payloads to synchronous subscribers", func(t *testing.T) {
		bus := NewLensEventBus[payload, payload](EventBus.New(), logger)
		var received []payload
		require.NoError(t, bus.SubscribeSync("topic", func(input payload) error {
			received = append(received, input)
			return nil
		}))
		require.NoError(t, bus.Publish("topic", payload{Name: "a", Count: 1}))
		require.NoError(t, bus.Publish("topic", payload{Name: "b", Count: 2}))
		assert.Equal(t, []payload{{Name: "a", Count: 1}, {Name: "b", Count: 2}}, received)
	})

	t.Run("should deliver to asynchronous subscribers", func(t *testing.T) {
		bus := NewLensEventBus[*payload, *payload](EventBus.New(), logger)
		var mu sync.Mutex
		var received []*payload
		require.NoError(t, bus.Subscribe("topic", func(input *payload) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, input)
			return nil
		}, true))
		require.NoError(t, bus.Publish("topic", nil))
		require.NoError(t, bus.Publish("topic", &payload{Name: "x"}))
		bus.WaitAsync()
		mu.Lock()
		defer mu.Unlock()
		require.Len(t, received, 2)
		assert.Nil(t, received[0])
		assert.Equal(t, "x", received[1].Name)
	})

	t.Run("should hand every subscriber its own copy", func(t *testing.T) {
		bus := NewLensEventBus[payload, payload](EventBus.New(), logger)
		var first, second payload
		require.NoError(t, bus.SubscribeSync("topic", func(input payload) error {
			input.Name = "changed"
			first = input
			return nil
		}))
		require.NoError(t, bus.SubscribeSync("topic", func(input payload) error {
			second = input
			return nil
		}))
		require.NoError(t, bus.Publish("topic", payload{Name: "original"}))
		assert.Equal(t, "changed", first.Name)
		assert.Equal(t, "original", second.Name)
	})

	t.Run("should fail to publish payloads that cannot be marshalled", func(t *testing.T) {
		bus := NewLensEventBus[any, any](EventBus.New(), logger)
		assert.Error(t, bus.Publish("topic", make(chan int)))
	})
}
