package event_bus

import (
	"fmt"
	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LensEventBus is a typed view over a shared EventBus.Bus. Payloads travel as JSON so that every
// subscriber receives its own copy.
type LensEventBus[InputType any, OutputType any] interface {
	// Subscribe delivers events on a separate goroutine.
	Subscribe(topic string, handler func(input InputType) error, transactional bool) error
	// SubscribeSync delivers events on the publishing goroutine while the bus is locked. The
	// handler must not publish or subscribe.
	SubscribeSync(topic string, handler func(input InputType) error) error
	Publish(topic string, arg OutputType) error
	// WaitAsync blocks until every asynchronous handler has returned.
	WaitAsync()
}

type LensEventBusImpl[InputType any, OutputType any] struct {
	eventBus EventBus.Bus
	logger   *zap.Logger
}

func NewLensEventBus[InputType any, OutputType any](
	eventBus EventBus.Bus,
	logger *zap.Logger,
) LensEventBus[InputType, OutputType] {
	return &LensEventBusImpl[InputType, OutputType]{
		eventBus: eventBus,
		logger:   logger,
	}
}

func (ev *LensEventBusImpl[InputType, OutputType]) Subscribe(
	topic string,
	handler func(input InputType) error,
	transactional bool,
) error {
	err := ev.eventBus.SubscribeAsync(topic, ev.decoding(topic, handler), transactional)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return nil
}

func (ev *LensEventBusImpl[InputType, OutputType]) SubscribeSync(
	topic string,
	handler func(input InputType) error,
) error {
	err := ev.eventBus.Subscribe(topic, ev.decoding(topic, handler))
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return nil
}

func (ev *LensEventBusImpl[InputType, OutputType]) decoding(
	topic string,
	handler func(input InputType) error,
) func(arg string) {
	return func(arg string) {
		var input InputType
		err := json.Unmarshal([]byte(arg), &input)
		if err != nil {
			ev.logger.Error("Failed to unmarshal input during subscription of topic",
				zap.String("topic", topic),
				zap.Error(err),
			)
			return
		}
		err = handler(input)
		if err != nil {
			ev.logger.Error("Failed to handle input during subscription of topic",
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
}

func (ev *LensEventBusImpl[InputType, OutputType]) Publish(
	topic string,
	arg OutputType,
) error {
	argBytes, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("failed to marshal output during publishing of topic %s: %w", topic, err)
	}
	ev.eventBus.Publish(topic, string(argBytes))
	return nil
}

func (ev *LensEventBusImpl[InputType, OutputType]) WaitAsync() {
	ev.eventBus.WaitAsync()
}
