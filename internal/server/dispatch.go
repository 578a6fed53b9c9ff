package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/core"
)

// Dispatcher hands accepted events to background workers so the webhook can
// acknowledge before pipeline completion. Delivery is at most once: a full
// queue or a process crash drops events, and there is no redelivery.
type Dispatcher struct {
	service *core.LeadService
	logger  *zap.Logger
	queue   chan *core.InboundEvent
	workers int
	wg      sync.WaitGroup
}

// NewDispatcher creates a new dispatcher with a bounded queue
func NewDispatcher(service *core.LeadService, logger *zap.Logger, queueSize, workers int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		service: service,
		logger:  logger,
		queue:   make(chan *core.InboundEvent, queueSize),
		workers: workers,
	}
}

// Start launches the worker goroutines
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

// Enqueue offers an event to the queue without blocking. It returns false
// when the queue is full and the event was dropped.
func (d *Dispatcher) Enqueue(ev *core.InboundEvent) bool {
	select {
	case d.queue <- ev:
		return true
	default:
		d.logger.Warn("Event queue full, dropping event",
			zap.String("channel", ev.Channel),
			zap.String("ts", ev.Timestamp))
		return false
	}
}

// Stop closes the queue and waits for in-flight events to finish
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
}

// work drains the queue, running each event through the pipeline
func (d *Dispatcher) work() {
	defer d.wg.Done()
	for ev := range d.queue {
		d.service.Process(context.Background(), ev)
	}
}
