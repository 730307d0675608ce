package worker

import (
	"context"
	"sync"
	"time"

	"neolink/internal/service"
	"neolink/pkg/logger"
)

// DatasetWorker reloads the dataset on a fixed interval.
type DatasetWorker struct {
	service  service.DatasetService
	interval time.Duration
	timeout  time.Duration
	log      *logger.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewDatasetWorker(service service.DatasetService, interval time.Duration, log *logger.Logger) *DatasetWorker {
	return &DatasetWorker{
		service:  service,
		interval: interval,
		timeout:  5 * time.Minute,
		log:      log.With("worker", "dataset"),
	}
}

// Start runs one reload right away and then keeps reloading until Stop.
func (w *DatasetWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	stop, done := w.stopChan, w.done
	w.mu.Unlock()

	w.log.Info("worker started", "interval", w.interval)

	w.reload(stop)
	go w.run(stop, done)
}

func (w *DatasetWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	done := w.done
	w.mu.Unlock()

	<-done
	w.log.Info("worker stopped")
}

func (w *DatasetWorker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reload(stop)
		case <-stop:
			return
		}
	}
}

func (w *DatasetWorker) reload(stop <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	snapshot, err := w.service.Reload(ctx)
	if err != nil {
		w.log.Error("dataset reload failed", "error", err)
		return
	}
	w.log.Info("dataset reloaded", "snapshot", snapshot.ID)
}
