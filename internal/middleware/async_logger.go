package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the capacity of the entry queue; entries beyond it are dropped.
	BufferSize int
	// NumWorkers is the number of goroutines writing batches.
	NumWorkers int
	// BatchSize is the maximum number of entries per bulk insert.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout is the timeout of one bulk insert.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    4,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats are counters of an AsyncLogger.
type AsyncLoggerStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Errors   int64
}

// AsyncLogger persists log entries through a bounded queue drained by a
// fixed worker pool, so request handling never waits on MongoDB.
// A nil *AsyncLogger accepts and drops everything.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger starts the worker pool. It returns nil when loggingService is nil.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	defaults := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}

	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	add := func(entry *model.LogEntry) {
		batch = append(batch, entry)
		if len(batch) >= al.cfg.BatchSize {
			al.flush(batch)
			batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
		}
	}

	for {
		select {
		case entry := <-al.entryCh:
			add(entry)
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*model.LogEntry, 0, al.cfg.BatchSize)
			}
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					add(entry)
				default:
					if len(batch) > 0 {
						al.flush(batch)
					}
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.errors.Add(int64(len(batch)))
		log := logger.Component("async_logger")
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write log batch")
		return
	}
	al.written.Add(int64(len(batch)))
}

// Log enqueues entry and reports whether it was accepted. Entries are
// dropped when the queue is full or the logger is stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	select {
	case <-al.stopCh:
		al.dropped.Add(1)
		return false
	default:
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop flushes queued entries and waits for the workers. Safe to call twice.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Errors:   al.errors.Load(),
	}
}
