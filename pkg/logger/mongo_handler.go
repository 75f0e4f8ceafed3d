package logger

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/ecommerce/config"
)

// LogDocument is the shape of one log record in MongoDB.
type LogDocument struct {
	Time    time.Time      `bson:"time"`
	Level   string         `bson:"level"`
	Message string         `bson:"message"`
	Attrs   map[string]any `bson:"attrs,omitempty"`
}

// MongoHandler is an slog.Handler that ships records to a MongoDB
// collection asynchronously. Handle never blocks the request path: records
// go into a buffered channel and a drain goroutine batches them into
// InsertMany calls. When the buffer is full the record is dropped.
type MongoHandler struct {
	client *mongo.Client
	coll   *mongo.Collection
	level  slog.Level
	attrs  []slog.Attr
	group  string
	queue  chan LogDocument
	done   chan struct{}
}

const (
	mongoQueueSize  = 1024
	mongoBatchSize  = 50
	mongoBatchTick  = 2 * time.Second
	mongoCollection = "app_logs"
)

// NewMongoHandler connects to the configured MongoDB deployment and starts
// the drain goroutine. The caller owns Close.
func NewMongoHandler(ctx context.Context, level slog.Level) (*MongoHandler, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoLogURI()))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	coll := client.Database(config.MongoLogDB()).Collection(mongoCollection)

	h := &MongoHandler{
		client: client,
		coll:   coll,
		level:  level,
		queue:  make(chan LogDocument, mongoQueueSize),
		done:   make(chan struct{}),
	}
	go h.drainLoop()
	return h, nil
}

func (h *MongoHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *MongoHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, record.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[h.key(a.Key)] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[h.key(a.Key)] = a.Value.Any()
		return true
	})

	doc := LogDocument{
		Time:    record.Time,
		Level:   record.Level.String(),
		Message: record.Message,
		Attrs:   attrs,
	}

	select {
	case h.queue <- doc:
	default:
		// queue full, drop rather than stall the caller
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

func (h *MongoHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func (h *MongoHandler) drainLoop() {
	ticker := time.NewTicker(mongoBatchTick)
	defer ticker.Stop()

	batch := make([]any, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = h.coll.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc, ok := <-h.queue:
			if !ok {
				flush()
				close(h.done)
				return
			}
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Close flushes buffered records and disconnects.
func (h *MongoHandler) Close(ctx context.Context) error {
	close(h.queue)
	select {
	case <-h.done:
	case <-ctx.Done():
	}
	return h.client.Disconnect(ctx)
}

// TeeHandler fans a record out to several handlers. The server boots with
// a stdout handler plus the Mongo handler when log shipping is enabled.
type TeeHandler struct {
	handlers []slog.Handler
}

func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: next}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: next}
}
