package catalog

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// CallEvent records metadata about a single catalog request.
type CallEvent struct {
	Kind      domain.EntityKind
	Country   string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
	Count     int
}

// Observer receives events about catalog calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes catalog call events to an io.Writer.
type LogObserver struct {
	w   io.Writer
	now func() time.Time
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w, now: time.Now}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := o.now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] catalog_call kind=%s country=%q attempts=%d latency_ms=%d count=%d status=%s\n",
		ts, event.Kind, event.Country, event.Attempts, event.LatencyMs, event.Count, status)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
