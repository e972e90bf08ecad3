package handoff

import (
	"context"
	"fmt"
	"io"
)

// WriterChannel prints the handoff, headers included, to w.
type WriterChannel struct {
	w io.Writer
}

func NewWriterChannel(w io.Writer) *WriterChannel {
	return &WriterChannel{w: w}
}

func (*WriterChannel) Name() string { return "stdout" }

func (c *WriterChannel) Send(_ context.Context, h Handoff) error {
	to := h.Recipient
	if to == "" {
		to = "(no recipient)"
	}
	if _, err := fmt.Fprintf(c.w, "To: %s\nSubject: %s\n---\n%s", to, h.Subject, h.Body); err != nil {
		return fmt.Errorf("writing handoff: %w", err)
	}
	return nil
}
