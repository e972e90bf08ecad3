package handoff

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// MailtoURL returns a mailto: link pre-filled with the handoff.
func MailtoURL(h Handoff) string {
	q := url.Values{}
	q.Set("subject", h.Subject)
	q.Set("body", h.Body)
	// Mail clients expect %20 rather than + for spaces.
	return "mailto:" + url.PathEscape(h.Recipient) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// MailtoChannel writes a mailto: link the user can open in their mail client.
type MailtoChannel struct {
	w io.Writer
}

func NewMailtoChannel(w io.Writer) *MailtoChannel {
	return &MailtoChannel{w: w}
}

func (*MailtoChannel) Name() string { return "mailto" }

func (c *MailtoChannel) Send(_ context.Context, h Handoff) error {
	if h.Recipient == "" {
		return fmt.Errorf("mailto handoff needs a recipient")
	}
	if _, err := fmt.Fprintln(c.w, MailtoURL(h)); err != nil {
		return fmt.Errorf("writing mailto link: %w", err)
	}
	return nil
}
