package handoff

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// SMTPChannel sends the handoff as a plain-text mail. Port 465 uses implicit
// TLS; any other port upgrades with STARTTLS when the server offers it.
type SMTPChannel struct {
	cfg       SMTPConfig
	dialer    *net.Dialer
	tlsConfig *tls.Config
}

func NewSMTPChannel(cfg SMTPConfig) *SMTPChannel {
	return &SMTPChannel{
		cfg:       cfg,
		dialer:    &net.Dialer{Timeout: 10 * time.Second},
		tlsConfig: &tls.Config{ServerName: cfg.Host},
	}
}

func (*SMTPChannel) Name() string { return "smtp" }

// formatMail builds the RFC 5322 message.
func formatMail(from, to, subject, body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		from, to, subject, body)
}

func (c *SMTPChannel) Send(ctx context.Context, h Handoff) (err error) {
	if !c.cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}
	if h.Recipient == "" {
		return fmt.Errorf("smtp handoff needs a recipient")
	}

	addr := net.JoinHostPort(c.cfg.Host, c.cfg.Port)
	var conn net.Conn
	if c.cfg.Port == "465" {
		td := &tls.Dialer{NetDialer: c.dialer, Config: c.tlsConfig}
		conn, err = td.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("TLS dial: %w", err)
		}
	} else {
		conn, err = c.dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("dial: %w", err)
		}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if c.cfg.Port != "465" {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(c.tlsConfig); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if c.cfg.User != "" {
		auth := smtp.PlainAuth("", c.cfg.User, c.cfg.Pass, c.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(h.Recipient); err != nil {
		return fmt.Errorf("rcpt to %s: %w", h.Recipient, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(formatMail(c.cfg.From, h.Recipient, h.Subject, h.Body))); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return nil
}
