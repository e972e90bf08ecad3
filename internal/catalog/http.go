package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// HTTPProvider fetches catalog lists from a JSON endpoint:
//
//	GET {endpoint}/{path}?country=..&level=..&field=..
//	{"success": true, "data": [{"id": 7, "name": "...", ...}]}
type HTTPProvider struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

func NewHTTPProvider(cfg Config, observer Observer) *HTTPProvider {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &HTTPProvider{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 3 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

var kindPaths = map[domain.EntityKind]string{
	domain.EntityInstitution:   "institutions",
	domain.EntityAccommodation: "accommodation-types",
}

// envelope is the wire response. Data is a pointer so a missing field can be
// told apart from an empty list.
type envelope struct {
	Success bool                          `json:"success"`
	Data    *[]map[string]json.RawMessage `json:"data"`
}

// statusError is a non-200 reply. 5xx replies are retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("catalog returned status %d: %s", e.code, e.body)
}

func (p *HTTPProvider) Fetch(ctx context.Context, kind domain.EntityKind, q Query) (*Response, error) {
	start := time.Now()
	path, ok := kindPaths[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 0
	for i := 0; i < 1+p.cfg.MaxRetries; i++ {
		attempts++
		resp, err := p.doRequest(ctx, path, kind, q)
		if err == nil {
			p.observer.OnCallComplete(CallEvent{
				Kind:      kind,
				Country:   q.DestinationCountry,
				Attempts:  attempts,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
				Count:     len(resp.Data),
			})
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout or a bad body.
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		lastErr = ctx.Err()
	case ctx.Err() != nil:
		lastErr = ErrTimeout
	case errors.Is(lastErr, ErrMalformed):
	case isConnectionError(lastErr):
		lastErr = ErrUnavailable
	default:
		lastErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
	p.observer.OnCallComplete(CallEvent{
		Kind:      kind,
		Country:   q.DestinationCountry,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})
	return nil, lastErr
}

func (p *HTTPProvider) doRequest(ctx context.Context, path string, kind domain.EntityKind, q Query) (*Response, error) {
	params := url.Values{}
	if q.DestinationCountry != "" {
		params.Set("country", q.DestinationCountry)
	}
	if q.StudyLevel != "" {
		params.Set("level", string(q.StudyLevel))
	}
	if q.StudyField != "" {
		params.Set("field", q.StudyField)
	}
	u := strings.TrimRight(p.cfg.Endpoint, "/") + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !env.Success {
		return &Response{Success: false}, nil
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}

	entities := make([]domain.CatalogEntity, 0, len(*env.Data))
	for i, raw := range *env.Data {
		e, err := decodeEntity(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformed, i, err)
		}
		entities = append(entities, e)
	}
	return &Response{Success: true, Data: entities}, nil
}

// decodeEntity maps one wire object onto a CatalogEntity. id may be a number
// or a string; name is required; any other scalar field is kept in Details.
func decodeEntity(kind domain.EntityKind, raw map[string]json.RawMessage) (domain.CatalogEntity, error) {
	e := domain.CatalogEntity{Kind: kind}

	id, ok := raw["id"]
	if !ok {
		return e, errors.New("missing id")
	}
	e.ID = scalarString(id)
	if e.ID == "" {
		return e, errors.New("empty id")
	}
	e.Name = scalarString(raw["name"])
	if e.Name == "" {
		return e, errors.New("missing name")
	}
	e.Country = scalarString(raw["country"])
	e.City = scalarString(raw["city"])

	for k, v := range raw {
		switch k {
		case "id", "name", "country", "city", "kind":
			continue
		}
		if s := scalarString(v); s != "" {
			if e.Details == nil {
				e.Details = make(map[string]string)
			}
			e.Details[k] = s
		}
	}
	return e, nil
}

// scalarString renders a JSON string, number or bool as text. Objects,
// arrays and null yield "".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "yes"
		}
		return "no"
	}
	return ""
}

func retryable(err error) bool {
	if errors.Is(err, ErrMalformed) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return true
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrMalformed):
		return "MALFORMED"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
