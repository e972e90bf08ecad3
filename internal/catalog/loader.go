package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// DemoAdvisory is shown whenever fallback data replaces a failed fetch.
const DemoAdvisory = "showing demo data"

// Result is what a step screen renders. Demo marks fallback data; Empty marks
// a list with nothing to choose from.
type Result struct {
	Kind      domain.EntityKind
	Entities  []domain.CatalogEntity
	Empty     bool
	Demo      bool
	Advisory  string
	Retryable bool
	Err       error
}

// Loader fetches a list from the provider and substitutes the static list
// when the provider fails. It never returns an error to the flow.
type Loader struct {
	provider Provider
	logger   *slog.Logger
}

func NewLoader(provider Provider, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{provider: provider, logger: logger}
}

// Load issues one request. A successful empty list is reported as Empty and is
// not replaced by demo data; an error, a success:false envelope or a missing
// list falls back to the static list filtered the same way.
func (l *Loader) Load(ctx context.Context, kind domain.EntityKind, q Query) Result {
	resp, err := l.provider.Fetch(ctx, kind, q)
	switch {
	case err != nil:
	case resp == nil:
		err = errors.New("provider returned no response")
	case !resp.Success:
		err = errors.New("provider reported failure")
	case resp.Data == nil:
		err = ErrMalformed
	default:
		return Result{Kind: kind, Entities: resp.Data, Empty: len(resp.Data) == 0}
	}

	if errors.Is(err, ErrUnknownKind) {
		return Result{Kind: kind, Empty: true, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return Result{Kind: kind, Err: err}
	}

	l.logger.WarnContext(ctx, "catalog fetch failed, using demo data",
		"kind", string(kind),
		"country", q.DestinationCountry,
		"error", err.Error(),
	)
	list, _ := StaticList(kind, q)
	return Result{
		Kind:      kind,
		Entities:  list,
		Empty:     len(list) == 0,
		Demo:      true,
		Advisory:  DemoAdvisory,
		Retryable: true,
		Err:       err,
	}
}
