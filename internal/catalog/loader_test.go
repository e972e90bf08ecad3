package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	resp  *Response
	err   error
	calls int
}

func (s *stubProvider) Fetch(context.Context, domain.EntityKind, Query) (*Response, error) {
	s.calls++
	return s.resp, s.err
}

func ids(list []domain.CatalogEntity) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func TestLoader_FailingProviderFallsBackToGermany(t *testing.T) {
	l := NewLoader(&stubProvider{err: errors.New("connection reset")}, nil)

	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "Germany"})
	assert.True(t, res.Demo)
	assert.True(t, res.Retryable)
	assert.Equal(t, DemoAdvisory, res.Advisory)
	assert.Equal(t, []string{"4", "5", "6", "7"}, ids(res.Entities))
	for _, e := range res.Entities {
		assert.Equal(t, "Germany", e.Country)
	}
}

func TestLoader_SuccessFalseFallsBack(t *testing.T) {
	l := NewLoader(&stubProvider{resp: &Response{Success: false}}, nil)
	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "France"})
	assert.True(t, res.Demo)
	assert.Equal(t, []string{"1", "2", "3"}, ids(res.Entities))
}

func TestLoader_MissingDataFallsBack(t *testing.T) {
	l := NewLoader(&stubProvider{resp: &Response{Success: true}}, nil)
	res := l.Load(context.Background(), domain.EntityAccommodation, Query{DestinationCountry: "France"})
	assert.True(t, res.Demo)
	assert.Len(t, res.Entities, 4)
}

func TestLoader_EmptyListIsNotFallback(t *testing.T) {
	l := NewLoader(&stubProvider{resp: &Response{Success: true, Data: []domain.CatalogEntity{}}}, nil)
	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "Iceland"})
	assert.True(t, res.Empty)
	assert.False(t, res.Demo)
	assert.Empty(t, res.Advisory)
	assert.NoError(t, res.Err)
}

func TestLoader_ProviderDataPassesThrough(t *testing.T) {
	data := []domain.CatalogEntity{{ID: "99", Name: "ETH Zurich", Country: "Switzerland"}}
	l := NewLoader(&stubProvider{resp: &Response{Success: true, Data: data}}, nil)
	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "Germany"})
	assert.False(t, res.Demo)
	assert.Equal(t, data, res.Entities, "provider results are shown as-is")
}

func TestLoader_FallbackWithNoMatches(t *testing.T) {
	l := NewLoader(&stubProvider{err: ErrTimeout}, nil)
	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "Iceland"})
	assert.True(t, res.Demo)
	assert.True(t, res.Empty)
	assert.ErrorIs(t, res.Err, ErrTimeout)
}

func TestLoader_EachLoadRefetches(t *testing.T) {
	stub := &stubProvider{resp: &Response{Success: true, Data: []domain.CatalogEntity{}}}
	l := NewLoader(stub, nil)
	l.Load(context.Background(), domain.EntityInstitution, Query{})
	l.Load(context.Background(), domain.EntityInstitution, Query{})
	assert.Equal(t, 2, stub.calls)
}

func TestLoader_OverHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	l := NewLoader(NewHTTPProvider(cfg, nil), nil)
	res := l.Load(context.Background(), domain.EntityInstitution, Query{DestinationCountry: "Germany"})
	require.True(t, res.Demo)
	assert.Len(t, res.Entities, 4)
}

func TestStaticList_ReturnsCopies(t *testing.T) {
	list, err := StaticList(domain.EntityInstitution, Query{})
	require.NoError(t, err)
	require.Len(t, list, 12)
	list[0].Details["tuition"] = "free"

	again, _ := StaticList(domain.EntityInstitution, Query{})
	assert.NotEqual(t, "free", again[0].Details["tuition"])
}

func TestStaticList_CountryIsCaseInsensitive(t *testing.T) {
	list, err := StaticList(domain.EntityInstitution, Query{DestinationCountry: "united kingdom"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, ids(list))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, &StaticProvider{}, p)

	p, err = NewProvider(testConfig("http://catalog.internal"), nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPProvider{}, p)

	_, err = NewProvider(Config{Mode: "ftp"}, nil)
	assert.Error(t, err)
}
