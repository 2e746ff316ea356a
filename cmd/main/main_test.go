package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/yaymukund/twittov/pkg/cache"
)

type fakeCache struct {
	corpus  map[string][]string
	putErr  error
	lookups int
	puts    int
}

func (f *fakeCache) Lookup(_ context.Context, username string) ([]string, error) {
	f.lookups++
	if corpus, ok := f.corpus[username]; ok {
		return corpus, nil
	}
	return nil, cache.ErrMiss
}

func (f *fakeCache) Put(_ context.Context, username string, corpus []string) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.corpus[username] = corpus
	return nil
}

type fakeFetcher struct {
	corpus  []string
	err     error
	fetches int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, _ int) ([]string, error) {
	f.fetches++
	return f.corpus, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadCorpusCacheHit(t *testing.T) {
	store := &fakeCache{corpus: map[string][]string{"mukund": {"cached tweet"}}}
	client := &fakeFetcher{corpus: []string{"fresh tweet"}}

	corpus, err := loadCorpus(context.Background(), store, client, "mukund", 200, false, discardLogger())
	if err != nil {
		t.Fatalf("loadCorpus() error = %v", err)
	}
	if !reflect.DeepEqual(corpus, []string{"cached tweet"}) {
		t.Errorf("loadCorpus() = %v, want the cached corpus", corpus)
	}
	if client.fetches != 0 {
		t.Errorf("fetched %d times on a cache hit, want 0", client.fetches)
	}
}

func TestLoadCorpusMissFetchesAndCaches(t *testing.T) {
	store := &fakeCache{corpus: map[string][]string{}}
	client := &fakeFetcher{corpus: []string{"fresh tweet"}}

	corpus, err := loadCorpus(context.Background(), store, client, "mukund", 200, false, discardLogger())
	if err != nil {
		t.Fatalf("loadCorpus() error = %v", err)
	}
	if !reflect.DeepEqual(corpus, []string{"fresh tweet"}) {
		t.Errorf("loadCorpus() = %v, want the fetched corpus", corpus)
	}
	if !reflect.DeepEqual(store.corpus["mukund"], []string{"fresh tweet"}) {
		t.Errorf("fetched corpus was not cached: %v", store.corpus)
	}
}

func TestLoadCorpusForceSkipsCache(t *testing.T) {
	store := &fakeCache{corpus: map[string][]string{"mukund": {"stale tweet"}}}
	client := &fakeFetcher{corpus: []string{"fresh tweet"}}

	corpus, err := loadCorpus(context.Background(), store, client, "mukund", 200, true, discardLogger())
	if err != nil {
		t.Fatalf("loadCorpus() error = %v", err)
	}
	if !reflect.DeepEqual(corpus, []string{"fresh tweet"}) {
		t.Errorf("loadCorpus() = %v, want the fresh corpus", corpus)
	}
	if store.lookups != 0 {
		t.Errorf("looked up the cache %d times with force set, want 0", store.lookups)
	}
}

func TestLoadCorpusFetchError(t *testing.T) {
	store := &fakeCache{corpus: map[string][]string{}}
	client := &fakeFetcher{err: errors.New("network down")}

	if _, err := loadCorpus(context.Background(), store, client, "mukund", 200, false, discardLogger()); err == nil {
		t.Error("loadCorpus() expected an error when the fetch fails")
	}
}

func TestLoadCorpusPutFailureIsNotFatal(t *testing.T) {
	store := &fakeCache{corpus: map[string][]string{}, putErr: errors.New("disk full")}
	client := &fakeFetcher{corpus: []string{"fresh tweet"}}

	corpus, err := loadCorpus(context.Background(), store, client, "mukund", 200, false, discardLogger())
	if err != nil {
		t.Fatalf("loadCorpus() error = %v, cache write failures should not be fatal", err)
	}
	if !reflect.DeepEqual(corpus, []string{"fresh tweet"}) {
		t.Errorf("loadCorpus() = %v", corpus)
	}
}

func TestValidateFlags(t *testing.T) {
	testCases := []struct {
		name    string
		length  int
		order   int
		amount  int
		wantErr bool
	}{
		{"Valid", 160, 3, 200, false},
		{"Zero length", 0, 3, 200, true},
		{"Negative order", 160, -1, 200, true},
		{"Zero amount", 160, 3, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateFlags(tc.length, tc.order, tc.amount)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateFlags(%d, %d, %d) error = %v, wantErr %v", tc.length, tc.order, tc.amount, err, tc.wantErr)
			}
		})
	}
}
