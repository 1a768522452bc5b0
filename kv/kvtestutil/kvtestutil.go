// Package kvtestutil provides an in memory implementation of the consul
// key value http api for tests.
package kvtestutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"

	"github.com/platypus-platform/pp/internal/httputilx"
)

const prefix = "/v1/kv/"

// Write a recorded mutation of the store.
type Write struct {
	Method string
	Key    string
	Body   []byte
}

// NewServer starts a http server backed by a new store.
func NewServer() (*Store, *httptest.Server) {
	s := NewStore()
	return s, httptest.NewServer(s)
}

// NewStore an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Store in memory key value store.
type Store struct {
	m      sync.Mutex
	index  uint64
	reject int
	values map[string][]byte
	writes []Write
}

// Reject responds to every subsequent request with the given status code.
// zero restores normal behaviour.
func (t *Store) Reject(code int) {
	t.m.Lock()
	defer t.m.Unlock()
	t.reject = code
}

// Writes returns the mutations received so far in order.
func (t *Store) Writes() []Write {
	t.m.Lock()
	defer t.m.Unlock()
	return append([]Write(nil), t.writes...)
}

// Value returns the raw value of the key.
func (t *Store) Value(key string) ([]byte, bool) {
	t.m.Lock()
	defer t.m.Unlock()
	v, ok := t.values[key]
	return v, ok
}

// Set the raw value of the key without recording a write.
func (t *Store) Set(key string, value []byte) {
	t.m.Lock()
	defer t.m.Unlock()
	t.index++
	t.values[key] = value
}

// Snapshot copy of every key and value in the store.
func (t *Store) Snapshot() map[string]string {
	t.m.Lock()
	defer t.m.Unlock()
	dup := make(map[string]string, len(t.values))
	for k, v := range t.values {
		dup[k] = string(v)
	}
	return dup
}

// ServeHTTP implements http.Handler.
func (t *Store) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	t.m.Lock()
	defer t.m.Unlock()

	if !strings.HasPrefix(req.URL.Path, prefix) {
		http.NotFound(resp, req)
		return
	}

	if t.reject != 0 {
		http.Error(resp, http.StatusText(t.reject), t.reject)
		return
	}

	key := strings.TrimPrefix(req.URL.Path, prefix)
	_, recurse := req.URL.Query()["recurse"]

	switch req.Method {
	case http.MethodPut:
		t.put(resp, req, key)
	case http.MethodGet:
		t.get(resp, key, recurse)
	case http.MethodDelete:
		t.delete(resp, key, recurse)
	default:
		resp.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (t *Store) put(resp http.ResponseWriter, req *http.Request, key string) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(resp, err.Error(), http.StatusBadRequest)
		return
	}

	t.index++
	t.values[key] = body
	t.writes = append(t.writes, Write{Method: req.Method, Key: key, Body: body})
	t.meta(resp)
	resp.Write([]byte("true"))
}

func (t *Store) get(resp http.ResponseWriter, key string, recurse bool) {
	pairs := make(api.KVPairs, 0, 1)

	for k, v := range t.values {
		if k == key || (recurse && strings.HasPrefix(k, key)) {
			pairs = append(pairs, &api.KVPair{Key: k, Value: v, CreateIndex: t.index, ModifyIndex: t.index})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })

	t.meta(resp)
	if len(pairs) == 0 {
		resp.WriteHeader(http.StatusNotFound)
		return
	}

	httputilx.WriteJSON(resp, bytes.NewBuffer(nil), pairs)
}

func (t *Store) delete(resp http.ResponseWriter, key string, recurse bool) {
	for k := range t.values {
		if k == key || (recurse && strings.HasPrefix(k, key)) {
			delete(t.values, k)
		}
	}

	t.index++
	t.writes = append(t.writes, Write{Method: http.MethodDelete, Key: key})
	t.meta(resp)
	resp.Write([]byte("true"))
}

func (t *Store) meta(resp http.ResponseWriter) {
	resp.Header().Set("X-Consul-Index", strconv.FormatUint(t.index, 10))
	resp.Header().Set("X-Consul-LastContact", "0")
	resp.Header().Set("X-Consul-KnownLeader", "true")
}
