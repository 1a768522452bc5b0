// Package kv is a client for the consul key value http api. values are json
// documents, written whole with a single PUT.
package kv

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/consul/api"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"

	"github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/internal/envx"
	"github.com/platypus-platform/pp/internal/stringsx"
)

// DefaultAddress of the local store agent.
const DefaultAddress = pp.DefaultStoreAddress

// Option configures the underlying consul client.
type Option func(*config)

type config struct {
	*api.Config
	wrap func(http.RoundTripper) http.RoundTripper
}

// OptionAddress the base url (or host:port) of the store. blank keeps the
// address resolved from the environment.
func OptionAddress(address string) Option {
	return func(c *config) {
		c.Address = stringsx.DefaultIfBlank(address, c.Address)
	}
}

// OptionToken the acl token to present with each request.
func OptionToken(token string) Option {
	return func(c *config) {
		c.Token = stringsx.DefaultIfBlank(token, c.Token)
	}
}

// OptionDatacenter targets a specific datacenter.
func OptionDatacenter(dc string) Option {
	return func(c *config) {
		c.Datacenter = dc
	}
}

// OptionHTTPClient override the http client used to issue requests. the
// client is used as is, tls settings from the environment are not applied to it.
func OptionHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		if hc == nil {
			return
		}

		c.HttpClient = hc
	}
}

// OptionRoundTripper wraps the transport of the http client, e.g. to dump traffic.
func OptionRoundTripper(wrap func(http.RoundTripper) http.RoundTripper) Option {
	return func(c *config) {
		c.wrap = wrap
	}
}

// New client for the store. the address is resolved from PP_KV_ADDRESS,
// then CONSUL_HTTP_ADDR, then DefaultAddress; the token from PP_KV_TOKEN then
// CONSUL_HTTP_TOKEN. the remaining consul environment variables (tls, auth)
// are honoured.
func New(options ...Option) (_ *Client, err error) {
	var (
		c    *api.Client
		conf = config{Config: api.DefaultConfig()}
	)

	if strings.TrimSpace(os.Getenv(api.HTTPAddrEnvName)) == "" {
		conf.Address = DefaultAddress
	}

	conf.Address = envx.String(conf.Address, pp.EnvStoreAddress)
	conf.Token = envx.String(conf.Token, pp.EnvStoreToken)
	conf.Transport = cleanhttp.DefaultPooledTransport()

	for _, opt := range options {
		opt(&conf)
	}

	if conf.HttpClient == nil {
		if conf.HttpClient, err = api.NewHttpClient(conf.Transport, conf.TLSConfig); err != nil {
			return nil, errors.Wrap(err, "unable to build store http client")
		}
	}

	if conf.wrap != nil {
		dup := *conf.HttpClient
		rt := dup.Transport
		if rt == nil {
			rt = http.DefaultTransport
		}
		dup.Transport = conf.wrap(rt)
		conf.HttpClient = &dup
	}

	if c, err = api.NewClient(conf.Config); err != nil {
		return nil, errors.Wrap(err, "unable to build store client")
	}

	return &Client{kv: c.KV()}, nil
}

// Encode the value as the json document stored under the key.
func Encode(key string, value interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, SerializationError{Key: key, cause: errors.WithStack(err)}
	}

	return encoded, nil
}

// Client reads and writes json values.
type Client struct {
	kv *api.KV
}

// Put encodes the value once and writes it as the full value of the key.
// an already encoded json.RawMessage is written verbatim.
func (t *Client) Put(ctx context.Context, key string, value interface{}) (err error) {
	var (
		encoded json.RawMessage
	)

	if raw, ok := value.(json.RawMessage); ok {
		encoded = raw
	} else if encoded, err = Encode(key, value); err != nil {
		return err
	}

	_, err = t.kv.Put(&api.KVPair{Key: key, Value: encoded}, (&api.WriteOptions{}).WithContext(ctx))

	return classify(key, err)
}

// Get decodes the value of the key into dst. a missing key is not an error,
// found is false instead.
func (t *Client) Get(ctx context.Context, key string, dst interface{}) (found bool, err error) {
	var (
		pair *api.KVPair
	)

	if pair, _, err = t.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx)); err != nil {
		return false, classify(key, err)
	}

	if pair == nil {
		return false, nil
	}

	if err = json.Unmarshal(pair.Value, dst); err != nil {
		return true, SerializationError{Key: key, cause: errors.WithStack(err)}
	}

	return true, nil
}

// List the raw values below the prefix keyed relative to it.
func (t *Client) List(ctx context.Context, prefix string) (values map[string][]byte, err error) {
	var (
		pairs api.KVPairs
	)

	prefix = strings.TrimSuffix(prefix, "/") + "/"

	if pairs, _, err = t.kv.List(prefix, (&api.QueryOptions{}).WithContext(ctx)); err != nil {
		return nil, classify(prefix, err)
	}

	values = make(map[string][]byte, len(pairs))
	for _, p := range pairs {
		name := strings.TrimPrefix(p.Key, prefix)
		if name == "" {
			continue
		}

		values[name] = p.Value
	}

	return values, nil
}

// DeleteTree removes the prefix and every key below it.
func (t *Client) DeleteTree(ctx context.Context, prefix string) (err error) {
	_, err = t.kv.DeleteTree(prefix, (&api.WriteOptions{}).WithContext(ctx))
	return classify(prefix, err)
}
