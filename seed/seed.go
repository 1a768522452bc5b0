// Package seed publishes the records describing where an application runs
// and what it runs: the host's node record, the cluster's version map, and
// the cluster's deploy configuration.
package seed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/platypus-platform/pp/backoff"
	"github.com/platypus-platform/pp/intent"
	"github.com/platypus-platform/pp/kv"
)

// Store accepts whole json values by key. values are handed over already
// encoded as json.RawMessage.
type Store interface {
	Put(ctx context.Context, key string, value interface{}) error
}

// Plan the full set of records for an application on a host.
type Plan struct {
	App          string              `yaml:"app"`
	Cluster      string              `yaml:"cluster"`
	Hostname     string              `yaml:"hostname"`
	Versions     intent.VersionMap   `yaml:"versions"`
	DeployConfig intent.DeployConfig `yaml:"deploy_config"`
}

// Validate the plan as a whole, nothing about it is published when invalid.
func (t Plan) Validate() error {
	if err := segments("app", t.App, "cluster", t.Cluster, "hostname", t.Hostname); err != nil {
		return err
	}

	if err := t.Versions.Validate(); err != nil {
		return err
	}

	return t.DeployConfig.Validate()
}

// Option configures a Seeder.
type Option func(*Seeder)

// OptionAbortOnFailure stop seeding at the first failed publish.
// by default the remaining publishes still run.
func OptionAbortOnFailure(b bool) Option {
	return func(s *Seeder) {
		s.abort = b
	}
}

// OptionRetry reattempt publishes that fail due to transport errors or
// temporary rejections, up to attempts additional times.
func OptionRetry(attempts int, strategy backoff.Strategy) Option {
	return func(s *Seeder) {
		if strategy == nil {
			return
		}

		s.attempts = attempts
		s.retry = strategy
	}
}

// New seeder writing to the provided store.
func New(s Store, options ...Option) Seeder {
	sd := Seeder{
		store: s,
		retry: backoff.Constant(time.Second),
	}

	for _, opt := range options {
		opt(&sd)
	}

	return sd
}

// Seeder publishes intent records. it never reads them back.
type Seeder struct {
	store    Store
	abort    bool
	attempts int
	retry    backoff.Strategy
}

// PublishNode assigns the host's application to the cluster.
func (t Seeder) PublishNode(ctx context.Context, app, cluster, hostname string) error {
	if err := segments("app", app, "cluster", cluster, "hostname", hostname); err != nil {
		return err
	}

	return t.publish(ctx, intent.NodeKey(hostname, app), intent.NodeRecord{Cluster: cluster})
}

// PublishVersions records the lifecycle label of each artifact version of the cluster.
func (t Seeder) PublishVersions(ctx context.Context, app, cluster string, versions intent.VersionMap) error {
	if err := segments("app", app, "cluster", cluster); err != nil {
		return err
	}

	if err := versions.Validate(); err != nil {
		return err
	}

	if versions == nil {
		versions = intent.VersionMap{}
	}

	return t.publish(ctx, intent.VersionsKey(app, cluster), versions)
}

// PublishDeployConfig records where the cluster's application lives and the
// ports it binds, in the order given.
func (t Seeder) PublishDeployConfig(ctx context.Context, app, cluster string, config intent.DeployConfig) error {
	if err := segments("app", app, "cluster", cluster); err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if config.Ports == nil {
		config.Ports = []int{}
	}

	return t.publish(ctx, intent.DeployConfigKey(app, cluster), config)
}

// Seed publishes every record of the plan in order. an invalid plan writes
// nothing. failures are collected and returned together unless the seeder
// aborts on the first one.
func (t Seeder) Seed(ctx context.Context, p Plan) error {
	var (
		result *multierror.Error
	)

	if err := p.Validate(); err != nil {
		return err
	}

	steps := []func() error{
		func() error { return t.PublishNode(ctx, p.App, p.Cluster, p.Hostname) },
		func() error { return t.PublishVersions(ctx, p.App, p.Cluster, p.Versions) },
		func() error { return t.PublishDeployConfig(ctx, p.App, p.Cluster, p.DeployConfig) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			result = multierror.Append(result, err)
			if t.abort {
				break
			}
		}
	}

	return result.ErrorOrNil()
}

func (t Seeder) publish(ctx context.Context, key string, value interface{}) (err error) {
	var (
		encoded json.RawMessage
	)

	if encoded, err = kv.Encode(key, value); err != nil {
		return errors.Wrapf(err, "failed to publish %s", key)
	}

	for attempt := 0; ; attempt++ {
		if err = t.store.Put(ctx, key, encoded); err == nil {
			log.Println("published", key)
			return nil
		}

		if attempt >= t.attempts || !kv.Retryable(err) {
			return errors.Wrapf(err, "failed to publish %s", key)
		}

		log.Println("publish failed, reattempting", key, attempt+1, err)
		if cause := backoff.Sleep(ctx, t.retry, attempt); cause != nil {
			return errors.Wrapf(err, "failed to publish %s: %v", key, cause)
		}
	}
}

func segments(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := intent.ValidateSegment(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}

	return nil
}
