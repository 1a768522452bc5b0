// Package intent describes the intended state of a node as recorded in the
// key value store, and reads it back for a single host.
package intent

import (
	"context"
	"encoding/json"
	"log"
	"path"
	"time"

	"github.com/pkg/errors"
)

// Reader the subset of the store used to assemble a node's intent.
type Reader interface {
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
}

// App the intended state for an application on a node.
type App struct {
	Name     string     `yaml:"name"`
	Cluster  string     `yaml:"cluster"`
	Basedir  string     `yaml:"basedir"`
	Ports    []int      `yaml:"ports,omitempty"`
	Versions VersionMap `yaml:"versions"`
}

// ActiveVersion an app may have many versions ready to go, but only zero or
// one will be active. returns an empty string when none are.
func (t App) ActiveVersion() string {
	for id, label := range t.Versions {
		if label == Active {
			return id
		}
	}

	return ""
}

// Node the intended state for a particular node.
type Node struct {
	Apps map[string]App `yaml:"apps"`
}

// Poll reads the intent of every application assigned to the host.
// malformed applications are logged and skipped; the only error is the store
// being unavailable for the initial listing.
func Poll(ctx context.Context, r Reader, hostname string) (n Node, err error) {
	var (
		apps map[string][]byte
	)

	log.Println("polling intent store", hostname)

	if apps, err = r.List(ctx, NodePrefix(hostname)); err != nil {
		return n, errors.Wrapf(err, "unable to list applications for %s", hostname)
	}

	n = Node{
		Apps: make(map[string]App, len(apps)),
	}

	for name, raw := range apps {
		var (
			app App
		)

		log.Println("checking intent for", name)

		if app, err = load(ctx, r, name, raw); err != nil {
			log.Println(err)
			continue
		}

		n.Apps[name] = app
	}

	return n, nil
}

// Watch polls the store on the given interval until the context is done,
// invoking the callback with each node intent read. store failures are
// logged and polling continues.
func Watch(ctx context.Context, r Reader, hostname string, every time.Duration, callback func(Node)) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if n, err := Poll(ctx, r, hostname); err != nil {
			log.Println(err)
		} else {
			callback(n)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func load(ctx context.Context, r Reader, name string, raw []byte) (app App, err error) {
	var (
		record NodeRecord
		found  bool
		dc     DeployConfig
		vm     VersionMap
	)

	if ValidateSegment("application", name) != nil {
		return app, errors.Errorf("invalid node data for %s", name)
	}

	if err = json.Unmarshal(raw, &record); err != nil {
		return app, errors.Errorf("invalid node data for %s: %v", name, err)
	}

	if record.Cluster == "" {
		return app, errors.Errorf("no cluster key in node data for %s", name)
	}

	if ValidateSegment("cluster", record.Cluster) != nil {
		return app, errors.Errorf("invalid node data for %s: cluster %q", name, record.Cluster)
	}

	versionsKey := VersionsKey(name, record.Cluster)
	if found, err = r.Get(ctx, versionsKey, &vm); err != nil || !found {
		return app, missing(versionsKey, err)
	}

	if err = vm.Validate(); err != nil {
		return app, missing(versionsKey, err)
	}

	configKey := DeployConfigKey(name, record.Cluster)
	if found, err = r.Get(ctx, configKey, &dc); err != nil || !found {
		return app, missing(configKey, err)
	}

	if !path.IsAbs(dc.Basedir) {
		return app, errors.Errorf("not allowing relative basedir in %s", configKey)
	}

	if err = dc.Validate(); err != nil {
		return app, missing(configKey, err)
	}

	return App{
		Name:     name,
		Cluster:  record.Cluster,
		Basedir:  dc.Basedir,
		Ports:    dc.Ports,
		Versions: vm,
	}, nil
}

func missing(key string, cause error) error {
	if cause == nil {
		return errors.Errorf("no or invalid data for %s: missing", key)
	}

	return errors.Errorf("no or invalid data for %s: %v", key, cause)
}
