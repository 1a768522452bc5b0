package intent

import (
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/platypus-platform/pp/internal/errorsx"
)

// ErrInvalid returned when a record or key segment fails validation.
const ErrInvalid = errorsx.String("invalid intent")

// Label lifecycle state of an artifact version within a cluster.
type Label string

// lifecycle labels.
const (
	Prep   Label = "prep"
	Active Label = "active"
)

// Valid reports if the label is a known lifecycle state.
func (t Label) Valid() bool {
	switch t {
	case Prep, Active:
		return true
	default:
		return false
	}
}

// NodeRecord assigns a host's application to a cluster.
type NodeRecord struct {
	Cluster string `json:"cluster" yaml:"cluster"`
}

// VersionMap maps artifact content hashes to their lifecycle label.
type VersionMap map[string]Label

// Validate the labels; at most one version is active.
func (t VersionMap) Validate() error {
	active := ""
	for id, label := range t {
		if strings.TrimSpace(id) == "" {
			return errors.Wrap(ErrInvalid, "blank version identifier")
		}

		if !label.Valid() {
			return errors.Wrapf(ErrInvalid, "version %s has unknown label %q", id, label)
		}

		if label != Active {
			continue
		}

		if active != "" {
			return errors.Wrapf(ErrInvalid, "versions %s and %s are both active", active, id)
		}

		active = id
	}

	return nil
}

// DeployConfig privileged runtime configuration of an application.
// it determines where on disk the application lives, so only operators
// should be able to change it.
type DeployConfig struct {
	Basedir string `json:"basedir" yaml:"basedir"`
	Ports   []int  `json:"ports" yaml:"ports"`
}

// Validate requires an absolute basedir and ports within the tcp range.
func (t DeployConfig) Validate() error {
	if !path.IsAbs(t.Basedir) {
		return errors.Wrapf(ErrInvalid, "basedir %q is not absolute", t.Basedir)
	}

	for _, p := range t.Ports {
		if p < 1 || p > 65535 {
			return errors.Wrapf(ErrInvalid, "port %d is out of range", p)
		}
	}

	return nil
}

// ValidateSegment ensures a value can be used as a single segment of a key.
func ValidateSegment(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Wrapf(ErrInvalid, "%s is blank", name)
	}

	if strings.TrimSpace(value) != value {
		return errors.Wrapf(ErrInvalid, "%s %q has surrounding whitespace", name, value)
	}

	if strings.Contains(value, "/") || value == "." || value == ".." {
		return errors.Wrapf(ErrInvalid, "%s %q is not a valid key segment", name, value)
	}

	return nil
}

// NodePrefix the prefix holding every application assigned to the host.
func NodePrefix(hostname string) string {
	return path.Join("nodes", hostname)
}

// NodeKey the key of the application's node record on the host.
func NodeKey(hostname, app string) string {
	return path.Join(NodePrefix(hostname), app)
}

// ClusterPrefix the prefix holding the records of the application's cluster.
func ClusterPrefix(app, cluster string) string {
	return path.Join("clusters", app, cluster)
}

// VersionsKey the key of the cluster's version map.
func VersionsKey(app, cluster string) string {
	return path.Join(ClusterPrefix(app, cluster), "versions")
}

// DeployConfigKey the key of the cluster's deploy configuration.
func DeployConfigKey(app, cluster string) string {
	return path.Join(ClusterPrefix(app, cluster), "deploy_config")
}
