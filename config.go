package pp

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ExpandAndDecodeFile decodes the yaml file at the specified path after expanding
// environment variables. a missing file is not an error.
func ExpandAndDecodeFile(path string, dst interface{}) (err error) {
	return ExpandEnvironAndDecodeFile(path, dst, os.Getenv)
}

// ExpandEnvironAndDecodeFile decodes the yaml file at the specified path after expanding
// variables using the provided mapping. a missing file is not an error.
func ExpandEnvironAndDecodeFile(path string, dst interface{}, mapping func(string) string) (err error) {
	var (
		raw []byte
	)

	if path == "" {
		return nil
	}

	if _, err = os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if raw, err = os.ReadFile(path); err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(ExpandEnvironAndDecode(raw, dst, mapping), "unable to decode %s", path)
}

// ExpandEnvironAndDecode expands variables within raw using the mapping and
// then decodes it as yaml.
func ExpandEnvironAndDecode(raw []byte, dst interface{}, mapping func(string) string) (err error) {
	return yaml.Unmarshal([]byte(os.Expand(string(raw), mapping)), dst)
}

// Environ builds a variable mapping from the process environment layered over the
// provided dotenv files; the process environment wins.
func Environ(paths ...string) (mapping func(string) string, err error) {
	var (
		vars map[string]string
	)

	if len(paths) == 0 {
		return os.Getenv, nil
	}

	if vars, err = godotenv.Read(paths...); err != nil {
		return nil, errors.Wrap(err, "unable to read environment files")
	}

	return func(k string) string {
		if v, ok := os.LookupEnv(k); ok {
			return v
		}

		return vars[k]
	}, nil
}
