package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes path into v. Keys v has no field for are logged
// and ignored.
func DecodeTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		return err
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Ignoring unknown key %s in %s", key, path)
	}
	return nil
}

// DecodeTOMLTables decodes path into untyped tables, for salvaging what it
// can when a typed decode has failed.
func DecodeTOMLTables(path string) (map[string]any, error) {
	tables := make(map[string]any)
	if _, err := toml.DecodeFile(path, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Lookup returns data[key] if it holds a T. TOML integers decode as int64
// and tables as map[string]any.
func Lookup[T any](data map[string]any, key string) (T, bool) {
	v, ok := data[key].(T)
	return v, ok
}
