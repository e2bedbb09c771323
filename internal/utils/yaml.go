package utils

import (
	"github.com/valyala/bytebufferpool"
	"gopkg.in/yaml.v3"
)

// yamlBuffers is reused across renders; bytebufferpool calibrates the
// buffer size from observed output lengths.
var yamlBuffers bytebufferpool.Pool

// MarshalYAML encodes v as YAML with two-space indentation, the layout used
// by hand-written routing configs.
func MarshalYAML(v any) ([]byte, error) {
	buf := yamlBuffers.Get()
	defer yamlBuffers.Put(buf)

	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	// buf is recycled on return.
	return append([]byte(nil), buf.B...), nil
}
