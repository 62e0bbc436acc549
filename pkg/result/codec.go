package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"asyncmock/pkg/mockerr"
)

const (
	DefaultJSONExt = "json"
	DefaultYAMLExt = "yaml"
)

type decodeFunc func(data []byte, v any) error

// JSON decodes text into a T when the primitive is subscribed to.
func JSON[T any](text string) Thunk[T] {
	return decodeString[T](text, "JSON", json.Unmarshal)
}

// JSONFile decodes the named file from fsys. ext defaults to "json".
func JSONFile[T any](fsys fs.FS, name, ext string) Thunk[T] {
	if ext == "" {
		ext = DefaultJSONExt
	}
	return decodeFile[T](fsys, name, ext, json.Unmarshal)
}

// YAML decodes text into a T when the primitive is subscribed to.
func YAML[T any](text string) Thunk[T] {
	return decodeString[T](text, "YAML", yaml.Unmarshal)
}

// YAMLFile decodes the named file from fsys. ext defaults to "yaml".
func YAMLFile[T any](fsys fs.FS, name, ext string) Thunk[T] {
	if ext == "" {
		ext = DefaultYAMLExt
	}
	return decodeFile[T](fsys, name, ext, yaml.Unmarshal)
}

// ProtoJSON decodes protobuf JSON text into a new message from newMsg.
func ProtoJSON[M proto.Message](text string, newMsg func() M) Thunk[M] {
	return func() (M, error) {
		msg := newMsg()
		if !utf8.ValidString(text) {
			return msg, mockerr.InvalidData("protobuf JSON text is not valid UTF-8")
		}
		if err := protojson.Unmarshal([]byte(text), msg); err != nil {
			return msg, &mockerr.DecodingError{Expected: mockerr.TypeOf[M](), Source: text, HasSource: true, Err: err}
		}
		return msg, nil
	}
}

// ProtoJSONFile decodes the named protobuf JSON file from fsys. ext defaults to "json".
func ProtoJSONFile[M proto.Message](fsys fs.FS, name, ext string, newMsg func() M) Thunk[M] {
	if ext == "" {
		ext = DefaultJSONExt
	}
	return func() (M, error) {
		msg := newMsg()
		data, err := ReadResource(fsys, name, ext)
		if err != nil {
			return msg, err
		}
		if err := protojson.Unmarshal(data, msg); err != nil {
			return msg, &mockerr.DecodingError{Expected: mockerr.TypeOf[M](), Err: err}
		}
		return msg, nil
	}
}

func decodeString[T any](text, format string, decode decodeFunc) Thunk[T] {
	return func() (T, error) {
		var v T
		if !utf8.ValidString(text) {
			return v, mockerr.InvalidData(format + " text is not valid UTF-8")
		}
		if err := decode([]byte(text), &v); err != nil {
			return v, &mockerr.DecodingError{Expected: mockerr.TypeOf[T](), Source: text, HasSource: true, Err: err}
		}
		return v, nil
	}
}

func decodeFile[T any](fsys fs.FS, name, ext string, decode decodeFunc) Thunk[T] {
	return func() (T, error) {
		var v T
		data, err := ReadResource(fsys, name, ext)
		if err != nil {
			return v, err
		}
		if err := decode(data, &v); err != nil {
			return v, &mockerr.DecodingError{Expected: mockerr.TypeOf[T](), Err: err}
		}
		return v, nil
	}
}

// ReadResource reads name.ext from fsys, falling back to name as given.
// A missing resource yields an error matching mockerr.ErrDataNotFound.
func ReadResource(fsys fs.FS, name, ext string) ([]byte, error) {
	if fsys == nil {
		return nil, mockerr.DataNotFound(name)
	}

	candidates := []string{name}
	if ext != "" && !strings.EqualFold(path.Ext(name), "."+ext) {
		candidates = []string{name + "." + ext, name}
	}

	for _, candidate := range candidates {
		data, err := fs.ReadFile(fsys, candidate)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("failed to read resource %s: %w", candidate, err)
		}
	}
	return nil, mockerr.DataNotFound(name)
}
