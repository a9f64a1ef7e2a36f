package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks environment variables that set options, e.g. TRAINKIT_TEST_SIZE=0.2.
const EnvPrefix = "TRAINKIT_"

// Load layers the option sources: defaults, then the config file at path (if
// any), then TRAINKIT_* environment variables, then the flags of fs that were
// set explicitly. A key present in a later source replaces the whole value of
// an earlier one, lists and maps included. The result is validated.
func Load(path string, fs *pflag.FlagSet) (Train, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Train{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Train{}, fmt.Errorf("options: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Train{}, fmt.Errorf("options: env: %w", err)
	}
	if fs != nil {
		if err := k.Load(flagProvider{fs: fs}, nil); err != nil {
			return Train{}, fmt.Errorf("options: flags: %w", err)
		}
	}

	opts := Default()
	err := k.UnmarshalWithConf("", &opts, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &opts,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return Train{}, fmt.Errorf("options: decode: %w", err)
	}
	if err := Validate(opts); err != nil {
		return Train{}, err
	}
	return opts, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	// JSON is read by the YAML parser
	case ".yaml", ".yml", ".json":
		return yaml.Parser(), nil
	case ".toml":
		return tomlParser{}, nil
	}
	return nil, fmt.Errorf("options: unsupported config format %q", filepath.Ext(path))
}

type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return toml.Marshal(m)
}

// flagProvider exposes the explicitly set flags of a FlagSet to koanf.
type flagProvider struct{ fs *pflag.FlagSet }

func (p flagProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("flag provider does not support ReadBytes")
}

func (p flagProvider) Read() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	var err error
	p.fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		var v interface{}
		switch f.Value.Type() {
		case "stringSlice":
			v, err = p.fs.GetStringSlice(f.Name)
		case "stringToString":
			var m map[string]string
			m, err = p.fs.GetStringToString(f.Name)
			mm := make(map[string]interface{}, len(m))
			for key, val := range m {
				mm[key] = val
			}
			v = mm
		case "bool":
			v, err = p.fs.GetBool(f.Name)
		case "int":
			v, err = p.fs.GetInt(f.Name)
		case "int64":
			v, err = p.fs.GetInt64(f.Name)
		case "float64":
			v, err = p.fs.GetFloat64(f.Name)
		default:
			v = f.Value.String()
		}
		out[f.Name] = v
	})
	return out, err
}
