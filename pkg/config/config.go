// Package config loads dirsum's layered configuration: embedded
// defaults first, then any user config file, then DIRSUM_* environment
// variables. Later layers override earlier ones.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/logging"
	"github.com/arthur-debert/dirsum/pkg/paths"
)

// EnvPrefix marks the environment variables that override
// configuration keys: DIRSUM_SCAN_ALGORITHM, DIRSUM_OUTPUT_FORMAT...
const EnvPrefix = "DIRSUM_"

// Settings is the merged configuration.
type Settings struct {
	Scan   ScanSettings   `koanf:"scan" toml:"scan"`
	Output OutputSettings `koanf:"output" toml:"output"`
}

// ScanSettings holds the hashing defaults applied when the matching
// command-line flag is not given.
type ScanSettings struct {
	Algorithm   string   `koanf:"algorithm" toml:"algorithm"`
	BlockSize   int      `koanf:"block_size" toml:"block_size"`
	Jobs        int      `koanf:"jobs" toml:"jobs"`
	KeepGoing   bool     `koanf:"keep_going" toml:"keep_going"`
	SkipSpecial bool     `koanf:"skip_special" toml:"skip_special"`
	TrustMTime  bool     `koanf:"trust_mtime" toml:"trust_mtime"`
	Exclude     []string `koanf:"exclude" toml:"exclude"`
}

// BlockSizeBytes converts the configured KiB chunk size to bytes.
func (s ScanSettings) BlockSizeBytes() int {
	return s.BlockSize * 1024
}

// OutputSettings holds rendering defaults.
type OutputSettings struct {
	Format   string `koanf:"format" toml:"format"`
	Progress bool   `koanf:"progress" toml:"progress"`
}

// Load builds Settings from the embedded defaults, the config file
// candidates that exist, and the environment.
func Load() (*Settings, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "loading embedded defaults")
	}

	for _, path := range paths.ConfigFileCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment overrides")
	}

	var s Settings
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling configuration")
	}
	return &s, nil
}

// envKey maps DIRSUM_SCAN_BLOCK_SIZE to scan.block_size. Only the
// first underscore separates the section from the key; later ones
// belong to the key itself.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}
