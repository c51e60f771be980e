package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/mgmeyers/pdfannotator/recents"
	"github.com/pkg/errors"
)

type RecentsConfig struct {
	Path string `toml:"path"`
	Key  string `toml:"key"`
}

type Config struct {
	Editor  editor.Config         `toml:"editor"`
	Export  pdfutils.ExportConfig `toml:"export"`
	Recents RecentsConfig         `toml:"recents"`
}

func defaultRecentsPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pdfannotator", "recents")
}

func DefaultConfig() Config {
	return Config{
		Editor: editor.DefaultConfig(),
		Export: pdfutils.DefaultExportConfig(),
		Recents: RecentsConfig{
			Path: defaultRecentsPath(),
			Key:  recents.DefaultKey,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path yields the
// defaults. Keys the config does not know are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Editor.Validate(); err != nil {
		return errors.Wrap(err, "editor")
	}
	if err := c.Export.Validate(); err != nil {
		return errors.Wrap(err, "export")
	}
	if c.Recents.Path == "" {
		return errors.New("recents: path must be set")
	}
	return nil
}
