package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SourceKindFile  = "file"
	SourceKindMongo = "mongo"
)

type sourceEnv struct {
	Kind          string        `env:"SOURCE_KIND" envDefault:"file"`
	Path          string        `env:"SOURCE_PATH" envDefault:"data/Spare_Parts_Inventory.xlsx"`
	Sheet         string        `env:"SOURCE_SHEET" envDefault:"Inventory"`
	StableIDs     bool          `env:"SOURCE_STABLE_IDS" envDefault:"false"`
	Watch         bool          `env:"SOURCE_WATCH" envDefault:"true"`
	WatchDebounce time.Duration `env:"SOURCE_WATCH_DEBOUNCE" envDefault:"500ms"`
}

type source struct {
	raw sourceEnv
}

func NewSourceConfig() (*source, error) {
	var raw sourceEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Kind {
	case SourceKindFile, SourceKindMongo:
	default:
		return nil, fmt.Errorf("unknown SOURCE_KIND %q", raw.Kind)
	}
	return &source{raw: raw}, nil
}

func (cfg *source) Kind() string                 { return cfg.raw.Kind }
func (cfg *source) Path() string                 { return cfg.raw.Path }
func (cfg *source) Sheet() string                { return cfg.raw.Sheet }
func (cfg *source) StableIDs() bool              { return cfg.raw.StableIDs }
func (cfg *source) Watch() bool                  { return cfg.raw.Watch && cfg.raw.Kind == SourceKindFile }
func (cfg *source) WatchDebounce() time.Duration { return cfg.raw.WatchDebounce }
