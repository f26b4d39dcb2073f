package benchmark

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tourney/pkg/aggregate"
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/pairing"
)

var validate = validator.New()

// Config describes one benchmark.
type Config struct {
	Name         string   `toml:"name" yaml:"name" json:"name"`
	Items        int      `toml:"items" yaml:"items" json:"items" validate:"min=2"`
	Budget       int      `toml:"budget" yaml:"budget" json:"budget" validate:"min=1"`
	Rematch      int      `toml:"rematch" yaml:"rematch" json:"rematch" validate:"min=1"`
	P            float64  `toml:"p" yaml:"p" json:"p" validate:"gte=0,lte=1"`
	Trials       int      `toml:"trials" yaml:"trials" json:"trials" validate:"min=1"`
	Workers      int      `toml:"workers" yaml:"workers" json:"workers" validate:"min=1"`
	Seed         uint64   `toml:"seed" yaml:"seed" json:"seed"`
	TopFraction  float64  `toml:"top_fraction" yaml:"top_fraction" json:"top_fraction" validate:"gt=0,lte=1"`
	BTIterations int      `toml:"bt_iterations" yaml:"bt_iterations" json:"bt_iterations" validate:"min=1"`
	Annotators   int      `toml:"annotators" yaml:"annotators" json:"annotators" validate:"min=0"`
	Strategies   []string `toml:"strategies" yaml:"strategies" json:"strategies" validate:"min=1,dive,required"`
	Aggregators  []string `toml:"aggregators" yaml:"aggregators" json:"aggregators" validate:"min=1,dive,required"`
}

// Default returns a configuration with every optional field set.
func Default() Config {
	strategies := make([]string, 0, len(pairing.Kinds()))
	for _, k := range pairing.Kinds() {
		strategies = append(strategies, string(k))
	}
	aggregators := make([]string, 0, len(aggregate.Kinds()))
	for _, k := range aggregate.Kinds() {
		aggregators = append(aggregators, string(k))
	}
	return Config{
		Items:        20,
		Budget:       200,
		Rematch:      1,
		P:            0.9,
		Trials:       10,
		Workers:      runtime.GOMAXPROCS(0),
		Seed:         42,
		TopFraction:  0.1,
		BTIterations: aggregate.DefaultIterations,
		Strategies:   strategies,
		Aggregators:  aggregators,
	}
}

// Load reads a configuration file. The format follows the extension:
// .toml, .yaml or .yml. Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration in the given format
// ("toml", "yaml" or "yml", with or without a leading dot).
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	// Lists replace the defaults rather than merging into them.
	cfg.Strategies, cfg.Aggregators = nil, nil

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}

	def := Default()
	if cfg.Strategies == nil {
		cfg.Strategies = def.Strategies
	}
	if cfg.Aggregators == nil {
		cfg.Aggregators = def.Aggregators
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the relations between fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid benchmark config")
	}
	for _, s := range c.Strategies {
		if !slices.Contains(pairing.Kinds(), pairing.Kind(s)) {
			return errors.New(errors.ErrCodeUnknownStrategy, "unknown strategy %q", s)
		}
	}
	for _, a := range c.Aggregators {
		if !slices.Contains(aggregate.Kinds(), aggregate.Kind(a)) {
			return errors.New(errors.ErrCodeUnknownAggregator, "unknown aggregator %q", a)
		}
	}
	if slices.Contains(c.Aggregators, string(aggregate.KindCrowdBT)) &&
		!slices.Contains(c.Strategies, string(pairing.KindCrowdBT)) {
		return errors.New(errors.ErrCodeInvalidConfig, "crowd-bt aggregation needs the crowd-bt strategy")
	}
	if int(float64(c.Items)*c.TopFraction) < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"top_fraction %.3f of %d items selects no items", c.TopFraction, c.Items)
	}
	return nil
}

// normalized drops fields that do not affect results and removes duplicate
// names, giving the identity used for caching.
func (c Config) normalized() Config {
	c.Name = ""
	c.Workers = 0
	c.Strategies = dedupe(c.Strategies)
	c.Aggregators = dedupe(c.Aggregators)
	return c
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
