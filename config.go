package fbgenkeys

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var ErrInvalidGeneratedKeysConfig = errors.New("invalid generated_keys_enabled value")

type generatedKeysMode int

const (
	generatedKeysDefault generatedKeysMode = iota
	generatedKeysDisabled
	generatedKeysIgnored
	generatedKeysSelected
)

var statementKindNames = map[string]StatementKind{
	"insert":           StatementInsert,
	"update":           StatementUpdate,
	"update_or_insert": StatementUpdateOrInsert,
}

// GeneratedKeysConfig is the generated_keys_enabled connection setting:
// "default", "disabled", "ignored" or a comma separated list of
// insert, update and update_or_insert.
type GeneratedKeysConfig struct {
	mode  generatedKeysMode
	kinds []StatementKind
}

func ParseGeneratedKeysConfig(s string) (GeneratedKeysConfig, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default":
		return GeneratedKeysConfig{mode: generatedKeysDefault}, nil
	case "disabled":
		return GeneratedKeysConfig{mode: generatedKeysDisabled}, nil
	case "ignored":
		return GeneratedKeysConfig{mode: generatedKeysIgnored}, nil
	}

	c := GeneratedKeysConfig{mode: generatedKeysSelected}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		kind, ok := statementKindNames[name]
		if !ok {
			return GeneratedKeysConfig{}, errors.Wrapf(ErrInvalidGeneratedKeysConfig, "unknown statement type %q", name)
		}
		if !slices.Contains(c.kinds, kind) {
			c.kinds = append(c.kinds, kind)
		}
	}
	return c, nil
}

func (c GeneratedKeysConfig) enabled(kind StatementKind) bool {
	if kind == StatementOther {
		return false
	}
	if c.mode == generatedKeysSelected {
		return slices.Contains(c.kinds, kind)
	}
	return c.mode == generatedKeysDefault
}

func (c GeneratedKeysConfig) String() string {
	switch c.mode {
	case generatedKeysDisabled:
		return "disabled"
	case generatedKeysIgnored:
		return "ignored"
	case generatedKeysSelected:
		names := make([]string, 0, len(c.kinds))
		for name, kind := range statementKindNames {
			if slices.Contains(c.kinds, kind) {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		return strings.Join(names, ",")
	}
	return "default"
}

type Options struct {
	Logger        *slog.Logger
	GeneratedKeys GeneratedKeysConfig
}

type Option func(*Options)

func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func WithGeneratedKeysConfig(config GeneratedKeysConfig) Option {
	return func(opts *Options) {
		opts.GeneratedKeys = config
	}
}

func GetDefaultOptions() Options {
	return Options{
		Logger:        nilLogger(),
		GeneratedKeys: GeneratedKeysConfig{mode: generatedKeysDefault},
	}
}

func NewOptions(opts ...Option) Options {
	res := GetDefaultOptions()
	for _, opt := range opts {
		opt(&res)
	}
	if res.Logger == nil {
		res.Logger = nilLogger()
	}
	return res
}

func nilLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
