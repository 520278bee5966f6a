// Package project загружает конфигурацию проекта из htmlit.toml:
// список лидеров, пороги свёртки/сворачивания и лимиты проверки.
// Отсутствующий файл — не ошибка: берутся значения по умолчанию.
package project

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// LiteralsConfig — секция [literals].
type LiteralsConfig struct {
	Leaders            []string `toml:"leaders"`
	PlaceholderElement string   `toml:"placeholder_element"`
	MaxCollapsePasses  int      `toml:"max_collapse_passes"`
}

// FoldConfig — секция [fold].
type FoldConfig struct {
	MinLines int `toml:"min_lines"`
}

// CheckConfig — секция [check].
type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Cache          bool `toml:"cache"`
}

// Config — вся конфигурация проекта.
type Config struct {
	Literals LiteralsConfig `toml:"literals"`
	Fold     FoldConfig     `toml:"fold"`
	Check    CheckConfig    `toml:"check"`
}

// Default returns the configuration used when no manifest is present.
func Default() Config {
	return Config{
		Literals: LiteralsConfig{
			Leaders:            []string{"html", "dom"},
			PlaceholderElement: "div",
			MaxCollapsePasses:  20,
		},
		Fold: FoldConfig{
			MinLines: 2,
		},
		Check: CheckConfig{
			MaxDiagnostics: 256,
			Cache:          true,
		},
	}
}

var leaderIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsValidLeader проверяет, что имя лидера — валидный идентификатор.
func IsValidLeader(name string) bool {
	return leaderIdent.MatchString(name)
}

// Load parses htmlit.toml at path, filling omitted fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// пустой список в манифесте трактуем как "не задано"
	if meta.IsDefined("literals", "leaders") && len(cfg.Literals.Leaders) == 0 {
		cfg.Literals.Leaders = Default().Literals.Leaders
	}
	if err := validate(path, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromDir walks up from startDir looking for htmlit.toml; without a
// manifest it returns Default with ok=false.
func LoadFromDir(startDir string) (Config, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

func validate(path string, cfg Config) error {
	for _, leader := range cfg.Literals.Leaders {
		if !IsValidLeader(strings.TrimSpace(leader)) {
			return fmt.Errorf("%s: invalid leader name %q", path, leader)
		}
	}
	if cfg.Literals.MaxCollapsePasses < 1 {
		return fmt.Errorf("%s: literals.max_collapse_passes must be positive", path)
	}
	if cfg.Fold.MinLines < 1 {
		return fmt.Errorf("%s: fold.min_lines must be positive", path)
	}
	if cfg.Check.MaxDiagnostics < 1 {
		return fmt.Errorf("%s: check.max_diagnostics must be positive", path)
	}
	return nil
}
