package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"halma/engine"
	"halma/game"
	"halma/player"
	"halma/searcher"
)

var (
	cfgFile = "halma/config.yaml"
)

// Player kinds.
const (
	KindBot    = "bot"
	KindRandom = "random"
	KindRemote = "remote"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// Bot configures one side.
type Bot struct {
	Name           string           `yaml:"name"`
	Kind           string           `yaml:"kind"`
	URL            string           `yaml:"url,omitempty"`
	Depth          int              `yaml:"depth"`
	Pruning        bool             `yaml:"pruning"`
	Ordering       bool             `yaml:"ordering"`
	Transpositions bool             `yaml:"transpositions"`
	AdaptiveDepth  bool             `yaml:"adaptive_depth"`
	MaxMoves       int              `yaml:"max_moves"`
	Weights        searcher.Weights `yaml:"weights"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	SideA          Bot    `yaml:"side_a"`
	SideB          Bot    `yaml:"side_b"`
	StartingLayout string `yaml:"starting_layout"`
	MaxTurns       int    `yaml:"max_turns"`
	Server         Server `yaml:"server"`
}

// DefaultBot mirrors searcher.DefaultConfig.
func DefaultBot(name string) Bot {
	c := searcher.DefaultConfig()
	return Bot{
		Name:           name,
		Kind:           KindBot,
		Depth:          c.Depth,
		Pruning:        c.Pruning,
		Ordering:       c.Ordering,
		Transpositions: c.Transpositions,
		AdaptiveDepth:  c.AdaptiveDepth,
		MaxMoves:       c.MaxMoves,
		Weights:        c.Weights,
	}
}

func DefaultConfig() Config {
	return Config{
		SideA:          DefaultBot("bot-a"),
		SideB:          DefaultBot("bot-b"),
		StartingLayout: game.StartLayout,
		MaxTurns:       engine.DefaultMaxTurns,
		Server:         Server{Addr: ":8080"},
	}
}

// InitConfig reads the configuration file from the XDG config directories,
// falling back to the defaults when there is none.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig()
		return &config, nil
	}
	return Load(absPath)
}

// Load reads a configuration file. Fields it does not set keep their
// defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.MaxTurns < 1 {
		return &InvalidConfig{"max_turns must be positive"}
	}
	if _, err := game.LoadLayout(c.StartingLayout); err != nil {
		return &InvalidConfig{err.Error()}
	}
	for side, b := range map[string]Bot{"side_a": c.SideA, "side_b": c.SideB} {
		if err := b.Validate(); err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %s", side, err.(*InvalidConfig).err)}
		}
	}
	return nil
}

func (b Bot) Validate() error {
	switch b.Kind {
	case KindBot, KindRandom:
	case KindRemote:
		if b.URL == "" {
			return &InvalidConfig{"remote players need a url"}
		}
	default:
		return &InvalidConfig{fmt.Sprintf("unknown kind %q", b.Kind)}
	}
	if b.Depth < 0 || b.Depth > searcher.MaxDepth {
		return &InvalidConfig{fmt.Sprintf("depth must be between 0 and %d", searcher.MaxDepth)}
	}
	if b.Kind == KindBot && b.Depth == 0 {
		return &InvalidConfig{"a bot needs a depth of at least 1 to pick moves"}
	}
	if b.MaxMoves < 1 {
		return &InvalidConfig{"max_moves must be positive"}
	}
	return nil
}

// Save writes the configuration to the user's XDG config directory.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return absPath, os.WriteFile(absPath, data, 0664)
}

// Search converts the bot settings into a searcher configuration.
func (b Bot) Search() searcher.Config {
	return searcher.Config{
		Pruning:        b.Pruning,
		Ordering:       b.Ordering,
		Transpositions: b.Transpositions,
		AdaptiveDepth:  b.AdaptiveDepth,
		Depth:          b.Depth,
		MaxMoves:       b.MaxMoves,
		Weights:        b.Weights,
	}
}

// NewPlayer builds the player the settings describe.
func (b Bot) NewPlayer() player.Player {
	switch b.Kind {
	case KindRandom:
		return player.NewRandomPlayer(b.Name)
	case KindRemote:
		return player.NewRemote(b.Name, b.URL)
	default:
		return player.NewBot(b.Name, searcher.WithConfig(b.Search()))
	}
}
