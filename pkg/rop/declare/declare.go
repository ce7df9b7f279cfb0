package declare

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ib-77/chainer/pkg/rop/chain"
	"gopkg.in/yaml.v3"
)

// Chain is one declared chain: a name and its ordered step ids.
type Chain struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Steps       []string `yaml:"steps" json:"steps"`
}

// File is the layout of a chains.yaml (or chains.json) file.
type File struct {
	Chains []Chain `yaml:"chains" json:"chains"`
}

// Load reads a declaration file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func Load(path string) ([]Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	return Parse(data, format)
}

func Parse(data []byte, format string) ([]Chain, error) {
	var f File
	switch format {
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse chains json: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse chains yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported chains format %q", format)
	}

	if err := Validate(f.Chains); err != nil {
		return nil, err
	}
	return f.Chains, nil
}

// Validate checks names are present and unique and that every chain
// declares at least one step. All problems are reported together.
func Validate(chains []Chain) error {
	var errs []error
	seen := make(map[string]bool, len(chains))

	for i, c := range chains {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("chain #%d: missing name", i+1))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("chain %s: declared twice", c.Name))
		}
		seen[c.Name] = true
		if len(c.Steps) == 0 {
			errs = append(errs, fmt.Errorf("chain %s: %w", c.Name, chain.ErrNoSteps))
		}
	}
	return errors.Join(errs...)
}

// Check reports every declared step that registry cannot resolve.
func Check[C any](chains []Chain, registry chain.Registry[C]) error {
	var errs []error
	for _, c := range chains {
		for _, id := range c.Steps {
			if _, ok := registry.Resolve(id); !ok {
				errs = append(errs, fmt.Errorf("chain %s: step %s %w", c.Name, id, chain.ErrNotRegistered))
			}
		}
	}
	return errors.Join(errs...)
}

// Bind builds one Service per declared chain, keyed by chain name. Step ids
// are resolved lazily by each Service on its first run.
func Bind[C chain.Clonable[C]](chains []Chain, registry chain.Registry[C],
	opts ...chain.Option[C]) map[string]*chain.Service[C] {

	services := make(map[string]*chain.Service[C], len(chains))
	for _, c := range chains {
		o := append([]chain.Option[C]{chain.WithName[C](c.Name)}, opts...)
		services[c.Name] = chain.NewService[C](registry, c.Steps, o...)
	}
	return services
}
