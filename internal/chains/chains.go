// Package chains holds static metadata for the networks the dashboard knows.
package chains

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

// UnknownChainLabel names a chain id missing from the registry.
const UnknownChainLabel = "this network"

type Chain struct {
	ID           int    `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	ShortName    string `yaml:"short_name" json:"short_name"`
	NativeSymbol string `yaml:"native_symbol" json:"native_symbol"`
	ExplorerURL  string `yaml:"explorer_url" json:"explorer_url"`
}

type Registry struct {
	byID    map[int]Chain
	ordered []Chain
}

var (
	//go:embed chains.yaml
	chainsYAML []byte

	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry parsed from the embedded chains.yaml.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(chainsYAML)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("parse embedded chains.yaml: %w", defaultErr)
		}
	})
	return defaultRegistry, defaultErr
}

func Parse(data []byte) (*Registry, error) {
	var doc struct {
		Chains []Chain `yaml:"chains"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	r := &Registry{byID: make(map[int]Chain, len(doc.Chains))}
	for _, c := range doc.Chains {
		c.Name = strings.TrimSpace(c.Name)
		if c.ID <= 0 {
			return nil, fmt.Errorf("chain %q: id must be positive", c.Name)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("chain %d: name is required", c.ID)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("chain %d: duplicate id", c.ID)
		}
		r.byID[c.ID] = c
		r.ordered = append(r.ordered, c)
	}
	if len(r.ordered) == 0 {
		return nil, errors.New("no chains defined")
	}
	sort.SliceStable(r.ordered, func(i, j int) bool { return r.ordered[i].ID < r.ordered[j].ID })
	return r, nil
}

func (r *Registry) Lookup(id int) (Chain, bool) {
	if r == nil {
		return Chain{}, false
	}
	c, ok := r.byID[id]
	return c, ok
}

// DisplayName returns the chain's name, or UnknownChainLabel.
func (r *Registry) DisplayName(id int) string {
	if c, ok := r.Lookup(id); ok {
		return c.Name
	}
	return UnknownChainLabel
}

// All returns the known chains ordered by id.
func (r *Registry) All() []Chain {
	if r == nil {
		return nil
	}
	out := make([]Chain, len(r.ordered))
	copy(out, r.ordered)
	return out
}
