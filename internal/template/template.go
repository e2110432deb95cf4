// Package template ships the built-in task template packs. Packs are
// embedded as YAML and instantiated through the board store, which
// forces every templated task into the todo column.
package template

import (
	_ "embed"
	"fmt"

	"github.com/mtlprog/taskboard/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed packs.yaml
var packsYAML []byte

// PackTask is one task draft within a pack.
type PackTask struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Priority    string   `yaml:"priority" json:"priority"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Pack is a named set of task drafts for one role.
type Pack struct {
	Key         string     `yaml:"key" json:"key"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Tasks       []PackTask `yaml:"tasks" json:"tasks"`
}

// Drafts converts the pack's tasks into creation drafts. Status is
// left unset; the store forces todo for template batches.
func (p *Pack) Drafts() []domain.TaskDraft {
	drafts := make([]domain.TaskDraft, len(p.Tasks))
	for i, t := range p.Tasks {
		drafts[i] = domain.TaskDraft{
			Title:       t.Title,
			Description: t.Description,
			Priority:    domain.Priority(t.Priority),
			Tags:        t.Tags,
		}
	}
	return drafts
}

// Catalog holds the loaded packs in file order.
type Catalog struct {
	packs []Pack
	byKey map[string]int
}

// Load parses the embedded pack file.
func Load() (*Catalog, error) {
	var file struct {
		Packs []Pack `yaml:"packs"`
	}
	if err := yaml.Unmarshal(packsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse template packs: %w", err)
	}

	c := &Catalog{
		packs: file.Packs,
		byKey: make(map[string]int, len(file.Packs)),
	}
	for i, p := range file.Packs {
		c.byKey[p.Key] = i
	}
	return c, nil
}

// List returns all packs in file order.
func (c *Catalog) List() []Pack {
	out := make([]Pack, len(c.packs))
	copy(out, c.packs)
	return out
}

// Get returns the pack with the given key.
func (c *Catalog) Get(key string) (*Pack, error) {
	idx, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, key)
	}
	pack := c.packs[idx]
	return &pack, nil
}
