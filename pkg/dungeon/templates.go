package dungeon

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
	"rotten-soup/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// MonsterTemplate определяет шаблон для создания монстра
type MonsterTemplate struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Glyph    string `yaml:"glyph"`
	Color    string `yaml:"color"`
	Hostile  bool   `yaml:"hostile"`
	Aggro    int    `yaml:"aggro"`
	MinDepth int    `yaml:"minDepth"`
	Weight   int    `yaml:"weight"`

	glyph types.Glyph
}

// ItemTemplate - предмет из таблиц добычи
type ItemTemplate struct {
	Type     string `yaml:"type"`
	Glyph    string `yaml:"glyph"`
	Color    string `yaml:"color"`
	Category string `yaml:"category"`

	glyph    types.Glyph
	category enums.ItemCategory
}

// Catalog - все игровые данные: монстры, предметы и таблицы добычи.
type Catalog struct {
	Monsters []MonsterTemplate           `yaml:"monsters"`
	Items    map[string]*ItemTemplate    `yaml:"items"`
	Tables   map[string]domain.LootTable `yaml:"tables"`
}

// LoadCatalog читает встроенные data/monsters.yaml и data/loot.yaml.
func LoadCatalog() (*Catalog, error) {
	monsters, err := dataFS.ReadFile("data/monsters.yaml")
	if err != nil {
		return nil, fmt.Errorf("read monsters: %w", err)
	}
	loot, err := dataFS.ReadFile("data/loot.yaml")
	if err != nil {
		return nil, fmt.Errorf("read loot: %w", err)
	}
	return ParseCatalog(monsters, loot)
}

// ParseCatalog разбирает и проверяет каталоги.
func ParseCatalog(monstersYAML, lootYAML []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(monstersYAML, c); err != nil {
		return nil, fmt.Errorf("parse monsters: %w", err)
	}
	if err := yaml.Unmarshal(lootYAML, c); err != nil {
		return nil, fmt.Errorf("parse loot: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	for i := range c.Monsters {
		m := &c.Monsters[i]
		g, err := makeGlyph(m.Color, m.Glyph)
		if err != nil {
			return fmt.Errorf("monster %q: %w", m.Key, err)
		}
		m.glyph = g
		if m.Weight < 0 {
			return fmt.Errorf("monster %q: negative weight", m.Key)
		}
	}

	for key, it := range c.Items {
		if it == nil {
			return fmt.Errorf("item %q: empty definition", key)
		}
		g, err := makeGlyph(it.Color, it.Glyph)
		if err != nil {
			return fmt.Errorf("item %q: %w", key, err)
		}
		it.glyph = g
		it.category = enums.ParseItemCategory(it.Category)
		if it.Type == "" {
			return fmt.Errorf("item %q: type is required", key)
		}
	}

	for name, table := range c.Tables {
		if len(table) == 0 {
			return fmt.Errorf("loot table %q is empty", name)
		}
		for _, entry := range table {
			if _, ok := c.Items[entry.Type]; !ok {
				return fmt.Errorf("loot table %q: unknown item %q", name, entry.Type)
			}
			if entry.Weight <= 0 {
				return fmt.Errorf("loot table %q: item %q needs a positive weight", name, entry.Type)
			}
		}
	}
	return nil
}

// MonstersFor возвращает шаблоны, доступные на глубине depth.
func (c *Catalog) MonstersFor(depth int) []MonsterTemplate {
	out := make([]MonsterTemplate, 0, len(c.Monsters))
	for _, m := range c.Monsters {
		if m.MinDepth <= depth && m.Weight > 0 {
			out = append(out, m)
		}
	}
	return out
}

// TableNames - имена таблиц добычи по алфавиту
func (c *Catalog) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func makeGlyph(color, char string) (types.Glyph, error) {
	if len(char) != 1 {
		return types.Blank, fmt.Errorf("glyph %q must be a single ASCII character", char)
	}
	rgb, err := types.ParseHexColor(color)
	if err != nil {
		return types.Blank, err
	}
	return types.MakeGlyph(rgb, char[0]), nil
}
