// Package catalog provides the read-only reference data (creatures, moves and
// the type chart) consumed by the battle engine.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ericogr/creature-battles/internal/game"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var (
	ErrCreatureNotFound = errors.New("creature not found")
	ErrMoveNotFound     = errors.New("move not found")
	ErrUnknownType      = errors.New("unknown type")
)

type creatureEntry struct {
	ID       int            `yaml:"id"`
	Name     string         `yaml:"name"`
	Types    []string       `yaml:"types"`
	Base     game.StatBlock `yaml:"base"`
	Learnset []int          `yaml:"learnset"`
}

type moveEntry struct {
	ID       int             `yaml:"id"`
	Name     string          `yaml:"name"`
	Type     string          `yaml:"type"`
	Category string          `yaml:"category"`
	Power    int             `yaml:"power"`
	Accuracy int             `yaml:"accuracy"`
	Priority int             `yaml:"priority"`
	Effect   game.MoveEffect `yaml:"effect"`
}

type rawCatalog struct {
	Types     []string                      `yaml:"types"`
	TypeChart map[string]map[string]float64 `yaml:"type_chart"`
	Moves     []moveEntry                   `yaml:"moves"`
	Creatures []creatureEntry               `yaml:"creatures"`
}

// Catalog is an immutable in-memory reference catalog. It is safe for
// concurrent reads.
type Catalog struct {
	types     map[string]struct{}
	chart     map[string]map[string]float64
	creatures map[int]game.Creature
	moves     map[int]game.Move
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML, "embedded default catalog")
}

// Load reads a YAML catalog from path. An empty path loads the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(b, path)
}

// Parse decodes and validates YAML catalog data. source is only used in
// error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}
	if len(rc.Types) == 0 {
		return nil, fmt.Errorf("catalog %s: types is empty", source)
	}

	c := &Catalog{
		types:     make(map[string]struct{}, len(rc.Types)),
		chart:     make(map[string]map[string]float64, len(rc.TypeChart)),
		creatures: make(map[int]game.Creature, len(rc.Creatures)),
		moves:     make(map[int]game.Move, len(rc.Moves)),
	}
	for _, t := range rc.Types {
		c.types[normalizeType(t)] = struct{}{}
	}

	for atk, row := range rc.TypeChart {
		a := normalizeType(atk)
		if _, ok := c.types[a]; !ok {
			return nil, fmt.Errorf("catalog %s: type_chart references unknown attacking type '%s'", source, atk)
		}
		m := make(map[string]float64, len(row))
		for def, mult := range row {
			d := normalizeType(def)
			if _, ok := c.types[d]; !ok {
				return nil, fmt.Errorf("catalog %s: type_chart[%s] references unknown defending type '%s'", source, atk, def)
			}
			if !legalPairMultiplier(mult) {
				return nil, fmt.Errorf("catalog %s: type_chart[%s][%s] has illegal multiplier %v", source, atk, def, mult)
			}
			m[d] = mult
		}
		c.chart[a] = m
	}

	for _, me := range rc.Moves {
		mv, err := c.buildMove(me)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", source, err)
		}
		if _, exists := c.moves[mv.ID]; exists {
			return nil, fmt.Errorf("catalog %s: duplicate move id %d", source, mv.ID)
		}
		c.moves[mv.ID] = mv
	}

	for _, ce := range rc.Creatures {
		cr, err := c.buildCreature(ce)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", source, err)
		}
		if _, exists := c.creatures[cr.ID]; exists {
			return nil, fmt.Errorf("catalog %s: duplicate creature id %d", source, cr.ID)
		}
		c.creatures[cr.ID] = cr
	}
	if len(c.creatures) == 0 {
		return nil, fmt.Errorf("catalog %s: creatures is empty", source)
	}
	return c, nil
}

func (c *Catalog) buildMove(me moveEntry) (game.Move, error) {
	if me.ID <= 0 {
		return game.Move{}, fmt.Errorf("move '%s' has non-positive id %d", me.Name, me.ID)
	}
	if strings.TrimSpace(me.Name) == "" {
		return game.Move{}, fmt.Errorf("move %d missing 'name'", me.ID)
	}
	t := normalizeType(me.Type)
	if _, ok := c.types[t]; !ok {
		return game.Move{}, fmt.Errorf("move '%s' has unknown type '%s'", me.Name, me.Type)
	}
	cat := game.MoveCategory(strings.ToLower(strings.TrimSpace(me.Category)))
	if !cat.Valid() {
		return game.Move{}, fmt.Errorf("move '%s' has unknown category '%s'", me.Name, me.Category)
	}
	if me.Power < 0 {
		return game.Move{}, fmt.Errorf("move '%s' has negative power", me.Name)
	}
	if cat != game.CategoryStatus && me.Power == 0 {
		return game.Move{}, fmt.Errorf("move '%s' is %s but has no power", me.Name, cat)
	}
	if me.Accuracy < 0 || me.Accuracy > 100 {
		return game.Move{}, fmt.Errorf("move '%s' accuracy %d out of range 0..100", me.Name, me.Accuracy)
	}
	eff := me.Effect
	if !eff.Status.Valid() {
		return game.Move{}, fmt.Errorf("move '%s' has unknown status '%s'", me.Name, eff.Status)
	}
	for name, pct := range map[string]int{"status_chance": eff.StatusChance, "heal_percent": eff.HealPercent, "recoil_percent": eff.RecoilPercent} {
		if pct < 0 || pct > 100 {
			return game.Move{}, fmt.Errorf("move '%s' %s %d out of range 0..100", me.Name, name, pct)
		}
	}
	return game.Move{
		ID:       me.ID,
		Name:     DisplayName(me.Name),
		Type:     t,
		Category: cat,
		Power:    me.Power,
		Accuracy: me.Accuracy,
		Priority: me.Priority,
		Effect:   eff,
	}, nil
}

func (c *Catalog) buildCreature(ce creatureEntry) (game.Creature, error) {
	if ce.ID <= 0 {
		return game.Creature{}, fmt.Errorf("creature '%s' has non-positive id %d", ce.Name, ce.ID)
	}
	if strings.TrimSpace(ce.Name) == "" {
		return game.Creature{}, fmt.Errorf("creature %d missing 'name'", ce.ID)
	}
	if len(ce.Types) < 1 || len(ce.Types) > 2 {
		return game.Creature{}, fmt.Errorf("creature '%s' must have one or two types", ce.Name)
	}
	types := make([]string, 0, len(ce.Types))
	for _, t := range ce.Types {
		nt := normalizeType(t)
		if _, ok := c.types[nt]; !ok {
			return game.Creature{}, fmt.Errorf("creature '%s' has unknown type '%s'", ce.Name, t)
		}
		types = append(types, nt)
	}
	b := ce.Base
	if b.HP <= 0 || b.Attack <= 0 || b.Defense <= 0 || b.SpecialAttack <= 0 || b.SpecialDefense <= 0 || b.Speed <= 0 {
		return game.Creature{}, fmt.Errorf("creature '%s' base stats must be positive", ce.Name)
	}
	for _, id := range ce.Learnset {
		if _, ok := c.moves[id]; !ok {
			return game.Creature{}, fmt.Errorf("creature '%s' learnset references unknown move %d", ce.Name, id)
		}
	}
	return game.Creature{
		ID:       ce.ID,
		Name:     DisplayName(ce.Name),
		Base:     b,
		Types:    types,
		Learnset: append([]int(nil), ce.Learnset...),
	}, nil
}

// Creature returns the creature template with the given id.
func (c *Catalog) Creature(id int) (game.Creature, error) {
	cr, ok := c.creatures[id]
	if !ok {
		return game.Creature{}, fmt.Errorf("%w: %d", ErrCreatureNotFound, id)
	}
	cr.Types = append([]string(nil), cr.Types...)
	cr.Learnset = append([]int(nil), cr.Learnset...)
	return cr, nil
}

// Move returns the move with the given id.
func (c *Catalog) Move(id int) (game.Move, error) {
	mv, ok := c.moves[id]
	if !ok {
		return game.Move{}, fmt.Errorf("%w: %d", ErrMoveNotFound, id)
	}
	return mv, nil
}

// TypeEffectiveness multiplies the chart entries of attackType against each
// defending type. Missing chart entries count as neutral.
func (c *Catalog) TypeEffectiveness(attackType string, defendTypes []string) (float64, error) {
	a := normalizeType(attackType)
	if _, ok := c.types[a]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownType, attackType)
	}
	mult := 1.0
	for _, dt := range defendTypes {
		d := normalizeType(dt)
		if _, ok := c.types[d]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownType, dt)
		}
		if m, ok := c.chart[a][d]; ok {
			mult *= m
		}
	}
	return mult, nil
}

// Creatures returns all creatures ordered by id.
func (c *Catalog) Creatures() []game.Creature {
	out := make([]game.Creature, 0, len(c.creatures))
	for _, cr := range c.creatures {
		out = append(out, cr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Moves returns all moves ordered by id.
func (c *Catalog) Moves() []game.Move {
	out := make([]game.Move, 0, len(c.moves))
	for _, mv := range c.moves {
		out = append(out, mv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DisplayName turns a catalog slug such as "quick-attack" into "Quick Attack".
// A Caser is stateful, so one is built per call.
func DisplayName(slug string) string {
	s := strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
	return cases.Title(language.English).String(s)
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func legalPairMultiplier(m float64) bool {
	return m == 0 || m == 0.5 || m == 1 || m == 2
}
