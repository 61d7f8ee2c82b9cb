package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog maps card name to its definition. It is immutable once a match
// has been created from it.
type Catalog map[string]CardDef

// Get returns the definition for name.
func (c Catalog) Get(name string) (CardDef, bool) {
	def, ok := c[name]
	return def, ok
}

// BaseCatalog returns the standard 10-card set.
func BaseCatalog() Catalog {
	cat := Catalog{}
	add := func(name string, cost int, typ CardType, effect CardEffect, desc string) {
		cat[name] = CardDef{Name: name, Cost: cost, Type: typ, Effect: effect, Description: desc}
	}

	// Treasure
	add("Copper", 0, TypeTreasure, CardEffect{Coins: 1}, "+1 Coin")
	add("Silver", 3, TypeTreasure, CardEffect{Coins: 2}, "+2 Coins")
	add("Gold", 6, TypeTreasure, CardEffect{Coins: 3}, "+3 Coins")

	// Victory
	add("Estate", 2, TypeVictory, CardEffect{VP: 1}, "1 VP")
	add("Duchy", 5, TypeVictory, CardEffect{VP: 3}, "3 VP")
	add("Province", 8, TypeVictory, CardEffect{VP: 6}, "6 VP")

	// Action
	add("Village", 3, TypeAction, CardEffect{Cards: 1, Actions: 2}, "+1 Card, +2 Actions")
	add("Smithy", 4, TypeAction, CardEffect{Cards: 3}, "+3 Cards")
	add("Market", 5, TypeAction, CardEffect{Cards: 1, Actions: 1, Buys: 1, Coins: 1},
		"+1 Card, +1 Action, +1 Buy, +1 Coin")
	add("Spy", 4, TypeAction, CardEffect{Cards: 1, Actions: 1, Special: SpecialSpy},
		"+1 Card, +1 Action; Each player reveals top card, you choose discard or keep")

	return cat
}

// catalogFile is the YAML structure accepted by LoadCatalog.
type catalogFile struct {
	Cards []cardEntry `yaml:"cards"`
}

type cardEntry struct {
	Name        string      `yaml:"name"`
	Cost        int         `yaml:"cost"`
	Type        string      `yaml:"type"`
	Effect      effectEntry `yaml:"effect"`
	Description string      `yaml:"description"`
}

type effectEntry struct {
	Cards   int    `yaml:"cards"`
	Actions int    `yaml:"actions"`
	Buys    int    `yaml:"buys"`
	Coins   int    `yaml:"coins"`
	VP      int    `yaml:"vp"`
	Special string `yaml:"special"`
}

// LoadCatalog reads a card catalog from a YAML file. The catalog must be a
// valid replacement for the base set: every card well-formed, and the cards
// the engine depends on (starting decks, end-game trigger) present.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cat := Catalog{}
	for _, entry := range cf.Cards {
		def, err := entry.toDef()
		if err != nil {
			return nil, err
		}
		if _, dup := cat[def.Name]; dup {
			return nil, fmt.Errorf("card %q: duplicate definition", def.Name)
		}
		cat[def.Name] = def
	}

	for _, required := range []string{"Copper", "Estate", "Province"} {
		if _, ok := cat[required]; !ok {
			return nil, fmt.Errorf("catalog is missing required card %q", required)
		}
	}

	return cat, nil
}

func (e cardEntry) toDef() (CardDef, error) {
	if e.Name == "" {
		return CardDef{}, fmt.Errorf("card with empty name")
	}
	if e.Cost < 0 {
		return CardDef{}, fmt.Errorf("card %q: negative cost %d", e.Name, e.Cost)
	}

	typ := CardType(e.Type)
	switch typ {
	case TypeTreasure, TypeVictory, TypeAction:
	default:
		return CardDef{}, fmt.Errorf("card %q: unknown type %q", e.Name, e.Type)
	}

	var special SpecialEffect
	switch e.Effect.Special {
	case "":
		special = SpecialNone
	case "spy":
		special = SpecialSpy
	default:
		return CardDef{}, fmt.Errorf("card %q: unknown special effect %q", e.Name, e.Effect.Special)
	}

	return CardDef{
		Name: e.Name,
		Cost: e.Cost,
		Type: typ,
		Effect: CardEffect{
			Cards:   e.Effect.Cards,
			Actions: e.Effect.Actions,
			Buys:    e.Effect.Buys,
			Coins:   e.Effect.Coins,
			VP:      e.Effect.VP,
			Special: special,
		},
		Description: e.Description,
	}, nil
}
