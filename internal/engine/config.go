package engine

import "math/rand/v2"

// GameConfig holds configuration for creating a new match.
type GameConfig struct {
	Catalog Catalog    // card definitions
	Rand    *rand.Rand // shuffle source; seed it explicitly for reproducible games
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Catalog: BaseCatalog(),
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}
