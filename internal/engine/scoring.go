package engine

import "strings"

// ScoreEntry holds one player's final victory-point tally.
type ScoreEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
}

// IsGameOver reports whether a terminal condition has been reached: the
// Province pile is exhausted, or at least three piles are empty. Checked
// only at cleanup.
func (g *Game) IsGameOver() bool {
	if count, ok := g.Supply["Province"]; ok && count == 0 {
		return true
	}
	empty := 0
	for _, count := range g.Supply {
		if count == 0 {
			empty++
		}
	}
	return empty >= 3
}

// Scores tallies victory points for every player over all four zones.
func (g *Game) Scores() []ScoreEntry {
	entries := make([]ScoreEntry, len(g.Players))
	for i, p := range g.Players {
		score := 0
		for _, c := range p.AllCards() {
			if def, ok := g.catalog.Get(c.Name); ok {
				score += def.Effect.VP
			}
		}
		entries[i] = ScoreEntry{PlayerID: p.ID, PlayerName: p.Name, Score: score}
	}
	return entries
}

// finishGame moves the match to its terminal state: winners are all
// players tied at the maximum score, with no tiebreak.
func (g *Game) finishGame() {
	g.Phase = PhaseEnded

	scores := g.Scores()
	max := scores[0].Score
	for _, s := range scores[1:] {
		if s.Score > max {
			max = s.Score
		}
	}
	g.Winners = nil
	for _, s := range scores {
		if s.Score == max {
			g.Winners = append(g.Winners, s.PlayerName)
		}
	}

	g.logf("Game over! Winner: %s", strings.Join(g.Winners, ", "))
	for _, s := range scores {
		g.logf("%s: %d VP", s.PlayerName, s.Score)
	}
}
