package engine

// HandPoints returns the unmelded point total of the player's hand.
// Cards already melded or laid off carry no points.
func (g *GameState) HandPoints(player uint8) int {
	total := 0
	for i := uint8(0); i < g.Players[player].HandLen; i++ {
		total += int(g.Players[player].Hand[i].Value())
	}
	return total
}

// FinalScore reports the hand's outcome: the winner's index and the point
// total left in the loser's hand. A drawn hand (turn cap reached) returns
// winner -1 and zero points. Before GameOver both values are zero-ish and
// meaningless; callers should check IsGameOver first.
func (g *GameState) FinalScore() (winner int8, points int) {
	if g.Winner < 0 {
		return -1, 0
	}
	loser := g.OpponentOf(uint8(g.Winner))
	return g.Winner, g.HandPoints(loser)
}
