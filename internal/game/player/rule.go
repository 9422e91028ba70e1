package player

// Resultados possíveis da comparação de placares.
const (
	Player1Wins = 1
	Player2Wins = -1
	Tie         = 0
)

// Compare decides a two player game on score alone.
func Compare(p1, p2 *Player) int {
	switch {
	case p1.Score > p2.Score:
		return Player1Wins
	case p2.Score > p1.Score:
		return Player2Wins
	default:
		return Tie
	}
}

// Winner returns the id of the strictly higher scoring player when exactly
// two players are compared. Ties and any other seat count yield nil.
func Winner(players []*Player) *string {
	if len(players) != 2 {
		return nil
	}
	var id string
	switch Compare(players[0], players[1]) {
	case Player1Wins:
		id = players[0].ID
	case Player2Wins:
		id = players[1].ID
	default:
		return nil
	}
	return &id
}
