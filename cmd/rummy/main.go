// Command rummy runs a two-seat rummy match in the terminal: one human
// seat against the scripted opponent, or watch two scripted seats play
// each other with RUMMY_AI_ONLY=1.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/olawistedt/basicrummy/engine"
	"github.com/olawistedt/basicrummy/internal/game"
)

func envUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		logrus.WithField("key", key).Warn("ignoring unparsable env value")
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func cardLabel(c game.ObfCard) string {
	if !c.Known {
		return "??"
	}
	return c.Rank + c.Suit
}

func printState(st game.ObfGameState, humanSeat uuid.UUID) {
	top := "--"
	if st.DiscardTop != nil {
		top = cardLabel(*st.DiscardTop)
	}
	fmt.Printf("\nturn %d  phase %s  stock %d  discard %s (%d)\n",
		st.Turn, st.Phase, st.StockSize, top, st.DiscardSize)

	for i, m := range st.Melds {
		labels := make([]string, 0, len(m.Cards))
		for _, c := range m.Cards {
			labels = append(labels, cardLabel(c))
		}
		owner := "you"
		if m.OwnerSeat != humanSeat {
			owner = "opp"
		}
		fmt.Printf("  meld %d (%s, %s): %s\n", i, m.Kind, owner, strings.Join(labels, " "))
	}

	for _, p := range st.Players {
		if p.SeatID != humanSeat {
			fmt.Printf("  opponent holds %d cards\n", p.HandSize)
			continue
		}
		fmt.Print("  hand:")
		for i, c := range p.RevealedHand {
			fmt.Printf(" %d:%s", i, cardLabel(c))
		}
		fmt.Println()
	}
}

// parseIndices converts the remaining command words into hand positions.
func parseIndices(words []string, max int) ([]int, error) {
	out := make([]int, 0, len(words))
	for _, w := range words {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 || n >= max {
			return nil, fmt.Errorf("%q is not a hand position", w)
		}
		out = append(out, n)
	}
	return out, nil
}

func main() {
	_ = godotenv.Load()

	level, err := logrus.ParseLevel(os.Getenv("RUMMY_LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)

	rules := engine.DefaultHouseRules()
	rules.CardsPerPlayer = uint8(envUint("RUMMY_CARDS_PER_PLAYER", uint64(rules.CardsPerPlayer)))
	rules.MaxGameTurns = uint16(envUint("RUMMY_MAX_TURNS", uint64(rules.MaxGameTurns)))

	seed := envUint("RUMMY_SEED", uint64(time.Now().UnixNano()))
	g := game.NewRummyGame(seed, rules)
	human := g.HumanSeat()
	aiOnly := envBool("RUMMY_AI_ONLY")

	// The human's own actions are not narrated; the state reprint after each
	// command already shows them.
	g.BroadcastFn = func(ev game.GameEvent) {
		opp := ev.Seat != nil && ev.Seat.ID != human
		switch ev.Type {
		case game.EventPlayerDrawStock:
			if opp {
				fmt.Println("opponent draws from the stock")
			}
		case game.EventPlayerDrawDiscard:
			if opp {
				fmt.Printf("opponent takes %s from the discard pile\n", cardLabel(*ev.Card))
			}
		case game.EventPlayerMeld:
			if opp {
				labels := make([]string, 0, len(ev.Meld.Cards))
				for _, c := range ev.Meld.Cards {
					labels = append(labels, cardLabel(c))
				}
				fmt.Printf("opponent lays a %s: %s\n", ev.Meld.Kind, strings.Join(labels, " "))
			}
		case game.EventPlayerLayOff:
			if opp {
				fmt.Printf("opponent lays off %s\n", cardLabel(*ev.Card))
			}
		case game.EventPlayerDiscard:
			if opp {
				fmt.Printf("opponent discards %s\n", cardLabel(*ev.Card))
			}
		case game.EventStockRecycled:
			fmt.Println("the discard pile is shuffled back into the stock")
		case game.EventGameEnd:
			switch {
			case ev.Seat == nil:
				fmt.Println("\nthe hand is a draw")
			case ev.Seat.ID == human:
				fmt.Printf("\nyou win, scoring %v points\n", ev.Payload["score"])
			default:
				fmt.Printf("\nopponent wins, scoring %v points\n", ev.Payload["score"])
			}
		}
	}
	g.BroadcastToSeatFn = func(seat uuid.UUID, ev game.GameEvent) {
		if seat == human && ev.Type == game.EventPrivateDrawCard {
			fmt.Printf("you draw %s\n", cardLabel(*ev.Card))
		}
	}

	fmt.Printf("basicrummy  seed %d\n", seed)
	in := bufio.NewScanner(os.Stdin)

	for !g.Engine.IsGameOver() {
		cur := g.Seats[g.Engine.CurrentPlayer]
		if aiOnly || cur == g.AISeat {
			g.AISeat = cur
			if res := g.RequestAITurn(); !res.Applied {
				logrus.WithField("reason", res.Reason).Error("opponent turn failed")
				return
			}
			continue
		}
		if !humanTurn(g, in) {
			return
		}
	}
}

// humanTurn prompts until the human's turn is over. Returns false on EOF
// or quit.
func humanTurn(g *game.RummyGame, in *bufio.Scanner) bool {
	human := g.HumanSeat()

	for g.Seats[g.Engine.CurrentPlayer] == human && !g.Engine.IsGameOver() {
		st := g.State(human)
		printState(st, human)

		var hand []game.ObfCard
		for _, p := range st.Players {
			if p.SeatID == human {
				hand = p.RevealedHand
			}
		}

		fmt.Print("> ")
		if !in.Scan() {
			return false
		}
		words := strings.Fields(strings.ToLower(in.Text()))
		if len(words) == 0 {
			continue
		}

		var res game.CommandResult
		switch words[0] {
		case "quit", "q":
			return false
		case "help", "h":
			fmt.Println("commands: draw s|d  meld <pos...>  lay <pos> <meld>  discard <pos>  move <from> <to>  quit")
			continue
		case "draw":
			if len(words) == 2 && words[1] == "d" {
				res = g.DrawFromDiscard(human)
			} else {
				res = g.DrawFromStock(human)
			}
		case "meld":
			pos, err := parseIndices(words[1:], len(hand))
			if err != nil {
				fmt.Println(err)
				continue
			}
			ids := make([]uuid.UUID, 0, len(pos))
			for _, p := range pos {
				ids = append(ids, hand[p].ID)
			}
			res = g.FormMeld(human, ids)
		case "lay":
			if len(words) != 3 {
				fmt.Println("usage: lay <pos> <meld>")
				continue
			}
			pos, err := parseIndices(words[1:2], len(hand))
			if err != nil {
				fmt.Println(err)
				continue
			}
			meldIdx, err := strconv.Atoi(words[2])
			if err != nil || meldIdx < 0 || meldIdx >= len(st.Melds) {
				fmt.Println("no such meld")
				continue
			}
			res = g.LayOff(human, hand[pos[0]].ID, st.Melds[meldIdx].ID)
		case "discard", "d":
			pos, err := parseIndices(words[1:], len(hand))
			if err != nil || len(pos) != 1 {
				fmt.Println("usage: discard <pos>")
				continue
			}
			res = g.Discard(human, hand[pos[0]].ID)
		case "move":
			pos, err := parseIndices(words[1:], len(hand))
			if err != nil || len(pos) != 2 {
				fmt.Println("usage: move <from> <to>")
				continue
			}
			res = g.ReorderHand(human, hand[pos[0]].ID, pos[1])
		default:
			fmt.Println("unknown command, try help")
			continue
		}

		if !res.Applied {
			fmt.Printf("rejected: %s (%s)\n", res.Reason, res.Detail)
		}
	}
	return true
}
