package padel

import "fmt"

// SetScore holds the games each side won in one set.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Winner returns the side with strictly more games, or SideNone on a tie.
func (s SetScore) Winner() Side {
	switch {
	case s.A > s.B:
		return SideA
	case s.B > s.A:
		return SideB
	}
	return SideNone
}

// Score is the list of sets actually played, in order.
type Score struct {
	Sets []SetScore `json:"sets"`
}

func (s Score) IsZero() bool { return len(s.Sets) == 0 }

// ScoreInput is the raw form of a result. Set 1 is mandatory;
// sets 2 and 3 are present only when both of their sides are.
type ScoreInput struct {
	Set1A int  `json:"set1_a"`
	Set1B int  `json:"set1_b"`
	Set2A *int `json:"set2_a,omitempty"`
	Set2B *int `json:"set2_b,omitempty"`
	Set3A *int `json:"set3_a,omitempty"`
	Set3B *int `json:"set3_b,omitempty"`
}

// NewScore validates a result and converts it to a Score.
func NewScore(in ScoreInput) (Score, error) {
	sets := []SetScore{{A: in.Set1A, B: in.Set1B}}
	for i, pair := range [][2]*int{{in.Set2A, in.Set2B}, {in.Set3A, in.Set3B}} {
		a, b := pair[0], pair[1]
		if (a == nil) != (b == nil) {
			return Score{}, fmt.Errorf("%w: set %d has a score for only one side", ErrInvalidInput, i+2)
		}
		if a == nil {
			continue
		}
		if i == 1 && len(sets) < 2 {
			return Score{}, fmt.Errorf("%w: set 3 entered without set 2", ErrInvalidInput)
		}
		sets = append(sets, SetScore{A: *a, B: *b})
	}

	allZero := true
	for i, set := range sets {
		if set.A < 0 || set.B < 0 {
			return Score{}, fmt.Errorf("%w: set %d has negative games", ErrInvalidInput, i+1)
		}
		if set.A != 0 || set.B != 0 {
			allZero = false
		}
	}
	if allZero {
		return Score{}, ErrNoResult
	}
	for i, set := range sets {
		if set.Winner() == SideNone {
			return Score{}, fmt.Errorf("%w: set %d is %d-%d", ErrTiedSet, i+1, set.A, set.B)
		}
	}
	return Score{Sets: sets}, nil
}

// Outcome is the resolved result of a score.
type Outcome struct {
	Winner Side `json:"winner"`
	SetsA  int  `json:"sets_a"`
	SetsB  int  `json:"sets_b"`
	GamesA int  `json:"games_a"`
	GamesB int  `json:"games_b"`
}

// SetsToWin is the number of sets a side needs out of total to take the match.
func SetsToWin(total int) int {
	return total/2 + 1
}

// Resolve counts sets and games per side and decides the winner, if any.
// A side wins when it takes a strict majority of the sets played.
func (s Score) Resolve() Outcome {
	var out Outcome
	for _, set := range s.Sets {
		out.GamesA += set.A
		out.GamesB += set.B
		switch set.Winner() {
		case SideA:
			out.SetsA++
		case SideB:
			out.SetsB++
		}
	}
	if len(s.Sets) == 0 {
		return out
	}
	need := SetsToWin(len(s.Sets))
	switch {
	case out.SetsA >= need:
		out.Winner = SideA
	case out.SetsB >= need:
		out.Winner = SideB
	}
	return out
}
