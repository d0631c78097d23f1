package engine

import "testing"

func TestCardBeats(t *testing.T) {
	tests := []struct {
		name  string
		c     Card
		other Card
		trump Suit
		want  bool
	}{
		{"higher same suit wins", Card{Hearts, Ten}, Card{Hearts, Eight}, Spades, true},
		{"lower same suit loses", Card{Hearts, Eight}, Card{Hearts, Ten}, Spades, false},
		{"trump beats non-trump", Card{Spades, Two}, Card{Hearts, Ace}, Spades, true},
		{"non-trump never beats trump", Card{Hearts, Ace}, Card{Spades, Two}, Spades, false},
		{"different non-trump suits incomparable", Card{Hearts, Ace}, Card{Clubs, Two}, Spades, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Beats(tt.other, tt.trump); got != tt.want {
				t.Errorf("%s.Beats(%s, trump=%s) = %v, want %v", tt.c, tt.other, tt.trump, got, tt.want)
			}
		})
	}
}

func TestRanksForDeckSize(t *testing.T) {
	tests := []struct {
		size    int
		wantLen int
		wantErr bool
	}{
		{32, 8, false},
		{36, 9, false},
		{52, 13, false},
		{40, 10, false},
		{33, 0, true},
		{28, 0, true},
		{56, 0, true},
	}
	for _, tt := range tests {
		ranks, err := RanksForDeckSize(tt.size)
		if tt.wantErr {
			if err == nil {
				t.Errorf("RanksForDeckSize(%d) expected error, got none", tt.size)
			}
			continue
		}
		if err != nil {
			t.Fatalf("RanksForDeckSize(%d) unexpected error: %v", tt.size, err)
		}
		if len(ranks) != tt.wantLen {
			t.Errorf("RanksForDeckSize(%d) = %d ranks, want %d", tt.size, len(ranks), tt.wantLen)
		}
		if ranks[len(ranks)-1] != Ace {
			t.Errorf("RanksForDeckSize(%d) top rank = %s, want Ace", tt.size, ranks[len(ranks)-1])
		}
	}
}

func TestRankString36Deck(t *testing.T) {
	ranks, err := RanksForDeckSize(36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	if len(ranks) != len(want) {
		t.Fatalf("got %d ranks, want %d", len(ranks), len(want))
	}
	for i, r := range ranks {
		if r.String() != want[i] {
			t.Errorf("rank[%d] = %s, want %s", i, r.String(), want[i])
		}
	}
}
