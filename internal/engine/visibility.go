package engine

import (
	"encoding/json"
	"fmt"
)

// Visibility tags who is known to know a card's identity.
type Visibility int

const (
	// VisPublic cards are known to every player (revealed by a show-trump,
	// or resting on the table/discard).
	VisPublic Visibility = iota
	// VisPrivate cards are known only to their owner.
	VisPrivate
	// VisUnknown cards are not known even to their owner: a manual-mode
	// placeholder for opponent cards the viewer has not seen, never
	// used for a card the owner has actually inspected.
	VisUnknown
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisPrivate:
		return "private"
	case VisUnknown:
		return "unknown"
	default:
		return "?"
	}
}

// VisCard is a card together with its visibility tag, the unit every hand
// and the stock is built from.
type VisCard struct {
	Card Card
	Vis  Visibility
}

// ProjectFor computes what a given viewer is allowed to see of a VisCard
// held by owner: the concrete card if it is public, or if the viewer is the
// owner and the card is not VisUnknown to them; otherwise nil, meaning
// "hidden from this viewer".
func (vc VisCard) ProjectFor(owner, viewer PlayerID) *Card {
	if vc.Vis == VisPublic {
		c := vc.Card
		return &c
	}
	if owner == viewer && vc.Vis == VisPrivate {
		c := vc.Card
		return &c
	}
	return nil
}

// visCardWire is the internally tagged on-wire form of a VisCard: the
// suit/rank fields are present for public and private cards and absent for
// unknown ones, so a state the engine produced reads back with every
// concrete card it held.
type visCardWire struct {
	Type Visibility `json:"type"`
	Suit *Suit      `json:"suit,omitempty"`
	Rank *Rank      `json:"rank,omitempty"`
}

func (v Visibility) MarshalJSON() ([]byte, error) {
	switch v {
	case VisPublic:
		return json.Marshal("public")
	case VisPrivate:
		return json.Marshal("private")
	case VisUnknown:
		return json.Marshal("unknown")
	default:
		return nil, SerializationError{Reason: fmt.Sprintf("unknown visibility %d", int(v))}
	}
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return SerializationError{Reason: "visibility tag", Err: err}
	}
	switch s {
	case "public":
		*v = VisPublic
	case "private":
		*v = VisPrivate
	case "unknown":
		*v = VisUnknown
	default:
		return SerializationError{Reason: fmt.Sprintf("unrecognized visibility tag %q", s)}
	}
	return nil
}

// MarshalJSON renders the VisCard as the spec's internally tagged record:
// { type, suit?, rank? }, identity fields present unless unknown.
func (vc VisCard) MarshalJSON() ([]byte, error) {
	w := visCardWire{Type: vc.Vis}
	if vc.Vis != VisUnknown {
		s, r := vc.Card.Suit, vc.Card.Rank
		w.Suit, w.Rank = &s, &r
	}
	return json.Marshal(w)
}

func (vc *VisCard) UnmarshalJSON(data []byte) error {
	var w visCardWire
	if err := json.Unmarshal(data, &w); err != nil {
		return SerializationError{Reason: "viscard", Err: err}
	}
	vc.Vis = w.Type
	if w.Suit != nil && w.Rank != nil {
		vc.Card = Card{Suit: *w.Suit, Rank: *w.Rank}
	}
	return nil
}

// ownerCardWire is one card of a hand as MarshalOwner renders it for its
// owner: public and private cards show their identity, unknown cards do not.
type ownerCardWire struct {
	Suit *Suit      `json:"suit,omitempty"`
	Rank *Rank      `json:"rank,omitempty"`
	Vis  Visibility `json:"vis"`
}

// MarshalOwner renders hand as seen by its own owner: public and private
// cards reveal their identity, unknown ones do not.
func MarshalOwner(hand []VisCard) ([]byte, error) {
	out := make([]ownerCardWire, len(hand))
	for i, vc := range hand {
		w := ownerCardWire{Vis: vc.Vis}
		if vc.Vis != VisUnknown {
			s, r := vc.Card.Suit, vc.Card.Rank
			w.Suit, w.Rank = &s, &r
		}
		out[i] = w
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, SerializationError{Reason: "marshal owner hand", Err: err}
	}
	return b, nil
}
