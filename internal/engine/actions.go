package engine

import "fmt"

// PlayerID identifies a seat, P0 .. P(N-1). P0 is always the root /
// advice-receiving player.
type PlayerID int

func (p PlayerID) String() string { return fmt.Sprintf("P%d", int(p)) }

// ActionKind enumerates the kinds of action a player may take.
type ActionKind string

const (
	KindAttack     ActionKind = "Attack"
	KindDefend     ActionKind = "Defend"
	KindThrow      ActionKind = "Throw"
	KindPassAttack ActionKind = "PassAttack"
	KindTake       ActionKind = "Take"
	KindReflect    ActionKind = "Reflect"
	KindShowTrump  ActionKind = "ShowTrump"
)

// Action is implemented by every concrete action type. Kind identifies the
// action's ActionKind; Player identifies the actor; Key produces a stable,
// order-independent identifier used to group MCTS/aggregator statistics by
// action (two equal actions always produce equal keys).
type Action interface {
	Kind() ActionKind
	Player() PlayerID
	Key() string
}

// AttackAction lays down an initial (or additional, pre-Defending) attack
// card.
type AttackAction struct {
	Actor PlayerID
	Card  Card
}

func (a AttackAction) Kind() ActionKind { return KindAttack }
func (a AttackAction) Player() PlayerID { return a.Actor }
func (a AttackAction) Key() string      { return fmt.Sprintf("Attack(%s)", a.Card) }

// DefendAction beats the undefended pile at index Pile with Card.
type DefendAction struct {
	Actor PlayerID
	Pile  int
	Card  Card
}

func (a DefendAction) Kind() ActionKind { return KindDefend }
func (a DefendAction) Player() PlayerID { return a.Actor }
func (a DefendAction) Key() string      { return fmt.Sprintf("Defend(%d,%s)", a.Pile, a.Card) }

// ThrowAction adds a further pile whose rank already appears on the table.
type ThrowAction struct {
	Actor PlayerID
	Card  Card
}

func (a ThrowAction) Kind() ActionKind { return KindThrow }
func (a ThrowAction) Player() PlayerID { return a.Actor }
func (a ThrowAction) Key() string      { return fmt.Sprintf("Throw(%s)", a.Card) }

// PassAttackAction is Throw(None): the actor declines to throw further.
type PassAttackAction struct {
	Actor PlayerID
}

func (a PassAttackAction) Kind() ActionKind { return KindPassAttack }
func (a PassAttackAction) Player() PlayerID { return a.Actor }
func (a PassAttackAction) Key() string      { return "PassAttack" }

// TakeAction is the defender picking up the whole table.
type TakeAction struct {
	Actor PlayerID
}

func (a TakeAction) Kind() ActionKind { return KindTake }
func (a TakeAction) Player() PlayerID { return a.Actor }
func (a TakeAction) Key() string      { return "Take" }

// ReflectAction redirects the attack with a same-rank, non-trump card.
type ReflectAction struct {
	Actor PlayerID
	Card  Card
}

func (a ReflectAction) Kind() ActionKind { return KindReflect }
func (a ReflectAction) Player() PlayerID { return a.Actor }
func (a ReflectAction) Key() string      { return fmt.Sprintf("Reflect(%s)", a.Card) }

// ShowTrumpAction redirects the attack by revealing a matching-rank trump
// without playing it.
type ShowTrumpAction struct {
	Actor PlayerID
	Card  Card
}

func (a ShowTrumpAction) Kind() ActionKind { return KindShowTrump }
func (a ShowTrumpAction) Player() PlayerID { return a.Actor }
func (a ShowTrumpAction) Key() string      { return fmt.Sprintf("ShowTrump(%s)", a.Card) }
