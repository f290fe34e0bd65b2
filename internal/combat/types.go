package combat

type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Kind int

const (
	KindPlayer Kind = iota
	KindBoss
	KindAdd
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBoss:
		return "boss"
	case KindAdd:
		return "add"
	}
	return "unknown"
}

// Unit is anything that occupies tiles and has hit points.
type Unit struct {
	ID    string
	Kind  Kind
	HP    int
	MaxHP int
	Pos   Point
	Size  int

	// Dying is set one tick after HP reaches zero.
	Dying bool

	AttackSpeed int
	// AttackDelay counts down every tick; the unit attacks when it reaches zero
	// and is reset to AttackSpeed.
	AttackDelay int
	MaxHit      int
	FlightDelay int

	Aggro  *Unit
	Parent *Unit

	healAmount   int
	healInterval int
	style        Style
}

func (u *Unit) Alive() bool { return !u.Dying && u.HP > 0 }

// AttackStyle is the style of the attack launched this tick, StyleNone on every
// other tick.
func (u *Unit) AttackStyle() Style { return u.style }

func (u *Unit) AttackCountdown() int { return u.AttackDelay }

func (u *Unit) reach(o *Unit) int { return gap(u.Pos, u.Size, o.Pos, o.Size) }
