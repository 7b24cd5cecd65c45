package enums

// AIState - состояние монстра.
type AIState uint8

const (
	AIStateIdle    AIState = iota // Не видит игрока
	AIStateHunting                // Заметил игрока и идёт к нему
)

func (s AIState) String() string {
	if s == AIStateHunting {
		return "HUNTING"
	}
	return "IDLE"
}
