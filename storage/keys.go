package storage

import "fmt"

// Key addresses one record in the store. Constructors below are the only
// way keys are built, so entity kinds can never collide on a prefix.
type Key string

const (
	KeyInitialized     Key = "platform:initialized"
	KeyAdmin           Key = "platform:admin"
	KeyPlatformFeeBps  Key = "platform:fee_bps"
	KeyPlatformBalance Key = "platform:balance"
	KeyEventCounter    Key = "counter:event"
	KeyTicketCounter   Key = "counter:ticket"
)

func EventKey(eventID uint64) Key {
	return Key(fmt.Sprintf("event:%d", eventID))
}

func TicketKey(ticketID uint64) Key {
	return Key(fmt.Sprintf("ticket:%d", ticketID))
}

func EscrowKey(eventID uint64) Key {
	return Key(fmt.Sprintf("escrow:%d", eventID))
}

func ValidatorsKey(eventID uint64) Key {
	return Key(fmt.Sprintf("validators:%d", eventID))
}

func EscrowConfigKey(eventID uint64) Key {
	return Key(fmt.Sprintf("escrow:config:%d", eventID))
}

func ApprovalKey(eventID uint64, signer string) Key {
	return Key(fmt.Sprintf("escrow:approval:%d:%s", eventID, signer))
}
