package booking

import "strings"

// ===============================
// Customer Identity
// ===============================

// Identity is either a guest (phone-derived, no login) or an account id
// handed over by the external auth collaborator. Bookings store only the
// Ref() string, as a weak reference.
type Identity struct {
	kind  identityKind
	value string
}

type identityKind int

const (
	kindGuest identityKind = iota
	kindAccount
)

const guestPrefix = "guest_"

// GuestIdentity derives an identity from a raw phone number. Two guests
// with the same normalized phone share one identity; that is the best a
// no-login flow can do.
func GuestIdentity(phone string) Identity {
	return Identity{kind: kindGuest, value: NormalizePhone(phone)}
}

func AccountIdentity(id string) Identity {
	return Identity{kind: kindAccount, value: id}
}

func (i Identity) IsGuest() bool {
	return i.kind == kindGuest
}

// Ref is the string stored on bookings and users.
func (i Identity) Ref() string {
	if i.kind == kindGuest {
		return guestPrefix + i.value
	}
	return i.value
}

// Phone returns the normalized phone for guest identities, "" otherwise.
func (i Identity) Phone() string {
	if i.kind == kindGuest {
		return i.value
	}
	return ""
}

// NormalizePhone strips everything but digits and a leading plus so that
// "+55 (11) 99999-0000" and "5511999990000" collapse to one guest.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
