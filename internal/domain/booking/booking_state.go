package booking

import (
	"strings"

	"github.com/shareloop/service-sharing/internal/domain"
)

// State is the filter token used by listing queries. It is distinct from
// Status: there is no APPROVED member, because an approved booking is
// only interesting for when it occurs and is reached via the temporal
// buckets.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState reads a state token case-insensitively. The error carries
// the token exactly as received.
func ParseState(token string) (State, error) {
	state := State(strings.ToUpper(token))
	if _, ok := states[state]; !ok {
		return "", domain.NewUnknownStateError(token)
	}
	return state, nil
}
