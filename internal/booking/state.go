package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// State is the filter accepted by the booking list endpoints.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = State(StatusWaiting)
	StateRejected State = State(StatusRejected)
	StateApproved State = State(StatusApproved)
	StateCanceled State = State(StatusCanceled)
)

var knownStates = map[State]struct{}{
	StateAll: {}, StateCurrent: {}, StatePast: {}, StateFuture: {},
	StateWaiting: {}, StateRejected: {}, StateApproved: {}, StateCanceled: {},
}

// UnknownState is the error reported for a state filter the service cannot evaluate.
func UnknownState(raw string) *apperror.AppError {
	return apperror.New(http.StatusInternalServerError, "Unknown state: "+raw)
}

// ParseState reads a state name case-insensitively. An empty value means ALL.
func ParseState(raw string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if s == "" {
		return StateAll, nil
	}
	if _, ok := knownStates[s]; !ok {
		return "", UnknownState(raw)
	}
	return s, nil
}

// window builds the SQL predicate for a state at a given instant. A nil predicate matches everything.
type window func(now time.Time) squirrel.Sqlizer

// stateWindows holds the states that can be listed. APPROVED and CANCELED parse but have no window.
var stateWindows = map[State]window{
	StateAll: func(time.Time) squirrel.Sqlizer { return nil },
	StateCurrent: func(now time.Time) squirrel.Sqlizer {
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	},
	StatePast:   pastWindow,
	StateFuture: futureWindow,
	StateWaiting: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusWaiting}
	},
	StateRejected: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusRejected}
	},
}

func pastWindow(now time.Time) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Lt{"b.end_time": now},
		squirrel.NotEq{"b.status": StatusRejected},
	}
}

func futureWindow(now time.Time) squirrel.Sqlizer {
	return squirrel.Gt{"b.start_time": now}
}

// windowFor returns the predicate for s, or ErrUnsupportedState.
func windowFor(s State, now time.Time) (squirrel.Sqlizer, error) {
	w, ok := stateWindows[s]
	if !ok {
		return nil, ErrUnsupportedState
	}
	return w(now), nil
}
