package padel

import "errors"

// Validation errors: the input itself is unusable.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoResult       = errors.New("no result entered")
	ErrTiedSet        = errors.New("a set cannot end tied")
	ErrSameTeam       = errors.New("a team cannot play against itself")
	ErrNotEnoughTeams = errors.New("not enough teams")
)

// Precondition errors: the input is well formed but the current state refuses it.
var (
	ErrSidesNotAssigned       = errors.New("both sides must be assigned")
	ErrUnsupportedBracketSize = errors.New("unsupported bracket size")
	ErrCategoryFull           = errors.New("category is full")
	ErrTeamHasMatches         = errors.New("team still has matches")
	ErrSlotOccupied           = errors.New("slot is already occupied")
	ErrSlotOwnedByAdvancement = errors.New("slot is filled by advancement")
	ErrDownstreamDecided      = errors.New("next round match is already decided")
	ErrTeamNotInPool          = errors.New("team is not in the unassigned pool")
	ErrNotEnoughQualifiers    = errors.New("not enough qualifiers")
	ErrConflict               = errors.New("conflict")
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")
