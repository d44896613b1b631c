package domain

// ActorKind discriminates the Actor variants. Policy code switches on it
// exhaustively; there are no ad hoc role flags elsewhere.
type ActorKind int

const (
	// ActorAnonymous is an unauthenticated visitor.
	ActorAnonymous ActorKind = iota
	// ActorStudent is an authenticated user. Board memberships, if any, are
	// carried in BoardOf.
	ActorStudent
	// ActorSiteAdmin is a staff user with unconditional rights.
	ActorSiteAdmin
)

// Actor is a snapshot of the requesting identity used for policy evaluation.
// It is built per request from the session and never persisted; it is
// eventually consistent with the server's session store.
type Actor struct {
	Kind     ActorKind
	UserID   int64
	Username string
	// BoardOf holds the IDs of organizations the user administers (role board).
	BoardOf map[int64]struct{}
}

// Anonymous is the zero actor for unauthenticated requests.
var Anonymous = Actor{Kind: ActorAnonymous}

// NewStudentActor returns a Student actor with the given board memberships.
func NewStudentActor(userID int64, username string, boardOrgIDs []int64) Actor {
	boardOf := make(map[int64]struct{}, len(boardOrgIDs))
	for _, id := range boardOrgIDs {
		boardOf[id] = struct{}{}
	}
	return Actor{Kind: ActorStudent, UserID: userID, Username: username, BoardOf: boardOf}
}

// NewAdminActor returns a SiteAdmin actor.
func NewAdminActor(userID int64, username string) Actor {
	return Actor{Kind: ActorSiteAdmin, UserID: userID, Username: username}
}

// IsAuthenticated reports whether the actor is a logged-in user.
func (a Actor) IsAuthenticated() bool {
	return a.Kind != ActorAnonymous
}

// IsBoardMemberOf reports whether the actor holds the board role in the
// given organization. Admins are handled by policy, not here.
func (a Actor) IsBoardMemberOf(orgID int64) bool {
	if a.Kind != ActorStudent {
		return false
	}
	_, ok := a.BoardOf[orgID]
	return ok
}
