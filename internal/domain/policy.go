package domain

// Policy functions are the single source of truth for visibility and
// authorization. They are pure functions of (actor, entity snapshot); every
// service consults them and no caller re-derives the rules.
//
// Precedence, highest first: site admin, board member of the host
// organization, everyone else.

// CanView reports whether the actor may see the event at all.
// Ordinary viewers require published status and admin approval; admins and
// the host organization's board members see the event in any state.
func CanView(a Actor, e *Event) bool {
	switch a.Kind {
	case ActorSiteAdmin:
		return true
	case ActorStudent:
		if e.HostOrganizationID != nil && a.IsBoardMemberOf(*e.HostOrganizationID) {
			return true
		}
		return e.IsPubliclyVisible()
	case ActorAnonymous:
		return e.IsPubliclyVisible()
	}
	return false
}

// CanEdit reports whether the actor may modify the event, including its
// status transitions and deletion. Approval/status never grant or revoke
// edit rights to the host.
func CanEdit(a Actor, e *Event) bool {
	switch a.Kind {
	case ActorSiteAdmin:
		return true
	case ActorStudent:
		return e.HostOrganizationID != nil && a.IsBoardMemberOf(*e.HostOrganizationID)
	case ActorAnonymous:
		return false
	}
	return false
}

// CanApprove reports whether the actor may approve or reject events.
func CanApprove(a Actor) bool {
	return a.Kind == ActorSiteAdmin
}

// CanRSVP reports whether the actor may RSVP to the event: authentication,
// visibility, and a non-cancelled event are all required. Cancelled events
// reject RSVPs for every actor, admins included.
func CanRSVP(a Actor, e *Event) bool {
	if !a.IsAuthenticated() {
		return false
	}
	if e.Status == StatusCancelled {
		return false
	}
	return CanView(a, e)
}

// CanCreateEvent reports whether the actor may create an event for the given
// host organization. A nil hostOrgID means a free-text named host, which only
// admins may use. Board members may create only for organizations they
// administer.
func CanCreateEvent(a Actor, hostOrgID *int64) bool {
	switch a.Kind {
	case ActorSiteAdmin:
		return true
	case ActorStudent:
		return hostOrgID != nil && a.IsBoardMemberOf(*hostOrgID)
	case ActorAnonymous:
		return false
	}
	return false
}

// CanViewOrganization reports whether the actor may see the organization.
// Verified organizations are public; unverified ones are visible to admins
// and to their own members (any role). memberOfOrg is the caller-resolved
// membership of the acting user in this organization.
func CanViewOrganization(a Actor, o *Organization, memberOfOrg bool) bool {
	if o.IsVerified {
		return true
	}
	switch a.Kind {
	case ActorSiteAdmin:
		return true
	case ActorStudent:
		return memberOfOrg || a.IsBoardMemberOf(o.ID)
	case ActorAnonymous:
		return false
	}
	return false
}

// CanManageOrganization reports whether the actor may administer the
// organization's roster.
func CanManageOrganization(a Actor, o *Organization) bool {
	switch a.Kind {
	case ActorSiteAdmin:
		return true
	case ActorStudent:
		return a.IsBoardMemberOf(o.ID)
	case ActorAnonymous:
		return false
	}
	return false
}
