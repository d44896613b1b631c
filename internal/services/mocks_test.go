package services

import (
	"context"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type fakeEventRepo struct {
	byID   map[int64]*domain.Event
	nextID int64
	err    error

	approvedSet map[int64]bool
	statusSet   map[int64]domain.EventStatus
	deleted     map[int64]bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:        make(map[int64]*domain.Event),
		nextID:      1,
		approvedSet: make(map[int64]bool),
		statusSet:   make(map[int64]domain.EventStatus),
		deleted:     make(map[int64]bool),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	event.ID = f.nextID
	f.nextID++
	copied := *event
	f.byID[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	ev, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *ev
	return &copied, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Event
	for _, ev := range f.byID {
		if filter.PublicOnly && !ev.IsPubliclyVisible() {
			hosted := false
			for _, orgID := range filter.AlsoHostOrgIDs {
				if ev.HostOrganizationID != nil && *ev.HostOrganizationID == orgID {
					hosted = true
					break
				}
			}
			if !hosted {
				continue
			}
		}
		if filter.HostOrganizationID != nil {
			if ev.HostOrganizationID == nil || *ev.HostOrganizationID != *filter.HostOrganizationID {
				continue
			}
		}
		copied := *ev
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[event.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *event
	f.byID[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted[id] = true
	return nil
}

func (f *fakeEventRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	if f.err != nil {
		return f.err
	}
	ev, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.IsApproved = approved
	f.approvedSet[id] = approved
	return nil
}

func (f *fakeEventRepo) SetStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	if f.err != nil {
		return f.err
	}
	ev, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.Status = status
	f.statusSet[id] = status
	return nil
}

func rsvpKey(eventID, userID int64) string {
	return fmt.Sprintf("%d:%d", eventID, userID)
}

type fakeRSVPRepo struct {
	byKey  map[string]*domain.RSVP
	nextID int64
	err    error
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byKey: make(map[string]*domain.RSVP), nextID: 1}
}

func (f *fakeRSVPRepo) Create(ctx context.Context, rsvp *domain.RSVP) error {
	if f.err != nil {
		return f.err
	}
	key := rsvpKey(rsvp.EventID, rsvp.UserID)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrAlreadyRSVPed
	}
	rsvp.ID = f.nextID
	f.nextID++
	copied := *rsvp
	f.byKey[key] = &copied
	return nil
}

func (f *fakeRSVPRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.RSVP, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.byKey[rsvpKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRSVPRepo) Delete(ctx context.Context, eventID, userID int64) error {
	if f.err != nil {
		return f.err
	}
	key := rsvpKey(eventID, userID)
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

func (f *fakeRSVPRepo) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, r := range f.byKey {
		if r.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRSVPRepo) ListByUserID(ctx context.Context, userID int64) ([]*domain.RSVP, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.RSVP
	for _, r := range f.byKey {
		if r.UserID == userID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeOrgRepo struct {
	byID        map[int64]*domain.Organization
	bySlug      map[string]*domain.Organization
	members     map[int64]map[int64]domain.MemberRole
	boardEmails map[int64][]string
	nextID      int64
	err         error
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		byID:        make(map[int64]*domain.Organization),
		bySlug:      make(map[string]*domain.Organization),
		members:     make(map[int64]map[int64]domain.MemberRole),
		boardEmails: make(map[int64][]string),
		nextID:      1,
	}
}

func (f *fakeOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.bySlug[org.Slug]; ok {
		return domain.ErrDuplicateSlug
	}
	org.ID = f.nextID
	f.nextID++
	copied := *org
	f.byID[org.ID] = &copied
	f.bySlug[org.Slug] = &copied
	return nil
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	org, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *org
	return &copied, nil
}

func (f *fakeOrgRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	org, ok := f.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *org
	return &copied, nil
}

func (f *fakeOrgRepo) List(ctx context.Context, filter domain.OrganizationFilter) ([]*domain.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Organization
	for _, org := range f.byID {
		if filter.VerifiedOnly && !org.IsVerified {
			if _, member := f.members[org.ID][filter.MemberUserID]; !member {
				continue
			}
		}
		copied := *org
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeOrgRepo) ListMembers(ctx context.Context, orgID int64) ([]*domain.OrganizationMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.OrganizationMember
	for userID, role := range f.members[orgID] {
		out = append(out, &domain.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           role,
		})
	}
	return out, nil
}

func (f *fakeOrgRepo) UpsertMember(ctx context.Context, orgID, userID int64, role domain.MemberRole) error {
	if f.err != nil {
		return f.err
	}
	if f.members[orgID] == nil {
		f.members[orgID] = make(map[int64]domain.MemberRole)
	}
	f.members[orgID][userID] = role
	return nil
}

func (f *fakeOrgRepo) RemoveMember(ctx context.Context, orgID, userID int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.members[orgID][userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.members[orgID], userID)
	return nil
}

func (f *fakeOrgRepo) IsMember(ctx context.Context, orgID, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.members[orgID][userID]
	return ok, nil
}

func (f *fakeOrgRepo) ListBoardOrgIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []int64
	for orgID, roster := range f.members {
		if roster[userID] == domain.RoleBoard {
			out = append(out, orgID)
		}
	}
	return out, nil
}

func (f *fakeOrgRepo) ListBoardMemberEmails(ctx context.Context, orgID int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.boardEmails[orgID], nil
}

type fakeCategoryRepo struct {
	byID map[int64]*domain.Category
	err  error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[int64]*domain.Category{
		1: {ID: 1, Name: "careers"},
		2: {ID: 2, Name: "social"},
	}}
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Category
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

type fakeUserRepo struct {
	byID       map[int64]*domain.User
	byUsername map[string]*domain.User
	nextID     int64
	err        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
}

func (f *fakeUserRepo) add(user *domain.User) *domain.User {
	user.ID = f.nextID
	f.nextID++
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Pronouns != nil {
		u.Pronouns = *update.Pronouns
	}
	if update.PictureURL != nil {
		u.PictureURL = *update.PictureURL
	}
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

type fakeEmailService struct {
	approved []*domain.EventDecisionEmailData
	rejected []*domain.EventDecisionEmailData
}

func (f *fakeEmailService) SendEventApproved(ctx context.Context, data *domain.EventDecisionEmailData) error {
	f.approved = append(f.approved, data)
	return nil
}

func (f *fakeEmailService) SendEventRejected(ctx context.Context, data *domain.EventDecisionEmailData) error {
	f.rejected = append(f.rejected, data)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID int64, username string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}
