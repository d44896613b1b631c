package controllers

import (
	"context"
	"io"
	"log/slog"

	"campusevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr       error
	getResult       *domain.EventDetail
	getErr          error
	listResult      []*domain.EventDetail
	listTotal       int
	listErr         error
	updateResult    *domain.Event
	updateErr       error
	deleteErr       error
	approveErr      error
	rejectErr       error
	setStatusResult *domain.Event
	setStatusErr    error

	lastActor       domain.Actor
	lastCreateEvent *domain.Event
	lastUpdateEvent *domain.Event
	lastEventID     int64
	lastFilter      domain.EventFilter
	lastParams      domain.PaginationParams
	lastStatus      domain.EventStatus
}

func (f *fakeEventService) CreateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) error {
	f.lastActor = actor
	f.lastCreateEvent = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = 101
	event.Status = domain.StatusDraft
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, actor domain.Actor, id int64) (*domain.EventDetail, error) {
	f.lastActor = actor
	f.lastEventID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, actor domain.Actor, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventDetail, int, error) {
	f.lastActor = actor
	f.lastFilter = filter
	f.lastParams = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) (*domain.Event, error) {
	f.lastActor = actor
	f.lastUpdateEvent = event
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, actor domain.Actor, id int64) error {
	f.lastActor = actor
	f.lastEventID = id
	return f.deleteErr
}

func (f *fakeEventService) ApproveEvent(ctx context.Context, actor domain.Actor, id int64) error {
	f.lastActor = actor
	f.lastEventID = id
	return f.approveErr
}

func (f *fakeEventService) RejectEvent(ctx context.Context, actor domain.Actor, id int64) error {
	f.lastActor = actor
	f.lastEventID = id
	return f.rejectErr
}

func (f *fakeEventService) SetEventStatus(ctx context.Context, actor domain.Actor, id int64, status domain.EventStatus) (*domain.Event, error) {
	f.lastActor = actor
	f.lastEventID = id
	f.lastStatus = status
	if f.setStatusErr != nil {
		return nil, f.setStatusErr
	}
	return f.setStatusResult, nil
}

// fakeRSVPService implements domain.RSVPService for handler tests.
type fakeRSVPService struct {
	rsvpResult  *domain.RSVP
	rsvpCreated bool
	rsvpErr     error
	cancelErr   error
	listResult  []*domain.RSVPWithEvent
	listErr     error

	lastActor   domain.Actor
	lastEventID int64
}

func (f *fakeRSVPService) RSVP(ctx context.Context, actor domain.Actor, eventID int64) (*domain.RSVP, bool, error) {
	f.lastActor = actor
	f.lastEventID = eventID
	if f.rsvpErr != nil {
		return nil, false, f.rsvpErr
	}
	return f.rsvpResult, f.rsvpCreated, nil
}

func (f *fakeRSVPService) CancelRSVP(ctx context.Context, actor domain.Actor, eventID int64) error {
	f.lastActor = actor
	f.lastEventID = eventID
	return f.cancelErr
}

func (f *fakeRSVPService) ListMyRSVPs(ctx context.Context, actor domain.Actor) ([]*domain.RSVPWithEvent, error) {
	f.lastActor = actor
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

// fakeCategoryRepo implements domain.CategoryRepository for handler tests.
type fakeCategoryRepo struct {
	listResult []*domain.Category
	listErr    error
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	for _, c := range f.listResult {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeOrgService implements domain.OrganizationService for handler tests.
type fakeOrgService struct {
	registerResult *domain.Organization
	registerErr    error
	getResult      *domain.OrganizationWithMembers
	getErr         error
	listResult     []*domain.Organization
	listErr        error
	setRoleErr     error
	removeErr      error

	lastActor    domain.Actor
	lastSlug     string
	lastUsername string
	lastRole     domain.MemberRole
}

func (f *fakeOrgService) Register(ctx context.Context, actor domain.Actor, name, slug, description string) (*domain.Organization, error) {
	f.lastActor = actor
	f.lastSlug = slug
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeOrgService) GetBySlug(ctx context.Context, actor domain.Actor, slug string) (*domain.OrganizationWithMembers, error) {
	f.lastActor = actor
	f.lastSlug = slug
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeOrgService) List(ctx context.Context, actor domain.Actor) ([]*domain.Organization, error) {
	f.lastActor = actor
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeOrgService) SetMemberRole(ctx context.Context, actor domain.Actor, slug, username string, role domain.MemberRole) error {
	f.lastActor = actor
	f.lastSlug = slug
	f.lastUsername = username
	f.lastRole = role
	return f.setRoleErr
}

func (f *fakeOrgService) RemoveMember(ctx context.Context, actor domain.Actor, slug, username string) error {
	f.lastActor = actor
	f.lastSlug = slug
	f.lastUsername = username
	return f.removeErr
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpResult  *domain.User
	signUpErr     error
	loginToken    string
	loginUser     *domain.User
	loginErr      error
	actorResult   domain.Actor
	actorErr      error
	profileResult *domain.User
	profileErr    error
	updateResult  *domain.User
	updateErr     error

	lastUsername string
	lastUpdate   domain.ProfileUpdate
}

func (f *fakeUserService) SignUp(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
	f.lastUsername = username
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeUserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	f.lastUsername = username
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeUserService) ActorFor(ctx context.Context, userID int64) (domain.Actor, error) {
	if f.actorErr != nil {
		return domain.Actor{}, f.actorErr
	}
	return f.actorResult, nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	f.lastUsername = username
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profileResult, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, actor domain.Actor, username string, update domain.ProfileUpdate) (*domain.User, error) {
	f.lastUsername = username
	f.lastUpdate = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

// fakePictureStorage implements domain.PictureStorage for handler tests.
type fakePictureStorage struct {
	url string
	err error

	lastFilename    string
	lastContentType string
	lastSize        int64
}

func (f *fakePictureStorage) UploadPicture(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	f.lastFilename = filename
	f.lastContentType = contentType
	f.lastSize = size
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}
