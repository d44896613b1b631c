package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

const eventColumns = `id, title, description, start_datetime, end_datetime, category_id, subcategory,
		host_organization_id, host_user, status, is_approved,
		has_free_food, has_free_swag, other_perks, employers_in_attendance,
		location, room, latitude, longitude, modality, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (title, description, start_datetime, end_datetime, category_id, subcategory,
			host_organization_id, host_user, status, is_approved,
			has_free_food, has_free_swag, other_perks, employers_in_attendance,
			location, room, latitude, longitude, modality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.StartDatetime, event.EndDatetime, event.CategoryID, event.Subcategory,
		event.HostOrganizationID, event.HostUser, event.Status, event.IsApproved,
		event.HasFreeFood, event.HasFreeSwag, event.OtherPerks, event.EmployersInAttendance,
		event.Location, event.Room, event.Latitude, event.Longitude, event.Modality,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.StartDatetime, &event.EndDatetime,
		&event.CategoryID, &event.Subcategory,
		&event.HostOrganizationID, &event.HostUser, &event.Status, &event.IsApproved,
		&event.HasFreeFood, &event.HasFreeSwag, &event.OtherPerks, &event.EmployersInAttendance,
		&event.Location, &event.Room, &event.Latitude, &event.Longitude, &event.Modality,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// buildEventFilter renders the filter into a WHERE clause and its arguments.
func buildEventFilter(filter domain.EventFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.HostOrganizationID != nil {
		add("host_organization_id = $%d", *filter.HostOrganizationID)
	}
	if filter.Modality != nil {
		add("modality = $%d", *filter.Modality)
	}
	if filter.HasFreeFood != nil {
		add("has_free_food = $%d", *filter.HasFreeFood)
	}
	if filter.HasFreeSwag != nil {
		add("has_free_swag = $%d", *filter.HasFreeSwag)
	}
	if filter.StartDate != nil {
		add("start_datetime >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("start_datetime <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.IsApproved != nil {
		add("is_approved = $%d", *filter.IsApproved)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}
	if filter.PublicOnly {
		if len(filter.AlsoHostOrgIDs) > 0 {
			args = append(args, pq.Array(filter.AlsoHostOrgIDs))
			conds = append(conds, fmt.Sprintf("((status = 'published' AND is_approved) OR host_organization_id = ANY($%d))", len(args)))
		} else {
			conds = append(conds, "(status = 'published' AND is_approved)")
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where, args := buildEventFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM events` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events` + where + fmt.Sprintf(`
		ORDER BY start_datetime ASC, id ASC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_datetime = $3, end_datetime = $4,
			category_id = $5, subcategory = $6,
			has_free_food = $7, has_free_swag = $8, other_perks = $9, employers_in_attendance = $10,
			location = $11, room = $12, latitude = $13, longitude = $14, modality = $15,
			updated_at = $16
		WHERE id = $17
	`
	res, err := r.DB.ExecContext(ctx, query,
		event.Title, event.Description, event.StartDatetime, event.EndDatetime,
		event.CategoryID, event.Subcategory,
		event.HasFreeFood, event.HasFreeSwag, event.OtherPerks, event.EmployersInAttendance,
		event.Location, event.Room, event.Latitude, event.Longitude, event.Modality,
		event.UpdatedAt, event.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *eventRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE events SET is_approved = $1, updated_at = NOW() WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *eventRepository) SetStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// requireRowAffected maps a zero-row mutation to ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
