package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/platform/obs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres-backed implementation of the AlertRepository port.
type SQLAlertRepository struct{ DB *sql.DB }

func NewSQLAlertRepository(db *sql.DB) *SQLAlertRepository {
	return &SQLAlertRepository{DB: db}
}

const alertColumns = `id, station_id, type, lat, lng, status, user_id, user_phone, created_at`

func (s *SQLAlertRepository) CreateAlert(ctx context.Context, a *domain.Alert) (err error) {
	defer obs.Time(ctx, "alerts.Create")(&err)

	if s.DB == nil {
		return errors.New("sql alert repository: DB is nil")
	}

	query := `
	INSERT INTO alerts (` + alertColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		a.ID, a.StationID, a.Type, a.Location.Lat, a.Location.Lng, string(a.Status), a.UserID, a.UserPhone, a.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return fmt.Errorf("create alert id=%q: %w", a.ID, domain.ErrDuplicateAlert)
			case pgForeignKeyViolation:
				return fmt.Errorf("create alert: station %q: %w", a.StationID, domain.ErrStationNotFound)
			}
		}
		return fmt.Errorf("create alert: insert alert_id=%s: %w", a.ID, err)
	}

	return nil
}

func (s *SQLAlertRepository) GetAlert(ctx context.Context, id string) (_ *domain.Alert, err error) {
	defer obs.Time(ctx, "alerts.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sql alert repository: DB is nil")
	}

	a, err := scanAlert(s.DB.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (s *SQLAlertRepository) ListStationAlerts(ctx context.Context, stationID string) (_ []*domain.Alert, err error) {
	defer obs.Time(ctx, "alerts.ListStation")(&err)

	if s.DB == nil {
		return nil, errors.New("sql alert repository: DB is nil")
	}

	query := `
	SELECT ` + alertColumns + `
	FROM alerts
	WHERE station_id = $1
	ORDER BY created_at DESC, id;
	`
	rows, err := s.DB.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("list station alerts: query alerts table: %w", err)
	}
	defer rows.Close()

	alerts := make([]*domain.Alert, 0, 64)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("list station alerts: %w", err)
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list station alerts: row iteration: %w", err)
	}

	return alerts, nil
}

func (s *SQLAlertRepository) UpdateAlertStatus(ctx context.Context, id string, status domain.AlertStatus) (_ *domain.Alert, err error) {
	defer obs.Time(ctx, "alerts.UpdateStatus")(&err)

	if s.DB == nil {
		return nil, errors.New("sql alert repository: DB is nil")
	}

	query := `
	UPDATE alerts SET status = $2
	WHERE id = $1
	RETURNING ` + alertColumns + `;
	`
	a, err := scanAlert(s.DB.QueryRowContext(ctx, query, id, string(status)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update alert status: %w", err)
	}
	return a, nil
}

func scanAlert(r rowScanner) (*domain.Alert, error) {
	var a domain.Alert
	var status string
	if err := r.Scan(&a.ID, &a.StationID, &a.Type, &a.Location.Lat, &a.Location.Lng, &status, &a.UserID, &a.UserPhone, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan alert row: %w", err)
	}
	a.Status = domain.AlertStatus(status)
	return &a, nil
}
