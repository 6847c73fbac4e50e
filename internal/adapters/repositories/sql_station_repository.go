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

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Postgres-backed implementation of the StationRepository port.
type SQLStationRepository struct{ DB *sql.DB }

func NewSQLStationRepository(db *sql.DB) *SQLStationRepository {
	return &SQLStationRepository{DB: db}
}

const stationColumns = `id, name, phone, maps_link, lat, lng, created_at`

func (s *SQLStationRepository) CreateStation(ctx context.Context, st *domain.Station) (err error) {
	defer obs.Time(ctx, "stations.Create")(&err)

	if s.DB == nil {
		return errors.New("sql station repository: DB is nil")
	}

	query := `
	INSERT INTO stations (` + stationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = s.DB.ExecContext(ctx, query,
		st.ID, st.Name, st.Phone, st.MapsLink, st.Location.Lat, st.Location.Lng, st.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("create station phone=%q: %w", st.Phone, domain.ErrDuplicatePhone)
		}
		return fmt.Errorf("create station: insert: %w", err)
	}

	return nil
}

func (s *SQLStationRepository) GetStation(ctx context.Context, id string) (_ *domain.Station, err error) {
	defer obs.Time(ctx, "stations.Get")(&err)

	return s.queryOne(ctx, `SELECT `+stationColumns+` FROM stations WHERE id = $1;`, id)
}

func (s *SQLStationRepository) FindStationByPhone(ctx context.Context, phone string) (_ *domain.Station, err error) {
	defer obs.Time(ctx, "stations.FindByPhone")(&err)

	return s.queryOne(ctx, `SELECT `+stationColumns+` FROM stations WHERE phone = $1;`, phone)
}

// Return all stations ordered by name.
func (s *SQLStationRepository) ListStations(ctx context.Context) (_ []*domain.Station, err error) {
	defer obs.Time(ctx, "stations.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql station repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY name, id;`)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0, 32)
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("list stations: %w", err)
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

func (s *SQLStationRepository) queryOne(ctx context.Context, query string, arg string) (*domain.Station, error) {
	if s.DB == nil {
		return nil, errors.New("sql station repository: DB is nil")
	}

	st, err := scanStation(s.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get station: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(r rowScanner) (*domain.Station, error) {
	var st domain.Station
	if err := r.Scan(&st.ID, &st.Name, &st.Phone, &st.MapsLink, &st.Location.Lat, &st.Location.Lng, &st.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan station row: %w", err)
	}
	return &st, nil
}
