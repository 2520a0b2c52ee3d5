// Package catalog is the persistence edge of the discovery service: a
// postgres-backed gig store (the source of truth the index is rebuilt
// from) and a redis result cache in front of the ranked endpoints.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gig-discovery/internal/common/database"
	"gig-discovery/internal/common/errors"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/models"
)

const gigColumns = `id, seller_id, title, description, category, subcategory,
	tags, rating, impressions, clicks, status, created_at, updated_at`

// Store reads and updates gig records in postgres.
type Store struct {
	db  *database.PostgresClient
	log logger.Logger
}

// NewStore creates a catalog store over an established connection.
func NewStore(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// ActiveGigs returns every active gig, the candidate set for search.
func (s *Store) ActiveGigs(ctx context.Context) ([]models.GigRecord, error) {
	return s.queryGigs(ctx,
		`SELECT `+gigColumns+` FROM gigs WHERE status = $1 ORDER BY created_at`,
		string(models.StatusActive))
}

// Snapshot returns the full catalog regardless of status, the input for an
// index rebuild.
func (s *Store) Snapshot(ctx context.Context) ([]models.GigRecord, error) {
	return s.queryGigs(ctx, `SELECT `+gigColumns+` FROM gigs ORDER BY created_at`)
}

// GigByID returns a single gig.
func (s *Store) GigByID(ctx context.Context, gigID string) (models.GigRecord, error) {
	if err := validateGigID(gigID); err != nil {
		return models.GigRecord{}, err
	}

	row := s.db.QueryRow(ctx, `SELECT `+gigColumns+` FROM gigs WHERE id = $1`, gigID)
	gig, err := scanGig(row)
	if err == sql.ErrNoRows {
		return models.GigRecord{}, errors.NewGigNotFoundError(gigID)
	}
	if err != nil {
		return models.GigRecord{}, errors.NewCatalogUnavailableError(err)
	}
	gig.Normalize()
	return gig, nil
}

// IncrementImpressions bumps a gig's impression counter.
func (s *Store) IncrementImpressions(ctx context.Context, gigID string) error {
	return s.increment(ctx, gigID,
		`UPDATE gigs SET impressions = impressions + 1, updated_at = NOW() WHERE id = $1`)
}

// IncrementClicks bumps a gig's click counter.
func (s *Store) IncrementClicks(ctx context.Context, gigID string) error {
	return s.increment(ctx, gigID,
		`UPDATE gigs SET clicks = clicks + 1, updated_at = NOW() WHERE id = $1`)
}

// Ping reports whether the store can reach postgres.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) increment(ctx context.Context, gigID, query string) error {
	if err := validateGigID(gigID); err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, query, gigID)
	if err != nil {
		return errors.NewCatalogUnavailableError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewCatalogUnavailableError(err)
	}
	if affected == 0 {
		return errors.NewGigNotFoundError(gigID)
	}
	return nil
}

func (s *Store) queryGigs(ctx context.Context, query string, args ...interface{}) ([]models.GigRecord, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(err)
	}
	defer rows.Close()

	gigs := []models.GigRecord{}
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, errors.NewCatalogUnavailableError(err)
		}
		gig.Normalize()
		gigs = append(gigs, gig)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogUnavailableError(err)
	}
	return gigs, nil
}

func validateGigID(gigID string) error {
	if _, err := uuid.Parse(gigID); err != nil {
		return errors.NewInvalidGigIDError(gigID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGig(row rowScanner) (models.GigRecord, error) {
	var (
		gig         models.GigRecord
		description sql.NullString
		subcategory sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		status      string
	)
	err := row.Scan(
		&gig.ID, &gig.SellerID, &gig.Title, &description, &gig.Category,
		&subcategory, pq.Array(&gig.Tags), &gig.Rating, &gig.Impressions,
		&gig.Clicks, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.GigRecord{}, err
	}
	gig.Description = description.String
	gig.Subcategory = subcategory.String
	gig.Status = models.Status(status)
	gig.CreatedAt = createdAt
	gig.UpdatedAt = updatedAt
	return gig, nil
}
