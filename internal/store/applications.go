package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/hireboard/pkg/models"
)

// ApplicationCache keeps the last application lists fetched from the API,
// one set of rows per scope (an applicant's own list or a job's list).
type ApplicationCache struct {
	db *sql.DB
}

func NewApplicationCache(s *Store) *ApplicationCache {
	return &ApplicationCache{db: s.DB}
}

const insertApplication = `INSERT OR REPLACE INTO application_cache (scope, id, job_id, applicant_id, status,
	cover_letter, resume_url, created_at, updated_at, offer_details, offer_salary, offer_expiry_date, refreshed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectApplication = `SELECT id, job_id, applicant_id, status, cover_letter, resume_url, created_at, updated_at,
	offer_details, offer_salary, offer_expiry_date FROM application_cache`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putApplication(ctx context.Context, db execer, scope string, app models.JobApplication, now time.Time) error {
	_, err := db.ExecContext(ctx, insertApplication, scope, app.ID, app.JobID, app.ApplicantID, string(app.Status),
		app.CoverLetter, app.ResumeURL, app.CreatedAt, app.UpdatedAt, app.OfferDetails, app.OfferSalary,
		app.OfferExpiryDate, now)
	if err != nil {
		return fmt.Errorf("cache application %d: %w", app.ID, err)
	}
	return nil
}

// Replace swaps every row of scope for apps in one transaction
func (c *ApplicationCache) Replace(ctx context.Context, scope string, apps []models.JobApplication) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM application_cache WHERE scope=?`, scope); err != nil {
		return fmt.Errorf("clear scope %s: %w", scope, err)
	}

	now := time.Now().UTC()
	for _, app := range apps {
		if err := putApplication(ctx, tx, scope, app, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Put stores one application returned by the API in scope, replacing the
// previous copy. It becomes the copy Get returns.
func (c *ApplicationCache) Put(ctx context.Context, scope string, app models.JobApplication) error {
	return putApplication(ctx, c.db, scope, app, time.Now().UTC())
}

// Get returns the most recently refreshed copy of an application, or nil if
// it was never listed.
func (c *ApplicationCache) Get(ctx context.Context, id int) (*models.JobApplication, error) {
	query := selectApplication + ` WHERE id=? ORDER BY refreshed_at DESC, rowid DESC LIMIT 1`
	app, err := scanApplication(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return app, err
}

// List returns the cached rows of scope, newest first
func (c *ApplicationCache) List(ctx context.Context, scope string) ([]models.JobApplication, error) {
	query := selectApplication + ` WHERE scope=? ORDER BY created_at DESC, id DESC`
	rows, err := c.db.QueryContext(ctx, query, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// Clear drops every cached list
func (c *ApplicationCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM application_cache`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.JobApplication, error) {
	app := &models.JobApplication{}
	var status string
	var coverLetter, offerDetails sql.NullString
	var offerSalary sql.NullFloat64
	var createdAt, updatedAt, offerExpiry sql.NullTime
	err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &status, &coverLetter,
		&app.ResumeURL, &createdAt, &updatedAt, &offerDetails, &offerSalary, &offerExpiry)
	if err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	app.CoverLetter = coverLetter.String
	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	app.OfferDetails = offerDetails.String
	app.OfferSalary = offerSalary.Float64
	if offerExpiry.Valid {
		expiry := offerExpiry.Time
		app.OfferExpiryDate = &expiry
	}
	return app, nil
}
