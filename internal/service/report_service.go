package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/logger"
	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// ReportService implements the ownership-guarded report lifecycle. All
// mutations of existing reports go through single conditional statements in
// the repository, so a non-owner's attempt surfaces as ErrNotFound.
type ReportService struct {
	reports repository.Reports
	users   repository.Users
	media   Media
	log     *logger.Logger
}

func NewReportService(reports repository.Reports, users repository.Users, media Media, log *logger.Logger) *ReportService {
	return &ReportService{reports: reports, users: users, media: media, log: log}
}

var _ Reports = (*ReportService)(nil)

// Create validates the input, snapshots the owner's contact number onto the
// report, uploads the optional image, and inserts the row. The owner is the
// authenticated caller and is never changed afterwards.
func (s *ReportService) Create(ctx context.Context, ownerID int, in CreateReportInput) (models.Report, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	location := strings.TrimSpace(in.Location)
	status := strings.TrimSpace(in.Status)

	if title == "" || content == "" || location == "" || status == "" {
		return models.Report{}, invalidInput("title, content, location, and status are required")
	}
	if !models.ValidStatus(status) {
		return models.Report{}, invalidInput("status must be Lost, Found, or Returned")
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return models.Report{}, err
	}
	if owner == nil {
		return models.Report{}, fmt.Errorf("user %w", ErrNotFound)
	}

	now := time.Now().UTC()
	rep := models.Report{
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Location:  location,
		Status:    status,
		Number:    owner.Number, // snapshot, not re-synced with profile edits
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Image != nil {
		asset, err := s.media.Store(ctx, ownerID, *in.Image)
		if err != nil {
			return models.Report{}, err
		}
		rep.ImageKey = asset.Key
		rep.ImageURL = asset.URL
	}

	id, err := s.reports.Insert(ctx, rep)
	if err != nil {
		// the row never existed; don't leave the uploaded asset behind
		if rep.ImageKey != "" {
			s.removeAsset(ctx, rep.ImageKey)
		}
		return models.Report{}, err
	}
	rep.ID = id
	return rep, nil
}

// ListByOwner returns the user's reports in insertion order.
func (s *ReportService) ListByOwner(ctx context.Context, userID int) ([]models.Report, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	return s.reports.ListByOwner(ctx, userID)
}

// ListAll returns every report newest-first with the owner's public identity
// embedded. An empty collection is reported as ErrNotFound.
func (s *ReportService) ListAll(ctx context.Context) ([]models.ReportWithOwner, error) {
	all, err := s.reports.ListAllWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("reports %w", ErrNotFound)
	}
	return all, nil
}

// Update changes content and/or status through one conditional UPDATE keyed
// on id+owner. Nil means "leave untouched"; at least one field is required.
func (s *ReportService) Update(ctx context.Context, callerID, reportID int, content, status *string) (models.Report, error) {
	if content == nil && status == nil {
		return models.Report{}, invalidInput("content or status is required")
	}
	if status != nil && !models.ValidStatus(*status) {
		return models.Report{}, invalidInput("status must be Lost, Found, or Returned")
	}

	ok, err := s.reports.UpdateOwned(ctx, reportID, callerID, content, status, time.Now().UTC())
	if err != nil {
		return models.Report{}, err
	}
	if !ok {
		return models.Report{}, fmt.Errorf("report %w", ErrNotFound)
	}

	rep, err := s.reports.GetOwned(ctx, reportID, callerID)
	if err != nil {
		return models.Report{}, err
	}
	if rep == nil {
		return models.Report{}, fmt.Errorf("report %w", ErrNotFound)
	}
	return *rep, nil
}

// Delete removes the report record first, then the stored image. The record
// delete is the single conditional statement that decides the winner under
// concurrent calls; asset removal afterwards is best-effort since S3 deletes
// are idempotent and an orphaned object is preferable to a dangling row.
func (s *ReportService) Delete(ctx context.Context, callerID, reportID int) error {
	rep, err := s.reports.GetOwned(ctx, reportID, callerID)
	if err != nil {
		return err
	}
	if rep == nil {
		return fmt.Errorf("report %w", ErrNotFound)
	}

	ok, err := s.reports.DeleteOwned(ctx, reportID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		// lost the race to a concurrent delete
		return fmt.Errorf("report %w", ErrNotFound)
	}

	if rep.ImageKey != "" {
		s.removeAsset(ctx, rep.ImageKey)
	}
	return nil
}

// AttachImage uploads a new image and swaps it onto the report under the
// ownership predicate, then clears out the replaced asset.
func (s *ReportService) AttachImage(ctx context.Context, callerID, reportID int, up ImageUpload) (models.Report, error) {
	prev, err := s.reports.GetOwned(ctx, reportID, callerID)
	if err != nil {
		return models.Report{}, err
	}
	if prev == nil {
		return models.Report{}, fmt.Errorf("report %w", ErrNotFound)
	}

	asset, err := s.media.Store(ctx, callerID, up)
	if err != nil {
		return models.Report{}, err
	}

	ok, err := s.reports.SetImageOwned(ctx, reportID, callerID, asset.Key, asset.URL, time.Now().UTC())
	if err != nil || !ok {
		// report vanished between the read and the update; don't keep the upload
		s.removeAsset(ctx, asset.Key)
		if err != nil {
			return models.Report{}, err
		}
		return models.Report{}, fmt.Errorf("report %w", ErrNotFound)
	}

	if prev.ImageKey != "" && prev.ImageKey != asset.Key {
		s.removeAsset(ctx, prev.ImageKey)
	}

	rep, err := s.reports.GetOwned(ctx, reportID, callerID)
	if err != nil {
		return models.Report{}, err
	}
	if rep == nil {
		return models.Report{}, fmt.Errorf("report %w", ErrNotFound)
	}
	return *rep, nil
}

func (s *ReportService) removeAsset(ctx context.Context, key string) {
	if err := s.media.Remove(ctx, key); err != nil && s.log != nil {
		s.log.Errorw("asset_remove_failed", "key", key, "err", err)
	}
}
