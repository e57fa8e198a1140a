package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/metrics"
	"github.com/OFFIS-RIT/pedigree/backend/internal/storage"
	"github.com/OFFIS-RIT/pedigree/backend/internal/util"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/leaselock"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	ExportPending   = "pending"
	ExportRunning   = "running"
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// QueueExportMsg is the body published to ExportQueue.
type QueueExportMsg struct {
	Message  string `json:"message,omitempty"`
	ExportID string `json:"export_id"`
}

// ExportJobs is the pedigree_exports access used by the worker. *db.Queries implements it.
type ExportJobs interface {
	GetPedigreeExport(ctx context.Context, id string) (db.PedigreeExport, error)
	UpdatePedigreeExportStatus(ctx context.Context, arg db.UpdatePedigreeExportStatusParams) error
	CompletePedigreeExport(ctx context.Context, arg db.CompletePedigreeExportParams) error
	FailPedigreeExport(ctx context.Context, arg db.FailPedigreeExportParams) error
}

// Locker is implemented by *leaselock.Client.
type Locker interface {
	WithLease(ctx context.Context, key string, opts leaselock.Options, fn func(ctx context.Context) error) error
}

// PedigreeLockKey serialises exports of the same proband.
func PedigreeLockKey(probandID int64) string {
	return fmt.Sprintf("pedigree:%d", probandID)
}

// ExportProcessor builds pedigrees for queued export jobs and stores them as JSON objects.
type ExportProcessor struct {
	Jobs    ExportJobs
	Builder *pedigree.Builder
	Objects storage.ObjectStore
	Locks   Locker

	UploadTries   int
	UploadBackoff util.Backoff
	LeaseTTL      time.Duration
}

// ProcessExportMessage handles one message of ExportQueue.
func (p *ExportProcessor) ProcessExportMessage(ctx context.Context, body string) error {
	var msg QueueExportMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("%w: failed to unmarshal export message: %v", ErrPermanent, err)
	}
	if msg.ExportID == "" {
		return fmt.Errorf("%w: export message without export_id", ErrPermanent)
	}

	job, err := p.Jobs.GetPedigreeExport(ctx, msg.ExportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: export %s does not exist", ErrPermanent, msg.ExportID)
		}
		return fmt.Errorf("failed to get export: %w", err)
	}
	if job.Status == ExportCompleted {
		logger.Info("[Export] Export already completed, skipping", "export_id", job.ID)
		return nil
	}

	opts := leaselock.Options{TTL: p.LeaseTTL, TokenPrefix: "export-"}
	err = p.Locks.WithLease(ctx, PedigreeLockKey(job.ProbandID), opts, func(ctx context.Context) error {
		return p.runExport(ctx, job)
	})
	if err != nil {
		if errors.Is(err, leaselock.ErrBusy) {
			logger.Info("[Export] Proband is being exported by another worker", "export_id", job.ID, "proband", job.ProbandID)
			return err
		}

		failErr := p.Jobs.FailPedigreeExport(ctx, db.FailPedigreeExportParams{
			ID:    job.ID,
			Error: pgtype.Text{String: err.Error(), Valid: true},
		})
		if failErr != nil {
			logger.Error("[Export] Failed to mark export as failed", "export_id", job.ID, "err", failErr)
		}
		metrics.ObserveExport(ExportFailed)
		return err
	}

	metrics.ObserveExport(ExportCompleted)
	return nil
}

func (p *ExportProcessor) runExport(ctx context.Context, job db.PedigreeExport) error {
	err := p.Jobs.UpdatePedigreeExportStatus(ctx, db.UpdatePedigreeExportStatusParams{
		ID:     job.ID,
		Status: ExportRunning,
	})
	if err != nil {
		return fmt.Errorf("failed to update export status: %w", err)
	}

	start := time.Now()
	res, err := p.Builder.Build(ctx, job.ProbandID, pedigree.BuildOptions{MaxNodes: int(job.MaxNodes)})
	if err != nil {
		metrics.ObserveBuildError("worker")
		return fmt.Errorf("failed to build pedigree: %w", err)
	}
	metrics.ObserveBuild("worker", time.Since(start), len(res.Graph.Nodes), len(res.Graph.Links), res.Truncated)

	data, err := json.Marshal(res.Graph)
	if err != nil {
		return fmt.Errorf("failed to marshal pedigree: %w", err)
	}

	key := storage.ExportKey(job.ID)
	tries := p.UploadTries
	if tries <= 0 {
		tries = 3
	}
	err = util.RetryErrWithContext(ctx, tries, p.UploadBackoff, func(ctx context.Context) error {
		return p.Objects.Put(ctx, key, data, "application/json")
	})
	if err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}

	err = p.Jobs.CompletePedigreeExport(ctx, db.CompletePedigreeExportParams{
		ID:        job.ID,
		ObjectKey: pgtype.Text{String: key, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to complete export: %w", err)
	}

	logger.Info(
		"[Export] Stored pedigree export",
		"export_id", job.ID,
		"proband", job.ProbandID,
		"nodes", len(res.Graph.Nodes),
		"truncated", res.Truncated,
		"key", key,
	)
	return nil
}
