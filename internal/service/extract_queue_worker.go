package service

import (
	"context"
	"log"
	"sync"
	"time"

	"scanvault/internal/domain"
	"scanvault/internal/port"
)

// ExtractQueueConfig holds settings for the extraction queue worker.
type ExtractQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ExtractQueueWorker polls for queued assets and dispatches them through
// the extraction pipeline.
type ExtractQueueWorker struct {
	assetRepo  port.AssetRepository
	ownerRepo  port.OwnerRepository
	extraction ExtractionService
	email      port.EmailSender
	cfg        ExtractQueueConfig
	wg         sync.WaitGroup
}

// NewExtractQueueWorker creates a new ExtractQueueWorker.
func NewExtractQueueWorker(
	assetRepo port.AssetRepository,
	ownerRepo port.OwnerRepository,
	extraction ExtractionService,
	email port.EmailSender,
	cfg ExtractQueueConfig,
) *ExtractQueueWorker {
	return &ExtractQueueWorker{
		assetRepo:  assetRepo,
		ownerRepo:  ownerRepo,
		extraction: extraction,
		email:      email,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight extractions have finished.
func (w *ExtractQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("extractQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("extractQueueWorker: shutting down, waiting for in-flight extractions...")
			w.wg.Wait()
			log.Printf("extractQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			assets, err := w.assetRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("extractQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range assets {
				asset := assets[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight extractions complete even during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("extractQueueWorker: dispatching asset %s (attempt %d)", asset.ID, asset.Attempts)
					w.processAsset(jobCtx, &asset)
				}()
			}
		}
	}
}

func (w *ExtractQueueWorker) processAsset(ctx context.Context, asset *domain.Asset) {
	owner, err := w.ownerRepo.GetByID(ctx, asset.OwnerID)
	if err != nil {
		log.Printf("extractQueueWorker: owner lookup failed for asset %s: %v", asset.ID, err)
		w.failAsset(ctx, asset, nil, "owner lookup failed")
		return
	}

	job := &domain.ExtractionJob{
		DocumentID:    asset.ID,
		OwnerID:       asset.OwnerID,
		PagePaths:     asset.PagePaths,
		Mode:          owner.Mode,
		ProviderID:    owner.Provider,
		CredentialRef: owner.CredentialRef,
	}

	if _, err := w.extraction.ProcessJob(ctx, job); err != nil {
		if asset.Attempts < w.cfg.MaxRetries {
			log.Printf("extractQueueWorker: asset %s failed (attempt %d), requeueing: %v",
				asset.ID, asset.Attempts, err)
			if qErr := w.assetRepo.MarkQueued(ctx, asset.OwnerID, asset.ID); qErr != nil {
				log.Printf("extractQueueWorker: requeue failed for %s: %v", asset.ID, qErr)
			}
			return
		}
		w.failAsset(ctx, asset, owner, err.Error())
	}
}

// failAsset marks the asset terminally failed and notifies the owner.
func (w *ExtractQueueWorker) failAsset(ctx context.Context, asset *domain.Asset, owner *domain.Owner, reason string) {
	log.Printf("extractQueueWorker: asset %s terminally failed: %s", asset.ID, reason)
	if err := w.assetRepo.MarkFailed(ctx, asset.ID, reason); err != nil {
		log.Printf("extractQueueWorker: MarkFailed error for %s: %v", asset.ID, err)
	}
	if owner == nil {
		return
	}
	if err := w.email.SendExtractionFailed(ctx, owner.Email, owner.DisplayName, asset.FileName, reason); err != nil {
		log.Printf("extractQueueWorker: failure email for %s not sent: %v", asset.ID, err)
	}
}
