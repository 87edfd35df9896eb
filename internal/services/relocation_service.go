package services

import (
	"context"
	"fmt"
	"log"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// RelocationService carries a relocation from proposal through completion.
// The record store is the source of truth for both the relocation record and
// the inventory volumes; every execution re-reads state fresh rather than
// trusting anything from the tick that proposed it.
type RelocationService struct {
	store recordstore.Store
}

func NewRelocationService(store recordstore.Store) *RelocationService {
	return &RelocationService{store: store}
}

// Propose records the plan as a pending relocation. Breach-triggered
// relocations are always high priority.
func (s *RelocationService) Propose(ctx context.Context, plan *models.RelocationPlan) (*models.RelocationMessage, error) {
	if plan.NoCandidate() {
		return nil, fmt.Errorf("relocation plan has no target inventory")
	}
	if plan.Quantity <= 0 {
		return nil, fmt.Errorf("relocation quantity must be positive, got %d", plan.Quantity)
	}

	rel := &models.RelocationMessage{
		FromInventoryID: plan.SourceInventoryID,
		ToInventoryID:   plan.TargetInventoryID,
		Quantity:        plan.Quantity,
		Priority:        models.RelocationPriorityHigh,
		Status:          models.RelocationStatusPending,
	}
	if err := s.store.CreateRelocation(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// Execute applies a pending relocation: it moves the quantity between the
// two inventories and marks the record completed. Total volume across the
// pair is conserved by construction.
//
// Re-executing an already-completed relocation is a no-op, so the volume
// delta can never be applied twice. Any fetch or update failure leaves the
// record pending with no partial mutation committed.
func (s *RelocationService) Execute(ctx context.Context, relocationID int64) error {
	rel, err := s.store.GetRelocation(ctx, relocationID)
	if err != nil {
		return err
	}

	switch rel.Status {
	case models.RelocationStatusCompleted:
		log.Printf("relocation %d already completed, skipping", relocationID)
		return nil
	case models.RelocationStatusCancelled:
		return fmt.Errorf("relocation %d is cancelled", relocationID)
	}

	// Always re-fetch both sides immediately before mutating; the volumes
	// from the proposing tick are stale by now.
	source, err := s.store.GetInventory(ctx, rel.FromInventoryID)
	if err != nil {
		return fmt.Errorf("fetch source inventory %d: %w", rel.FromInventoryID, err)
	}
	target, err := s.store.GetInventory(ctx, rel.ToInventoryID)
	if err != nil {
		return fmt.Errorf("fetch target inventory %d: %w", rel.ToInventoryID, err)
	}

	quantity := float64(rel.Quantity)
	if err := s.store.UpdateInventoryVolumes(ctx, source.ID,
		source.VolumeOccupied-quantity, source.VolumeAvailable+quantity); err != nil {
		return fmt.Errorf("update source inventory %d: %w", source.ID, err)
	}
	if err := s.store.UpdateInventoryVolumes(ctx, target.ID,
		target.VolumeOccupied+quantity, target.VolumeAvailable-quantity); err != nil {
		// Roll the source back so no partial volume mutation survives the
		// failed execution.
		if rbErr := s.store.UpdateInventoryVolumes(ctx, source.ID,
			source.VolumeOccupied, source.VolumeAvailable); rbErr != nil {
			log.Printf("relocation %d: failed to restore source %d after target failure: %v",
				relocationID, source.ID, rbErr)
		}
		return fmt.Errorf("update target inventory %d: %w", target.ID, err)
	}

	if err := s.store.UpdateRelocationStatus(ctx, relocationID, models.RelocationStatusCompleted); err != nil {
		return fmt.Errorf("mark relocation %d completed: %w", relocationID, err)
	}

	log.Printf("relocation %d executed: moved %d units from inventory %d to %d",
		relocationID, rel.Quantity, rel.FromInventoryID, rel.ToInventoryID)
	return nil
}

// Cancel transitions a pending relocation to cancelled. Completed records
// cannot be cancelled.
func (s *RelocationService) Cancel(ctx context.Context, relocationID int64) error {
	rel, err := s.store.GetRelocation(ctx, relocationID)
	if err != nil {
		return err
	}
	if rel.Status != models.RelocationStatusPending {
		return fmt.Errorf("relocation %d is %s, only pending relocations can be cancelled", relocationID, rel.Status)
	}
	return s.store.UpdateRelocationStatus(ctx, relocationID, models.RelocationStatusCancelled)
}
