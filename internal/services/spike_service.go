package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

const (
	// spikeActiveWindow and spikeMonitoringWindow are the age bands that
	// derive a spike's temporal status from its record's creation time.
	spikeActiveWindow     = 2 * time.Hour
	spikeMonitoringWindow = 6 * time.Hour

	// donorUtilizationCeiling is the cutoff under which a nearby inventory
	// qualifies as a reallocation donor for a critical spike.
	donorUtilizationCeiling = 70.0
)

// SpikeMagnitude compares the most recent demand sample to the mean of the
// trailing baseline window: the previous 6 samples when at least 7 exist,
// otherwise everything before the last. The result is clamped to >= 0 and a
// zero baseline yields zero, never a division fault.
func SpikeMagnitude(history []*models.DemandHistoryRecord) float64 {
	if len(history) < 2 {
		return 0
	}

	sorted := make([]*models.DemandHistoryRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	recent := sorted[len(sorted)-1].DemandQuantity

	baselineStart := 0
	if len(sorted) >= 7 {
		baselineStart = len(sorted) - 7
	}
	window := sorted[baselineStart : len(sorted)-1]
	var sum float64
	for _, rec := range window {
		sum += rec.DemandQuantity
	}
	baseline := sum / float64(len(window))
	if baseline == 0 {
		return 0
	}

	magnitude := (recent - baseline) / baseline * 100
	if magnitude < 0 {
		return 0
	}
	return magnitude
}

// ClassifySeverity maps a spike magnitude, the inventory's utilization and
// its status tag to an alert severity. Pure: same inputs, same output.
func ClassifySeverity(magnitude, utilization float64, status models.InventoryStatus) models.AlertSeverity {
	switch {
	case (magnitude > 100 && utilization > 85) || status == models.InventoryStatusCritical:
		return models.AlertSeverityCritical
	case magnitude > 150 || (magnitude > 80 && utilization > 90):
		return models.AlertSeverityCritical
	case magnitude > 50 && utilization > 70:
		return models.AlertSeverityWarning
	case magnitude > 75 || utilization > 80:
		return models.AlertSeverityWarning
	default:
		return models.AlertSeverityLow
	}
}

// SpikeState derives the temporal status of a spike from the age of its
// monitoring record. A missing creation timestamp falls back to active for
// critical spikes and monitoring otherwise.
func SpikeState(createdAt time.Time, now time.Time, severity models.AlertSeverity) models.SpikeState {
	if createdAt.IsZero() {
		if severity == models.AlertSeverityCritical {
			return models.SpikeStateActive
		}
		return models.SpikeStateMonitoring
	}

	age := now.Sub(createdAt)
	switch {
	case age < spikeActiveWindow && (severity == models.AlertSeverityCritical || severity == models.AlertSeverityWarning):
		return models.SpikeStateActive
	case age < spikeMonitoringWindow:
		return models.SpikeStateMonitoring
	default:
		return models.SpikeStateResolved
	}
}

// FormatSpikePercentage renders a magnitude the way the dashboard shows it.
func FormatSpikePercentage(magnitude float64) string {
	if magnitude <= 0 {
		return "0%"
	}
	return fmt.Sprintf("+%d%%", int(magnitude))
}

// SpikeService classifies demand spikes across the network and proposes a
// recommended action for each.
type SpikeService struct {
	store recordstore.Store
	now   func() time.Time
}

func NewSpikeService(store recordstore.Store) *SpikeService {
	return &SpikeService{store: store, now: time.Now}
}

// MonitoringReport classifies every spike record against fresh inventory and
// demand state and summarizes the result. Records whose inventory cannot be
// read are skipped rather than failing the whole report.
func (s *SpikeService) MonitoringReport(ctx context.Context) (*models.SpikeMonitoringReport, error) {
	records, err := s.store.ListSpikeRecords(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.SpikeMonitoringReport{Spikes: []models.SpikeEntry{}}
	for _, rec := range records {
		inv, err := s.store.GetInventory(ctx, rec.InventoryID)
		if err != nil {
			log.Printf("spike: skipping record %d, inventory %d unavailable: %v", rec.ID, rec.InventoryID, err)
			continue
		}

		history, err := s.store.DemandHistoryByInventory(ctx, rec.InventoryID)
		if err != nil {
			log.Printf("spike: skipping record %d, demand history unavailable: %v", rec.ID, err)
			continue
		}

		magnitude := SpikeMagnitude(history)
		utilization := inv.Utilization()
		severity := ClassifySeverity(magnitude, utilization, inv.Status)

		entry := models.SpikeEntry{
			ID:                 rec.ID,
			Timestamp:          rec.CreatedAt,
			InventoryName:      inv.Name,
			Severity:           severity,
			DemandSpike:        FormatSpikePercentage(magnitude),
			CurrentUtilization: utilization,
			Status:             SpikeState(rec.CreatedAt, s.now(), severity),
			RecommendedAction:  s.recommendAction(ctx, severity, inv),
		}
		report.Spikes = append(report.Spikes, entry)

		report.Summary.TotalSpikes++
		if entry.Severity == models.AlertSeverityCritical {
			report.Summary.CriticalSpikes++
		}
		if entry.Status == models.SpikeStateActive {
			report.Summary.ActiveSpikes++
		}
	}
	return report, nil
}

// recommendAction proposes the operator response. Critical spikes search for
// a same-state donor location with an inventory under the utilization
// ceiling; when none exists, emergency procurement is the only option left.
func (s *SpikeService) recommendAction(ctx context.Context, severity models.AlertSeverity, inv *models.Inventory) string {
	switch severity {
	case models.AlertSeverityCritical:
		if donor, ok := s.nearbyDonorLocation(ctx, inv); ok {
			return fmt.Sprintf("Immediate reallocation from %s to %s", donor.City, inv.Name)
		}
		return fmt.Sprintf("Critical: Activate emergency procurement for %s", inv.Name)
	case models.AlertSeverityWarning:
		return fmt.Sprintf("Monitor closely and prepare for possible reallocation at %s", inv.Name)
	default:
		return fmt.Sprintf("Continue monitoring demand patterns at %s", inv.Name)
	}
}

// nearbyDonorLocation finds a location in the same state but a different
// city holding at least one inventory under the donor utilization ceiling.
func (s *SpikeService) nearbyDonorLocation(ctx context.Context, inv *models.Inventory) (*models.Location, bool) {
	home, err := s.store.GetLocation(ctx, inv.LocationID)
	if err != nil {
		log.Printf("spike: location %d unavailable for inventory %d: %v", inv.LocationID, inv.ID, err)
		return nil, false
	}

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		log.Printf("spike: listing locations failed: %v", err)
		return nil, false
	}

	for _, loc := range locations {
		if loc.City == home.City || loc.State != home.State {
			continue
		}
		inventories, err := s.store.GetInventoriesByLocation(ctx, loc.ID)
		if err != nil {
			continue
		}
		for _, candidate := range inventories {
			if candidate.Utilization() < donorUtilizationCeiling {
				return loc, true
			}
		}
	}
	return nil, false
}
