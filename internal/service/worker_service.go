package service

import (
	"context"
	"log"
	"time"

	"hospital-ops-backend/internal/models"
)

// pendingGracePeriod is how long a pending booking may sit unconfirmed before
// the sweeper treats it as the leftover of a crashed create-allocate flow.
const pendingGracePeriod = 5 * time.Minute

// WorkerService is the availability sweeper: a background reconciler that
// repairs state left behind by crashes or failed release calls. It releases
// allocations still active on completed or cancelled bookings, returns
// resources stuck in booked with no active allocation to available, and
// purges stale pending bookings whose allocation never confirmed. It only
// ever relaxes state; beds pending discharge still carry active allocations
// and are never touched.
type WorkerService struct {
	resourceRepo   ResourceStore
	allocationRepo AllocationStore
	bookingRepo    BookingStore
	engine         Allocator
	interval       time.Duration
}

func NewWorkerService(resourceRepo ResourceStore, allocationRepo AllocationStore, bookingRepo BookingStore, engine Allocator, interval time.Duration) *WorkerService {
	return &WorkerService{
		resourceRepo:   resourceRepo,
		allocationRepo: allocationRepo,
		bookingRepo:    bookingRepo,
		engine:         engine,
		interval:       interval,
	}
}

// Start begins the background sweep loop
func (w *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Availability sweeper started - running every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Availability sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *WorkerService) sweep() {
	w.releaseTerminalBookings()
	w.reconcileResourceStatus()
	w.purgeStalePending()
}

// releaseTerminalBookings retries the release for terminal bookings whose
// allocations are still active, e.g. after a release call failed post-commit
func (w *WorkerService) releaseTerminalBookings() {
	stuck, err := w.bookingRepo.ListTerminalWithActiveAllocations()
	if err != nil {
		log.Printf("Error fetching terminal bookings with active allocations: %v", err)
		return
	}

	for _, booking := range stuck {
		includeBeds := booking.Status == models.BookingCancelled
		if err := w.engine.ReleaseBooking(booking.ID, includeBeds); err != nil {
			log.Printf("Error releasing allocations for %s booking %d: %v", booking.Status, booking.ID, err)
		}
	}
	if len(stuck) > 0 {
		log.Printf("Sweeper released allocations for %d terminal booking(s)", len(stuck))
	}
}

// reconcileResourceStatus returns booked resources with no active allocation
// to available
func (w *WorkerService) reconcileResourceStatus() {
	booked, err := w.resourceRepo.ListByStatus(models.ResourceBooked)
	if err != nil {
		log.Printf("Error fetching booked resources: %v", err)
		return
	}

	reconciled := 0
	for _, resource := range booked {
		active, err := w.allocationRepo.CountActiveForResource(resource.ID)
		if err != nil {
			log.Printf("Error counting allocations for resource %d: %v", resource.ID, err)
			continue
		}
		if active > 0 {
			continue
		}

		if err := w.resourceRepo.UpdateStatus(resource.ID, models.ResourceAvailable); err != nil {
			log.Printf("Error reconciling resource %d: %v", resource.ID, err)
			continue
		}
		reconciled++
	}

	if reconciled > 0 {
		log.Printf("Sweeper reconciled %d resource(s) back to available", reconciled)
	}
}

// purgeStalePending drops pending bookings older than the grace period;
// their allocation never committed
func (w *WorkerService) purgeStalePending() {
	purged, err := w.bookingRepo.DeleteStalePending(time.Now().Add(-pendingGracePeriod))
	if err != nil {
		log.Printf("Error purging stale pending bookings: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Sweeper purged %d stale pending booking(s)", purged)
	}
}
