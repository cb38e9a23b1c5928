package rooms

import (
	"log"
	"time"

	"unicare/backend/internal/models"
)

// Sweeper closes WAITING rooms that sat unclaimed for longer than MaxAge.
type Sweeper struct {
	Service  *Service
	MaxAge   time.Duration
	Interval time.Duration
}

// NewSweeper creates a sweeper with the given expiry and poll interval.
func NewSweeper(svc *Service, maxAge, interval time.Duration) *Sweeper {
	return &Sweeper{Service: svc, MaxAge: maxAge, Interval: interval}
}

// Run loops until the process exits, expiring stale WAITING rooms each tick.
// Intended to run as a goroutine from main.
func (w *Sweeper) Run() {
	log.Println("Waiting-room sweeper started.")
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for range ticker.C {
		w.SweepOnce()
	}
}

// SweepOnce closes every WAITING room older than MaxAge, removes it from the
// waiting registry, and audits the expiry.
func (w *Sweeper) SweepOnce() {
	cutoff := time.Now().Add(-w.MaxAge)
	expired, err := w.Service.Storage.ExpireWaitingRooms(cutoff)
	if err != nil {
		log.Printf("ERROR: Waiting-room sweep failed: %v", err)
		return
	}
	for _, room := range expired {
		if err := w.Service.Storage.RemoveRoomFromWaitingSet(room.ID); err != nil {
			log.Printf("WARNING: Expired room %s not removed from waiting registry: %v", room.ID, err)
		}
		w.Service.Storage.AppendAudit(&models.AuditLog{
			Action:    "room.expire",
			SubjectID: room.ID,
			Detail:    "unclaimed past expiry",
		})
		w.Service.publish(models.RoomEvent{RoomID: room.ID, Type: models.EventRoomClosed})
	}
	if len(expired) > 0 {
		log.Printf("Swept %d stale waiting rooms.", len(expired))
	}
}
