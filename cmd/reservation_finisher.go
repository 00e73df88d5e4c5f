package main

import (
	"context"
	"log"
	"time"

	"stayBack/internal/repositories"
)

const reservationFinisherTimeout = 1 * time.Minute

// startReservationFinisher moves active reservations whose checkout date has
// passed into the finished state, once on boot and then daily.
func startReservationFinisher(ctx context.Context, repo *repositories.ReservationRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, reservationFinisherTimeout)
			finished, err := repo.FinishPastReservations(runCtx, time.Now().UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("reservation finisher: failed to finish past reservations: %v", err)
				}
			} else if finished > 0 && infoLog != nil {
				infoLog.Printf("reservation finisher: finished %d past reservations", finished)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
