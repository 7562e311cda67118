package service

import "time"

// SetClock replaces the time source of a PhotoService built by
// NewPhotoService.
func SetClock(svc PhotoService, now func() time.Time) {
	svc.(*photoService).now = now
}
