package stats

import (
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"
)

// Compute buckets certifications and work-permit expiry dates relative
// to the current time.
func Compute(workers []worker.Worker, certs []certification.Certification, activeCourses int) StatsResponse {
	return computeAt(workers, certs, activeCourses, time.Now())
}

func computeAt(
	workers []worker.Worker,
	certs []certification.Certification,
	activeCourses int,
	now time.Time,
) StatsResponse {
	resp := StatsResponse{
		TotalWorkers:        len(workers),
		ActiveCourses:       activeCourses,
		TotalCertifications: len(certs),
	}

	for _, cert := range certs {
		switch certification.DeriveStatus(cert.ExpiryDate, now) {
		case certification.StatusExpiringSoon:
			resp.ExpiringSoon++
		case certification.StatusExpired:
			resp.Expired++
		}
	}

	// Work permits compare the expiry instant directly: a permit that
	// lapsed earlier today is already expired, not expiring soon. A
	// worker without a permit expiry date is simply not counted.
	windowEnd := now.AddDate(0, 0, certification.ExpiringSoonWindowDays)
	for _, w := range workers {
		if w.DateOfExpiry == nil {
			continue
		}
		switch expiry := *w.DateOfExpiry; {
		case !expiry.After(now):
			resp.PermitExpired++
		case !expiry.After(windowEnd):
			resp.PermitExpiringSoon++
		}
	}

	return resp
}
