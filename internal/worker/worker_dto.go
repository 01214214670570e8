package worker

import "github.com/pandiaraajan-hub/workerprolite/internal/certification"

type CreateWorkerRequest struct {
	WorkersID     string `json:"workers_id" binding:"required"`
	NameOfWorkers string `json:"name_of_workers" binding:"required"`
	Entity        string `json:"entity"`
	SerialNumber  string `json:"serial_number"`
	Designation   string `json:"designation"`
	ContactNo     string `json:"contact_no"`
	Nationality   string `json:"nationality"`
	WPNo          string `json:"wp_no"`
	NRICFinNo     string `json:"nric_fin_no"`
	DateOfExpiry  string `json:"date_of_expiry"` // YYYY-MM-DD, optional
	DateOfBirth   string `json:"date_of_birth"`  // YYYY-MM-DD, optional

	// Certifications issued together with the worker record.
	Certifications []certification.CreateCertificationRequest `json:"certifications"`
}

// UpdateWorkerRequest carries a partial update; nil fields are left
// untouched so a sparse PATCH never clears data.
type UpdateWorkerRequest struct {
	WorkersID     *string `json:"workers_id"`
	NameOfWorkers *string `json:"name_of_workers"`
	Entity        *string `json:"entity"`
	SerialNumber  *string `json:"serial_number"`
	Designation   *string `json:"designation"`
	ContactNo     *string `json:"contact_no"`
	Nationality   *string `json:"nationality"`
	WPNo          *string `json:"wp_no"`
	NRICFinNo     *string `json:"nric_fin_no"`
	DateOfExpiry  *string `json:"date_of_expiry"`
	DateOfBirth   *string `json:"date_of_birth"`
}

type WorkerResponse struct {
	ID            string `json:"id"`
	WorkersID     string `json:"workers_id"`
	NameOfWorkers string `json:"name_of_workers"`
	Entity        string `json:"entity,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	Designation   string `json:"designation,omitempty"`
	ContactNo     string `json:"contact_no,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	WPNo          string `json:"wp_no,omitempty"`
	NRICFinNo     string `json:"nric_fin_no,omitempty"`
	DateOfExpiry  string `json:"date_of_expiry,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	IsActive      bool   `json:"is_active"`

	Certifications []certification.CertificationResponse `json:"certifications,omitempty"`
}
