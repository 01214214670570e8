package certification

type CreateCertificationRequest struct {
	CourseID          string `json:"course_id" binding:"required,uuid"`
	Name              string `json:"name"`
	CertificateNumber string `json:"certificate_number"`
	IssuedDate        string `json:"issued_date"` // YYYY-MM-DD, optional
	ExpiryDate        string `json:"expiry_date"` // YYYY-MM-DD, optional
}

// CreateWorkerCertificationRequest is the standalone endpoint payload;
// inline creation from the worker endpoints supplies the worker id itself.
type CreateWorkerCertificationRequest struct {
	WorkerID string `json:"worker_id" binding:"required,uuid"`
	CreateCertificationRequest
}

type UpdateCertificationRequest struct {
	CertificateNumber *string `json:"certificate_number"`
	IssuedDate        *string `json:"issued_date"`
	ExpiryDate        *string `json:"expiry_date"`
}

type CourseSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CertificationResponse struct {
	ID                string         `json:"id"`
	WorkerID          string         `json:"worker_id"`
	CourseID          string         `json:"course_id"`
	Name              string         `json:"name"`
	CertificateNumber string         `json:"certificate_number,omitempty"`
	IssuedDate        string         `json:"issued_date,omitempty"`
	ExpiryDate        string         `json:"expiry_date,omitempty"`
	Status            string         `json:"status"`
	Course            *CourseSummary `json:"course,omitempty"`
}
