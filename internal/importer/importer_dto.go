package importer

import "github.com/pandiaraajan-hub/workerprolite/internal/worker"

type ImportStats struct {
	WorkersProcessed      int `json:"workersProcessed"`
	CertificationsCreated int `json:"certificationsCreated"`
	Skipped               int `json:"skipped"`
	TotalRows             int `json:"totalRows"`
}

type ImportSummary struct {
	Message string                  `json:"message"`
	Workers []worker.WorkerResponse `json:"workers"`
	Stats   ImportStats             `json:"stats"`
}

// ImportDiagnostics explains a rejected upload: which columns the sheet
// actually had, the first few row-level issues, and what headers would
// have been accepted.
type ImportDiagnostics struct {
	TotalRows          int                 `json:"totalRows"`
	AvailableColumns   []string            `json:"availableColumns"`
	Issues             []string            `json:"issues"`
	RequiredColumns    []string            `json:"requiredColumns"`
	AcceptedVariations map[string][]string `json:"acceptedVariations"`
}
