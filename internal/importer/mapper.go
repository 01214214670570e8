package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/course"

	"github.com/google/uuid"
)

// Header synonyms per logical worker field, in match priority order.
// Sheets arrive from several hands and no two of them label a column the
// same way; the first non-empty hit wins.
var (
	entityHeaders       = []string{"Entity", "entity"}
	serialNumberHeaders = []string{"S/N", "Serial Number", "serialNumber"}
	workersIDHeaders    = []string{"Workers ID", "workersId", "Worker ID", "workerID"}
	nameHeaders         = []string{"Name of Workers", "Name", "nameOfWorkers", "Worker Name"}
	designationHeaders  = []string{"Designation", "designation"}
	contactNoHeaders    = []string{"Contact No.", "Contact No", "contactNo", "Contact"}
	nationalityHeaders  = []string{"Nationality", "nationality"}
	wpNoHeaders         = []string{"WP No.", "WP No", "wpNo"}
	nricFinNoHeaders    = []string{"NRIC / Fin No", "NRIC/Fin No", "nricFinNo", "NRIC"}
	dateOfExpiryHeaders = []string{"Date of Expiry", "dateOfExpiry", "Expiry Date"}
	dateOfBirthHeaders  = []string{"Date of Birth", "dateOfBirth", "DOB"}
)

// knownCourseColumns is the closed set of column headers matched against
// the course catalog by exact (case-insensitive) name. BCSSC/CSC and SPIC
// have their own handling below.
var knownCourseColumns = []string{
	"First Aid",
	"bizsafe Level 1",
	"bizsafe Level 2",
	"WSH Level B - Safety Coordinator",
	"WSH Level C - Safety Officer",
	"Coretrade",
	"Multiskill",
	"Direct R1",
	"MBF",
	"CSOC",
}

const (
	bcsscCourseName = "bcssc/csc"
	spicCourseName  = "spic"
	spicColumn      = "SPIC"
)

// RequiredColumns and AcceptedVariations feed the diagnostic payload
// returned when an upload yields no usable rows.
var RequiredColumns = []string{"Workers ID", "Name of Workers"}

func AcceptedVariations() map[string][]string {
	return map[string][]string{
		"Workers ID":      workersIDHeaders,
		"Name of Workers": nameHeaders,
	}
}

// WorkerDraft is a normalized worker candidate lifted out of one row.
type WorkerDraft struct {
	Entity        string
	SerialNumber  string
	WorkersID     string
	NameOfWorkers string
	Designation   string
	ContactNo     string
	Nationality   string
	WPNo          string
	NRICFinNo     string
	DateOfExpiry  *time.Time
	DateOfBirth   *time.Time
}

// Extraction is one certification signal found while scanning a row.
type Extraction struct {
	CourseID   uuid.UUID
	CourseName string
	ExpiryDate *time.Time
}

type MappedRow struct {
	Draft       WorkerDraft
	Extractions []Extraction
}

type MapResult struct {
	Rows      []MappedRow
	Issues    []string
	TotalRows int
}

// MapRows normalizes raw sheet rows against the course catalog. Rows
// missing the worker id or name are logged as issues and skipped; the
// rest of the batch keeps going.
func MapRows(rows []map[string]string, catalog map[string]course.Course) MapResult {
	result := MapResult{TotalRows: len(rows)}

	for i, row := range rows {
		draft := WorkerDraft{
			Entity:        firstNonEmpty(row, entityHeaders),
			SerialNumber:  firstNonEmpty(row, serialNumberHeaders),
			WorkersID:     firstNonEmpty(row, workersIDHeaders),
			NameOfWorkers: firstNonEmpty(row, nameHeaders),
			Designation:   firstNonEmpty(row, designationHeaders),
			ContactNo:     firstNonEmpty(row, contactNoHeaders),
			Nationality:   firstNonEmpty(row, nationalityHeaders),
			WPNo:          firstNonEmpty(row, wpNoHeaders),
			NRICFinNo:     firstNonEmpty(row, nricFinNoHeaders),
			DateOfExpiry:  ParseFlexibleDate(firstNonEmpty(row, dateOfExpiryHeaders)),
			DateOfBirth:   ParseFlexibleDate(firstNonEmpty(row, dateOfBirthHeaders)),
		}

		if draft.WorkersID == "" || draft.NameOfWorkers == "" {
			// Row numbering is 1-based plus the header row, matching what
			// the operator sees in their spreadsheet program.
			result.Issues = append(result.Issues, fmt.Sprintf(
				"Row %d: missing required fields - Workers ID: '%s', Name: '%s'",
				i+2, draft.WorkersID, draft.NameOfWorkers,
			))
			continue
		}

		result.Rows = append(result.Rows, MappedRow{
			Draft:       draft,
			Extractions: scanRowForCourses(row, catalog),
		})
	}

	return result
}

// scanRowForCourses inspects every cell of the row, not just known course
// columns: BCSSC/CSC markers show up wherever the uploader felt like
// putting them.
func scanRowForCourses(row map[string]string, catalog map[string]course.Course) []Extraction {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var extractions []Extraction
	for _, col := range columns {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}

		upper := strings.ToUpper(cell)
		switch {
		case strings.Contains(upper, "BCSSC") || strings.Contains(upper, "CSC"):
			// BCSSC/CSC is permit-exempt by convention: never an expiry.
			if crs, ok := catalog[bcsscCourseName]; ok {
				extractions = append(extractions, Extraction{
					CourseID:   crs.ID,
					CourseName: crs.Name,
				})
			}

		case col == spicColumn:
			if crs, ok := catalog[spicCourseName]; ok {
				extractions = append(extractions, Extraction{
					CourseID:   crs.ID,
					CourseName: crs.Name,
					ExpiryDate: ParseFlexibleDate(cell),
				})
			}

		case isKnownCourseColumn(col):
			// Catalog is the source of truth; unrecognized names are
			// silently ignored.
			if crs, ok := catalog[strings.ToLower(col)]; ok {
				extractions = append(extractions, Extraction{
					CourseID:   crs.ID,
					CourseName: crs.Name,
					ExpiryDate: ParseFlexibleDate(cell),
				})
			}
		}
	}

	return extractions
}

func isKnownCourseColumn(col string) bool {
	for _, known := range knownCourseColumns {
		if known == col {
			return true
		}
	}
	return false
}

func firstNonEmpty(row map[string]string, headers []string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(row[h]); v != "" {
			return v
		}
	}
	return ""
}
