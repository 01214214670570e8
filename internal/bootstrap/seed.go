package bootstrap

import (
	"context"

	"github.com/pandiaraajan-hub/workerprolite/internal/course"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seedCourseNames is the standing safety and trade course catalog.
// Seeded only into an empty database; operators manage the catalog
// through the API afterwards.
var seedCourseNames = []string{
	"Coretrade",
	"Multiskill",
	"Direct R1",
	"MBF",
	"CSOC",
	"BCSSC/CSC",
	"First Aid",
	"bizsafe Level 1",
	"bizsafe Level 2",
	"Boomlift Operator",
	"Scissorlift Operator",
	"Gondola Operator",
	"Lifting Supervisor",
	"Scaffolding Supervisor",
	"Metal Scaffold Supervisor",
	"Scaffold Erector",
	"Welder's Cert",
	"EPIC (DTL)",
	"EPIC (NEL)",
	"SPIC",
	"WAH Worker",
	"Managing WAH",
	"WSH Level B - Safety Coordinator",
	"WSH Level C - Safety Officer",
	"Signalman / Rigger",
	"Register Earthwork Supervisor",
	"Airport Pass",
	"Boustead Pass",
	"JTC Course",
}

// SeedCourses fills the course catalog on first boot. A non-empty table
// means an operator already owns the data and nothing is touched.
func SeedCourses(ctx context.Context, repo course.Repository, logger *zap.Logger) error {
	log := logger.Named("bootstrap.seed")

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("course catalog already populated", zap.Int64("count", count))
		return nil
	}

	for _, name := range seedCourseNames {
		c := &course.Course{
			ID:       uuid.New(),
			Name:     name,
			IsActive: true,
		}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
	}

	log.Info("seeded course catalog", zap.Int("courses", len(seedCourseNames)))
	return nil
}
