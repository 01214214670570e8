package course

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	courseerrors "github.com/pandiaraajan-hub/workerprolite/internal/course/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCourseRepo struct {
	courses         []Course
	findAllCalls    int
	findByNameErr   error
	findByNameFound *Course
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *Course) error {
	f.courses = append(f.courses, *c)
	return nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id string) (*Course, error) {
	for i := range f.courses {
		if f.courses[i].ID.String() == id {
			return &f.courses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) FindByName(ctx context.Context, name string) (*Course, error) {
	if f.findByNameErr != nil {
		return nil, f.findByNameErr
	}
	return f.findByNameFound, nil
}

func (f *fakeCourseRepo) FindAllActive(ctx context.Context) ([]Course, error) {
	f.findAllCalls++
	return f.courses, nil
}

func (f *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, c *Course) error { return nil }

func (f *fakeCourseRepo) Deactivate(ctx context.Context, id string) error { return nil }

func TestGetOptions_ColdCachePopulatesRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := &fakeCourseRepo{
		courses:       []Course{{ID: uuid.New(), Name: "First Aid", IsActive: true}},
		findByNameErr: gorm.ErrRecordNotFound,
	}
	svc := NewService(repo, rdb)

	expectedJSON, err := json.Marshal(mapToListResponse(repo.courses))
	assert.NoError(t, err)

	mock.ExpectGet(OptionsCacheKey).RedisNil()
	mock.ExpectSet(OptionsCacheKey, expectedJSON, time.Hour).SetVal("OK")

	resp, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "First Aid", resp[0].Name)
	assert.Equal(t, 1, repo.findAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOptions_WarmCacheSkipsRepository(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := &fakeCourseRepo{}
	svc := NewService(repo, rdb)

	cached := []CourseResponse{{ID: uuid.NewString(), Name: "Coretrade", IsActive: true}}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	mock.ExpectGet(OptionsCacheKey).SetVal(string(payload))

	resp, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Equal(t, 0, repo.findAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidatesOptionsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := &fakeCourseRepo{findByNameErr: gorm.ErrRecordNotFound}
	svc := NewService(repo, rdb)

	mock.ExpectDel(OptionsCacheKey).SetVal(1)

	resp, err := svc.Create(context.Background(), CreateCourseRequest{Name: "WAH Worker"})
	assert.NoError(t, err)
	assert.Equal(t, "WAH Worker", resp.Name)
	assert.True(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateName(t *testing.T) {
	existing := Course{ID: uuid.New(), Name: "First Aid", IsActive: true}
	repo := &fakeCourseRepo{findByNameFound: &existing}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{Name: "First Aid"})
	assert.ErrorIs(t, err, courseerrors.ErrCourseNameExists)
}

func TestCatalog_KeyedByLowercaseName(t *testing.T) {
	repo := &fakeCourseRepo{courses: []Course{
		{ID: uuid.New(), Name: "BCSSC/CSC", IsActive: true},
		{ID: uuid.New(), Name: "First Aid", IsActive: true},
	}}
	svc := NewService(repo, nil)

	catalog, err := svc.Catalog(context.Background())
	assert.NoError(t, err)
	assert.Len(t, catalog, 2)
	assert.Contains(t, catalog, "bcssc/csc")
	assert.Contains(t, catalog, "first aid")
}
