package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/noah-isme/learningpath-api/internal/models"
)

type fakeCompletion struct {
	courses    map[int64]bool
	modules    map[int64]bool
	catalogues map[int64]bool
	err        error

	mu    sync.Mutex
	calls []string
}

func (f *fakeCompletion) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCompletion) IsCourseComplete(_ context.Context, courseID, _ int64) (bool, error) {
	f.record("course")
	return f.courses[courseID], f.err
}

func (f *fakeCompletion) IsModuleComplete(_ context.Context, moduleID, _ int64) (bool, error) {
	f.record("module")
	return f.modules[moduleID], f.err
}

func (f *fakeCompletion) IsCatalogueComplete(_ context.Context, catalogueID, _ int64) (bool, error) {
	f.record("catalogue")
	return f.catalogues[catalogueID], f.err
}

type fakeCredits struct {
	credits   map[int64]int
	catalogue map[int64]int
	err       error
}

func (f *fakeCredits) CreditFor(_ context.Context, entityID int64) (int, error) {
	return f.credits[entityID], f.err
}

func (f *fakeCredits) CatalogueCreditFor(_ context.Context, catalogueID, _ int64) (int, error) {
	return f.catalogue[catalogueID], f.err
}

type fakeEntities struct {
	courses    map[int64]*models.CourseInfo
	modules    map[int64]*models.ModuleInfo
	catalogues map[int64]*models.CatalogueItemInfo
	err        error
}

func (f *fakeEntities) Course(_ context.Context, id int64) (*models.CourseInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if course, ok := f.courses[id]; ok {
		return course, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEntities) Module(_ context.Context, id int64) (*models.ModuleInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if module, ok := f.modules[id]; ok {
		return module, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEntities) CatalogueItem(_ context.Context, id int64) (*models.CatalogueItemInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if item, ok := f.catalogues[id]; ok {
		return item, nil
	}
	return nil, sql.ErrNoRows
}

type fakePathStore struct {
	paths   map[int64]*models.LearningPath
	lines   map[int64][]models.LearningPathLine
	listed  []models.LearningPath
	total   int
	err     error
	finds   int
	filters []models.LearningPathFilter
}

func (f *fakePathStore) FindByID(_ context.Context, id int64) (*models.LearningPath, error) {
	f.finds++
	if f.err != nil {
		return nil, f.err
	}
	if path, ok := f.paths[id]; ok {
		return path, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePathStore) ListLines(_ context.Context, pathID int64) ([]models.LearningPathLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines[pathID], nil
}

func (f *fakePathStore) FindLine(_ context.Context, lineID int64) (*models.LearningPathLine, error) {
	for _, lines := range f.lines {
		for i := range lines {
			if lines[i].ID == lineID {
				return &lines[i], nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePathStore) List(_ context.Context, filter models.LearningPathFilter) ([]models.LearningPath, int, error) {
	f.filters = append(f.filters, filter)
	return f.listed, f.total, f.err
}

type fakeAssignments struct {
	ids       []int64
	count     int
	err       error
	published []bool
}

func (f *fakeAssignments) PathsForUser(context.Context, int64) ([]int64, error) {
	return f.ids, f.err
}

func (f *fakeAssignments) CountForUser(_ context.Context, _ int64, publishedOnly bool) (int, error) {
	f.published = append(f.published, publishedOnly)
	return f.count, f.err
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func courseLine(id, pathID, courseID int64) models.LearningPathLine {
	return models.LearningPathLine{ID: id, PathID: pathID, CourseID: nullID(courseID)}
}

func moduleLine(id, pathID, moduleID int64) models.LearningPathLine {
	return models.LearningPathLine{ID: id, PathID: pathID, ModuleID: nullID(moduleID)}
}

func catalogueLine(id, pathID, catalogueID int64) models.LearningPathLine {
	return models.LearningPathLine{ID: id, PathID: pathID, CatalogueID: nullID(catalogueID)}
}
