package inmemdb

import "github.com/trezcool/minicanvas/core/course"

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) CreateCourse(name string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.rows = append(repo.db.rows, name)
	return nil
}

func (repo *courseRepository) QueryAllCourses() ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]string, len(repo.db.rows))
	copy(courses, repo.db.rows)
	return courses, nil
}
