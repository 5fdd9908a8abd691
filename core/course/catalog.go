package course

// Repository is the global course catalog: bare names kept in creation order, duplicates included.
type Repository interface {
	CreateCourse(name string) error
	QueryAllCourses() ([]string, error)
}
