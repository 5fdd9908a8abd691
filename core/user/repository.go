package user

// Repository stores the three kinds of users in insertion order.
// Getters return live records: mutating them mutates the stored record.
type Repository interface {
	CreateStudent(std *Student) (*Student, error)
	CreateInstructor(ins *Instructor) (*Instructor, error)
	CreateAdministrator(adm *Administrator) (*Administrator, error)
	QueryAllStudents() ([]*Student, error)
	QueryAllInstructors() ([]*Instructor, error)
	QueryAllAdministrators() ([]*Administrator, error)
	// Get*ByEmail return the first record with exactly this email, or a *NotFoundError.
	GetStudentByEmail(email string) (*Student, error)
	GetInstructorByEmail(email string) (*Instructor, error)
	GetAdministratorByEmail(email string) (*Administrator, error)
}
