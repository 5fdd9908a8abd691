package inmemdb

import "github.com/trezcool/minicanvas/core/user"

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateStudent(std *user.Student) (*user.Student, error) {
	t := repo.db.student
	t.Lock()
	defer t.Unlock()

	t.rows = append(t.rows, std)
	return std, nil
}

func (repo *userRepository) CreateInstructor(ins *user.Instructor) (*user.Instructor, error) {
	t := repo.db.instructor
	t.Lock()
	defer t.Unlock()

	t.rows = append(t.rows, ins)
	return ins, nil
}

func (repo *userRepository) CreateAdministrator(adm *user.Administrator) (*user.Administrator, error) {
	t := repo.db.administrator
	t.Lock()
	defer t.Unlock()

	t.rows = append(t.rows, adm)
	return adm, nil
}

func (repo *userRepository) QueryAllStudents() ([]*user.Student, error) {
	t := repo.db.student
	t.RLock()
	defer t.RUnlock()

	students := make([]*user.Student, len(t.rows))
	copy(students, t.rows)
	return students, nil
}

func (repo *userRepository) QueryAllInstructors() ([]*user.Instructor, error) {
	t := repo.db.instructor
	t.RLock()
	defer t.RUnlock()

	instructors := make([]*user.Instructor, len(t.rows))
	copy(instructors, t.rows)
	return instructors, nil
}

func (repo *userRepository) QueryAllAdministrators() ([]*user.Administrator, error) {
	t := repo.db.administrator
	t.RLock()
	defer t.RUnlock()

	admins := make([]*user.Administrator, len(t.rows))
	copy(admins, t.rows)
	return admins, nil
}

func (repo *userRepository) GetStudentByEmail(email string) (*user.Student, error) {
	t := repo.db.student
	t.RLock()
	defer t.RUnlock()

	for _, std := range t.rows {
		if std.Email() == email {
			return std, nil
		}
	}
	return nil, &user.NotFoundError{Role: user.RoleStudent}
}

func (repo *userRepository) GetInstructorByEmail(email string) (*user.Instructor, error) {
	t := repo.db.instructor
	t.RLock()
	defer t.RUnlock()

	for _, ins := range t.rows {
		if ins.Email() == email {
			return ins, nil
		}
	}
	return nil, &user.NotFoundError{Role: user.RoleInstructor}
}

func (repo *userRepository) GetAdministratorByEmail(email string) (*user.Administrator, error) {
	t := repo.db.administrator
	t.RLock()
	defer t.RUnlock()

	for _, adm := range t.rows {
		if adm.Email() == email {
			return adm, nil
		}
	}
	return nil, &user.NotFoundError{Role: user.RoleAdministrator}
}
