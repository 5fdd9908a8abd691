package user

import (
	"errors"
	"fmt"
)

// Roles
const (
	RoleStudent Role = iota + 1
	RoleInstructor
	RoleAdministrator
)

var (
	Roles = []Role{RoleStudent, RoleInstructor, RoleAdministrator}

	// errors
	ErrNotFound = errors.New("not found")
)

type Role int

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleInstructor:
		return "Instructor"
	case RoleAdministrator:
		return "Administrator"
	default:
		return "Unknown"
	}
}

// NotFoundError is returned when no record of Role has the requested email.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Role Role
}

func (err *NotFoundError) Error() string {
	return err.Role.String() + " not found."
}

func (err *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Person holds the identity shared by every kind of user. It is immutable once built.
type Person struct {
	id    int
	name  string
	email string
	role  Role
}

func NewPerson(id int, name, email string, role Role) Person {
	return Person{id: id, name: name, email: email, role: role}
}

func (p Person) ID() int       { return p.id }
func (p Person) Name() string  { return p.name }
func (p Person) Email() string { return p.email }
func (p Person) Role() Role    { return p.role }

// Display returns a human-readable line describing the person.
func (p Person) Display() string {
	return fmt.Sprintf("Name: %s, Email: %s, Role: %s", p.name, p.email, p.role)
}

type Administrator struct {
	Person
}

func NewAdministrator(id int, name, email string) *Administrator {
	return &Administrator{Person: NewPerson(id, name, email, RoleAdministrator)}
}
