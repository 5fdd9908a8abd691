package inmemdb

import (
	"sync"

	"github.com/trezcool/minicanvas/core/user"
)

type (
	DB struct {
		student       *studentTable
		instructor    *instructorTable
		administrator *administratorTable
		course        *courseTable
	}

	studentTable struct {
		sync.RWMutex
		rows []*user.Student
	}

	instructorTable struct {
		sync.RWMutex
		rows []*user.Instructor
	}

	administratorTable struct {
		sync.RWMutex
		rows []*user.Administrator
	}

	courseTable struct {
		sync.RWMutex
		rows []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:       &studentTable{},
		instructor:    &instructorTable{},
		administrator: &administratorTable{},
		course:        &courseTable{},
	}
	return db, nil
}
