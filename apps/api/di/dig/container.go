package dig_container

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/minicanvas/apps/api/echo"
	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/course"
	"github.com/trezcool/minicanvas/core/directory"
	"github.com/trezcool/minicanvas/core/user"
	logsvc "github.com/trezcool/minicanvas/services/logger"
	inmemdb "github.com/trezcool/minicanvas/storage/database/inmem"
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	logger.SetVerbose(conf.Debug)
	return logger
}

func newDB(logger core.Logger) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal("opening in-memory database", err)
	}
	return db
}

// newDirectory writes operation output to the process' stdout/stderr;
// API handlers use per-request views of it.
func newDirectory(users user.Repository, courses course.Repository, logger core.Logger) *directory.Service {
	return directory.NewService(users, courses, logger, os.Stdout, os.Stderr)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewCourseRepository))
	must(c.Provide(newDirectory))
	must(c.Provide(newValidator))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
