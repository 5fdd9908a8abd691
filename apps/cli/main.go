package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/directory"
	"github.com/trezcool/minicanvas/services/logger"
	"github.com/trezcool/minicanvas/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "MINICANVAS : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	logger.SetVerbose(conf.Debug)

	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal("opening in-memory database", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	cli := commandLine{
		conf: conf,
		dir: directory.NewService(
			inmemdb.NewUserRepository(db),
			inmemdb.NewCourseRepository(db),
			logger,
			os.Stdout,
			os.Stderr,
		),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		validate:   validate,
		translator: translator,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
