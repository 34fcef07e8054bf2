package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/phonebook/internal/contact/inbound"
	"github.com/shandysiswandi/phonebook/internal/contact/outbound/db"
	"github.com/shandysiswandi/phonebook/internal/contact/outbound/memdb"
	"github.com/shandysiswandi/phonebook/internal/contact/outbound/mq"
	"github.com/shandysiswandi/phonebook/internal/contact/usecase"
	"github.com/shandysiswandi/phonebook/internal/pkg/clock"
	"github.com/shandysiswandi/phonebook/internal/pkg/config"
	"github.com/shandysiswandi/phonebook/internal/pkg/goroutine"
	"github.com/shandysiswandi/phonebook/internal/pkg/idempotency"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/shandysiswandi/phonebook/internal/pkg/messaging"
	"github.com/shandysiswandi/phonebook/internal/pkg/router"
	"github.com/shandysiswandi/phonebook/internal/pkg/uid"
	"github.com/shandysiswandi/phonebook/internal/pkg/validator"
)

type Dependency struct {
	Ctx context.Context `validate:"required"`
	// DBConn selects the postgres store; nil keeps contacts in memory.
	DBConn      *pgxpool.Pool
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency
	Messaging   messaging.Publisher        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	}

	if dep.DBConn == nil {
		ucDep.RepoDB = memdb.NewDB(dep.Clock)
	} else {
		pg := db.NewDB(dep.DBConn, dep.Instrument)
		if dep.Config.GetBool("database.auto_schema") {
			if err := pg.EnsureSchema(dep.Ctx); err != nil {
				return err
			}
		}
		ucDep.RepoDB = pg
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
