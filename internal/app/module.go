package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/phonebook/internal/contact"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.contact.enabled") {
		if err := contact.New(contact.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module contact", "error", err)
			os.Exit(1)
		}
	}
}
