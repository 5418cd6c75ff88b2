package payroll

import (
	"embed"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/infrastructure/persistence"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/presentation/controllers"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/services"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "payroll"
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	repo := persistence.NewPayrollRepository(conf.Payroll.ParamCeiling, conf.Payroll.ExistenceChunk)
	app.RegisterServices(
		services.NewPayrollService(app.DB(), repo, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewPayrollController(app),
	)
	app.Migrations().RegisterSchema(&migrationFiles)
	return nil
}
