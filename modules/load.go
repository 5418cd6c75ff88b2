package modules

import (
	"github.com/lioratech/mvp-web-sub001/modules/payroll"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
)

func BuiltInModules() []application.Module {
	return []application.Module{
		payroll.NewModule(),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules(), externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
		app.Logger().WithField("module", module.Name()).Info("module loaded")
	}
	return nil
}
