// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/system/wizardsession"
)

// wizardMgr is built during Startup and consumed by BuildHandler and
// Shutdown. The WAFFLE hooks share no mutable state otherwise.
var wizardMgr *wizardsession.Manager

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built. It
// builds the wizard session manager and starts the idle-session sweep.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	registry := wizardsession.NewRegistry(logger, appCfg.WizardSweepInterval, appCfg.WizardMaxIdle)

	secure := coreCfg.Env == "prod"
	mgr, err := wizardsession.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, registry, logger)
	if err != nil {
		return err
	}

	registry.Start()
	wizardMgr = mgr
	return nil
}
