package app

import (
	"context"
	"io/fs"
	"os"

	"pokedex-server/internal/config"
	"pokedex-server/internal/dispatch"
	"pokedex-server/internal/handler"
	"pokedex-server/internal/middleware"
	"pokedex-server/internal/pokemon"
	"pokedex-server/internal/router"
	"pokedex-server/internal/session"
	"pokedex-server/internal/view"

	"github.com/gin-gonic/gin"
)

// Deps are the stateful collaborators the engine is built around. They
// are constructed once and injected so tests can use fresh instances.
type Deps struct {
	Sessions session.Store
	Pokemon  *pokemon.Store
	Static   fs.FS
}

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := NewEngine(cfg, Deps{
		Sessions: infra.Sessions,
		Pokemon:  pokemon.NewStore(pokemon.Starters()...),
		Static:   os.DirFS(cfg.StaticDir),
	})

	return engine, infra.Close, nil
}

// NewEngine wires the middleware chain, the route table and the
// dispatcher into a gin engine.
func NewEngine(cfg config.Config, deps Deps) *gin.Engine {

	// ----------------------------
	// Dependencies
	// ----------------------------

	cookie := session.DefaultCookieOptions()
	sessions := session.NewManager(deps.Sessions, cfg.SessionTTL)

	routes := router.New()
	handler.NewHandler(deps.Pokemon, sessions, cookie).RegisterRoutes(routes)

	dispatcher := dispatch.New(routes, sessions, deps.Static, cookie)

	// ----------------------------
	// Engine
	// ----------------------------

	engine := gin.New()
	engine.SetHTMLTemplate(view.MustTemplates())
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Recovery(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)

	// Health checks bypass the dispatcher so probes never mint sessions.
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Everything else goes through session resolution and the route table.
	engine.NoRoute(dispatcher.Handle)

	return engine
}
