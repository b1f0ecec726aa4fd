package handler

import (
	"journal/internal/app/api"
	"journal/internal/app/live"
	"journal/internal/app/persist"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/app/view"
	"journal/internal/configs"
	"journal/internal/pkg/limiter"
)

type AppDeps struct {
	Config      *configs.AppConfig
	Store       *session.Store
	Gate        *persist.Gate
	Table       *route.Table
	API         *api.Client
	Renderer    *view.Renderer
	Hub         *live.Hub
	AuthLimiter *limiter.IPRateLimiter
}
