package payments

import (
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/accesstoken"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
)

// Engine bundles the collaborators every Dispatch call needs. Callers look
// a connector up in Registry, pick the capability for their flow, and hand
// both to Dispatch together with the engine's platform and token manager.
type Engine struct {
	Platform connector.Platform
	Tokens   *accesstoken.Manager
	Registry *registry.Registry
}

func NewEngine(platform connector.Platform, tokens *accesstoken.Manager, reg *registry.Registry) *Engine {
	return &Engine{
		Platform: platform,
		Tokens:   tokens,
		Registry: reg,
	}
}
