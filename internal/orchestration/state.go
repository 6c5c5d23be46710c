package orchestration

import (
	"log/slog"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
)

// State bundles the collaborators a connector call needs. It satisfies
// connector.Platform so adapters can drive nested cycles from pretasks.
type State struct {
	transport  connector.Transport
	connectors *config.Connectors
	logger     *slog.Logger
}

func NewState(transport connector.Transport, connectors *config.Connectors, logger *slog.Logger) *State {
	return &State{
		transport:  transport,
		connectors: connectors,
		logger:     logger,
	}
}

func (s *State) Transport() connector.Transport { return s.transport }
func (s *State) Connectors() *config.Connectors { return s.connectors }
func (s *State) Logger() *slog.Logger           { return s.logger }
