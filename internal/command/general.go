package command

import (
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/store"
)

// Help requests the help surface.
type Help struct{}

func (Help) Execute(*store.Store) (*Result, error) {
	return &Result{Feedback: "Showing help", ShowHelp: true}, nil
}

// Exit requests application shutdown.
type Exit struct{}

func (Exit) Execute(*store.Store) (*Result, error) {
	return &Result{Feedback: "Exiting as requested", Exit: true}, nil
}

// Clear purges every collection and both tag namespaces.
type Clear struct{}

func (Clear) Execute(s *store.Store) (*Result, error) {
	s.Clear()
	return &Result{
		Feedback: "All data has been cleared!",
		Cleared:  true,
		Mutated:  models.Groups(),
	}, nil
}
