package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service is anything the viewer starts next to the frame pump.
type Service interface {
	Run()
	Shutdown(ctx context.Context) error
}

// Group starts and stops services together.
type Group struct {
	list []Service
}

func (g *Group) Add(services ...Service) { g.list = append(g.list, services...) }

// Start runs each service in the order they were added.
func (g *Group) Start() {
	for _, s := range g.list {
		s.Run()
	}
}

// Shutdown stops the services in reverse order and collects the failures.
func (g *Group) Shutdown(ctx context.Context) error {
	var errs []string
	for i := len(g.list) - 1; i >= 0; i-- {
		s := g.list[i]
		if err := s.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, fmt.Sprintf("failed to stop [%v] because of %v", s, err))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
