// Package registry holds the named tasks an application instance can run.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Task is a runnable unit of work invoked by name from the CLI.
type Task func(ctx context.Context, args []string) error

// Registry maps task names to their implementations for a single
// application instance.
type Registry struct {
	tasks map[string]Task
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		tasks: make(map[string]Task),
	}
}

// Register adds a task under the given name, replacing any prior entry.
func (r *Registry) Register(name string, task Task) {
	r.tasks[name] = task
}

// Get looks up a task by name. The error lists the registered names so a
// typo on the command line is self-explanatory.
func (r *Registry) Get(name string) (Task, error) {
	task, ok := r.tasks[name]
	if !ok {
		return nil, fmt.Errorf("unknown task %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return task, nil
}

// List returns the registered task names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
