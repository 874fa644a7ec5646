package bot

import "github.com/pkg/errors"

// Cog groups related commands so they can be registered, guarded and removed
// together.
type Cog struct {
	// Name identifies the cog; a router holds at most one cog per name.
	Name string
	// Commands are registered into the router when the cog is added.
	Commands []*Command
	// Check, if non-nil, runs before the per-command checks for every
	// command in the cog.
	Check CheckFunc
	// OnUnload, if non-nil, is called after the cog's commands have been
	// removed from the router.
	OnUnload func()
}

// AddCog registers every command of the cog. It fails without registering
// anything if the cog's name is taken or any command fails validation or
// collides with a registered name.
func (r *Router) AddCog(cog *Cog) error {
	if cog.Name == "" {
		return errors.New("cog has no name")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.cogs[cog.Name]; ok {
		return errors.Errorf("cog %q is already added", cog.Name)
	}

	for _, cmd := range cog.Commands {
		if err := r.validateUnregistered(cmd); err != nil {
			return errors.Wrapf(err, "cog %q", cog.Name)
		}
	}

	for _, cmd := range cog.Commands {
		cmd.cog = cog
		r.register(cmd)
	}
	r.cogs[cog.Name] = cog

	return nil
}

// RemoveCog removes the named cog and all its commands, then calls its
// OnUnload callback. Removing an unknown cog is a no-op.
func (r *Router) RemoveCog(name string) {
	r.mutex.Lock()

	cog, ok := r.cogs[name]
	if !ok {
		r.mutex.Unlock()
		return
	}

	delete(r.cogs, name)
	for _, cmd := range cog.Commands {
		r.unregister(cmd)
		cmd.cog = nil
	}

	r.mutex.Unlock()

	if cog.OnUnload != nil {
		cog.OnUnload()
	}
}
