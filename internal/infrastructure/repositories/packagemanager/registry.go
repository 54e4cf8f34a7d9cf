package packagemanager

// PackageManager describes how to detect and run one package manager.
type PackageManager struct {
	Name      string
	LockFiles []string // any of these in the project selects the manager
	Install   []string // command line run for the install step
}

// Registry holds the known package managers in detection order.
type Registry struct {
	managers []PackageManager
	fallback string
}

// NewRegistry creates an empty registry whose Detect falls back to fallback.
func NewRegistry(fallback string) *Registry {
	return &Registry{fallback: fallback}
}

// NewDefaultRegistry knows npm, yarn, pnpm and bun; npm is used when no lock file exists.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry("npm")
	registry.Register(PackageManager{
		Name:      "pnpm",
		LockFiles: []string{"pnpm-lock.yaml"},
		Install:   []string{"pnpm", "install"},
	})
	registry.Register(PackageManager{
		Name:      "yarn",
		LockFiles: []string{"yarn.lock"},
		Install:   []string{"yarn", "install"},
	})
	registry.Register(PackageManager{
		Name:      "bun",
		LockFiles: []string{"bun.lockb", "bun.lock"},
		Install:   []string{"bun", "install"},
	})
	registry.Register(PackageManager{
		Name:      "npm",
		LockFiles: []string{"package-lock.json", "npm-shrinkwrap.json"},
		Install:   []string{"npm", "install"},
	})
	return registry
}

// Register adds a package manager; a manager with the same name is replaced in place.
func (r *Registry) Register(pm PackageManager) {
	for i, existing := range r.managers {
		if existing.Name == pm.Name {
			r.managers[i] = pm
			return
		}
	}
	r.managers = append(r.managers, pm)
}

// Get returns the package manager with the given name.
func (r *Registry) Get(name string) (PackageManager, bool) {
	for _, pm := range r.managers {
		if pm.Name == name {
			return pm, true
		}
	}
	return PackageManager{}, false
}

// All returns every registered package manager in detection order.
func (r *Registry) All() []PackageManager {
	result := make([]PackageManager, len(r.managers))
	copy(result, r.managers)
	return result
}

// Names returns the registered names in detection order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.managers))
	for _, pm := range r.managers {
		names = append(names, pm.Name)
	}
	return names
}

// Fallback returns the package manager used when no lock file matches.
func (r *Registry) Fallback() (PackageManager, bool) {
	return r.Get(r.fallback)
}
