package models

import "sync"

var (
	registryOnce sync.Once
	registry     map[string]any
	migrateOrder []string
)

func buildRegistry() {
	entities := []struct {
		name  string
		model any
	}{
		{"User", &User{}},
		{"Restaurant", &Restaurant{}},
		{"MenuItem", &MenuItem{}},
		{"Order", &Order{}},
		{"OrderItem", &OrderItem{}},
		{"OrderStatusHistory", &OrderStatusHistory{}},
		{"DriverLocation", &DriverLocation{}},
		{"Notification", &Notification{}},
		{"Session", &Session{}},
	}
	registry = make(map[string]any, len(entities))
	for _, e := range entities {
		registry[e.name] = e.model
		migrateOrder = append(migrateOrder, e.name)
	}
}

// Registry returns the entity-name to model map. It is built on first use and
// shared afterwards; callers must not mutate it.
func Registry() map[string]any {
	registryOnce.Do(buildRegistry)
	return registry
}

// Migratables lists every registered model in a stable order for AutoMigrate.
func Migratables() []any {
	reg := Registry()
	out := make([]any, 0, len(migrateOrder))
	for _, name := range migrateOrder {
		out = append(out, reg[name])
	}
	return out
}
