package model

// All lists every persisted model in dependency order (parents first).
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Comment{},
	}
}
