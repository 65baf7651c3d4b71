package models

// Tables lists every persisted model in creation order, for AutoMigrate.
func Tables() []any {
	return []any{
		&Category{},
		&Product{},
		&ProductImage{},
		&ProductSize{},
		&ProductColor{},
		&Review{},
		&CartItem{},
	}
}
