package model

// All lists every model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&CategoryModel{},
		&TransactionModel{},
		&BudgetModel{},
		&RecurringModel{},
		&GoalModel{},
		&PredictionModel{},
		&HealthScoreModel{},
		&AdviceItemModel{},
		&AdviceFeedModel{},
	}
}
