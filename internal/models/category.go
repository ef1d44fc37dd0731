package models

// CategoryKind says which transaction type a category classifies.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
)

// Category classifies income and expense transactions.
type Category struct {
	ID        string
	Name      string
	Kind      CategoryKind
	CreatedAt int64
}
