package core

// TemplateCategory is one entry of the fixed system catalog.
type TemplateCategory struct {
	Name  string
	Icon  string
	Color string
	Type  TransactionType
}

// TemplateCatalog is the canonical set of system-provided categories seeded
// into every store. The icon names refer to the client's icon set; unknown
// names fall back to a generic glyph on the client side.
var TemplateCatalog = []TemplateCategory{
	// Expense templates
	{Name: "Food & Dining", Icon: "utensils", Color: "#ef4444", Type: TypeExpense},
	{Name: "Travel", Icon: "plane", Color: "#3b82f6", Type: TypeExpense},
	{Name: "Shopping", Icon: "shopping-bag", Color: "#8b5cf6", Type: TypeExpense},
	{Name: "Entertainment", Icon: "gamepad-2", Color: "#f59e0b", Type: TypeExpense},
	{Name: "Transportation", Icon: "car", Color: "#10b981", Type: TypeExpense},
	{Name: "Healthcare", Icon: "heart-pulse", Color: "#ec4899", Type: TypeExpense},
	{Name: "Education", Icon: "graduation-cap", Color: "#6366f1", Type: TypeExpense},
	{Name: "Bills & Utilities", Icon: "receipt", Color: "#ef4444", Type: TypeExpense},
	{Name: "Groceries", Icon: "shopping-cart", Color: "#22c55e", Type: TypeExpense},
	{Name: "Gas", Icon: "fuel", Color: "#f97316", Type: TypeExpense},
	// Income templates
	{Name: "Salary", Icon: "briefcase", Color: "#10b981", Type: TypeIncome},
	{Name: "Freelance", Icon: "laptop", Color: "#3b82f6", Type: TypeIncome},
	{Name: "Investment", Icon: "trending-up", Color: "#8b5cf6", Type: TypeIncome},
	{Name: "Business", Icon: "building", Color: "#f59e0b", Type: TypeIncome},
	{Name: "Gift", Icon: "gift", Color: "#ec4899", Type: TypeIncome},
	{Name: "Other Income", Icon: "plus-circle", Color: "#6b7280", Type: TypeIncome},
}
