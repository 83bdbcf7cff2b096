package services

// UnitOptions lists the units of measure offered in line-item forms.
var UnitOptions = []string{
	"Each",
	"Sqm",
	"Lm",
	"Roll",
	"Sheet",
	"Set",
	"Pack",
	"Box",
	"Kg",
	"Ltr",
	"Hour",
	"Day",
	"Lump Sum",
}

// VATOptions lists the VAT percentage options. South African standard
// rate plus zero-rated.
var VATOptions = []int{0, 15}

// ExpenseCategories lists the project expense categories used for
// budget tracking.
var ExpenseCategories = []string{
	"Materials",
	"Printing",
	"Installation",
	"Travel",
	"Subcontractor",
	"Design",
	"Other",
}

// PricingModeOptions lists the tender pricing policies.
var PricingModeOptions = []string{
	string(PricingModeMargin),
	string(PricingModeTargetProfit),
}
