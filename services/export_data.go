package services

// DocExportRow is a single line item in a quote or invoice export.
type DocExportRow struct {
	Index       int
	Description string
	Qty         float64
	Unit        string
	UnitPrice   float64
	VATPct      float64
	BeforeVAT   float64
	Total       float64
}

// DocExportData holds everything needed to render a quote or invoice
// document (PDF or spreadsheet).
type DocExportData struct {
	Kind           string // "Quotation" or "Tax Invoice"
	Number         string
	CreatedDate    string
	ValidUntil     string
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyVATNo   string
	ClientName     string
	ClientContact  string
	ClientAddress  string
	ClientVATNo    string
	ProjectName    string
	Rows           []DocExportRow
	TotalBeforeVAT float64
	VATAmount      float64
	GrandTotal     float64
	Notes          string
}
