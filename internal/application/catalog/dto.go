package catalogapp

// ImportResult aggregates the outcome of one catalog import run.
// Success is true only when every row and every group went through;
// per-item failures land in Errors and leave the rest of the run alone.
type ImportResult struct {
	RowsProcessed   int      `json:"rows_processed"`
	RowsRejected    int      `json:"rows_rejected"`
	ProductsCreated int      `json:"products_created"`
	ProductsUpdated int      `json:"products_updated"`
	VariantsCreated int      `json:"variants_created"`
	VariantsUpdated int      `json:"variants_updated"`
	Errors          []string `json:"errors,omitempty"`
	Success         bool     `json:"success"`
}

// ReferenceData holds the catalog mapping tables the import run consults.
// The keys of FamilyCategories and SupplierNames are matched after
// lower-casing the raw feed value.
type ReferenceData struct {
	FamilyCategories map[string]string
	CategoryColors   map[string]string
	SupplierNames    map[string]string
}
