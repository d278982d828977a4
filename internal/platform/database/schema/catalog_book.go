package schema

// RefBookTable represents the 'catalog.book' table
type RefBookTable struct {
	Table        string
	ID           string
	Name         string
	PhotoURL     string
	AuthorName   string
	CategoryName string
	Rating       string
	Quantity     string
	CreatedAt    string
	UpdatedAt    string
}

// RefBook is the schema definition for catalog.book
var RefBook = RefBookTable{
	Table:        "catalog.book",
	ID:           "id",
	Name:         "name",
	PhotoURL:     "photourl",
	AuthorName:   "authorname",
	CategoryName: "categoryname",
	Rating:       "rating",
	Quantity:     "quantity",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t RefBookTable) Columns() []string {
	return []string{t.ID, t.Name, t.PhotoURL, t.AuthorName, t.CategoryName, t.Rating, t.Quantity, t.CreatedAt, t.UpdatedAt}
}
