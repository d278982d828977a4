package schema

// RefLoanTable represents the 'lending.loan' table
type RefLoanTable struct {
	Table        string
	ID           string
	BookID       string
	Email        string
	BorrowerName string
	BookName     string
	PhotoURL     string
	CategoryName string
	BorrowedOn   string
	DueOn        string
	CreatedAt    string
}

// RefLoan is the schema definition for lending.loan
var RefLoan = RefLoanTable{
	Table:        "lending.loan",
	ID:           "id",
	BookID:       "bookid",
	Email:        "email",
	BorrowerName: "borrowername",
	BookName:     "bookname",
	PhotoURL:     "photourl",
	CategoryName: "categoryname",
	BorrowedOn:   "borrowedon",
	DueOn:        "dueon",
	CreatedAt:    "createdat",
}

func (t RefLoanTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Email, t.BorrowerName, t.BookName, t.PhotoURL, t.CategoryName, t.BorrowedOn, t.DueOn, t.CreatedAt}
}
