package model

import "time"

// Summary is the home page's view of the whole catalog.
type Summary struct {
	Books           int       `json:"books"`
	Copies          int       `json:"copies"`
	AvailableCopies int       `json:"available_copies"`
	Authors         int       `json:"authors"`
	Genres          int       `json:"genres"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// ExportSheet is the worksheet name of the book export.
const ExportSheet = "Books"

// ExportHeaders are the export's column titles, in order.
var ExportHeaders = []string{"ID", "Title", "Author", "ISBN", "Genres", "Copies", "Available"}

// ExportRow is one book line of the spreadsheet.
type ExportRow struct {
	ID        string
	Title     string
	Author    string
	ISBN      string
	Genres    string
	Copies    int
	Available int
}

// Values returns the cells in ExportHeaders order.
func (r ExportRow) Values() []interface{} {
	return []interface{}{r.ID, r.Title, r.Author, r.ISBN, r.Genres, r.Copies, r.Available}
}
