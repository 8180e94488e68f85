package models

// Subject represents an entry of the subject catalog.
type Subject struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Catalog subject names.
const (
	SubjectMath        = "Математика"
	SubjectPhysics     = "Физика"
	SubjectProgramming = "Программирование"
	SubjectEnglish     = "Английский язык"
	SubjectHistory     = "История"
)

// SubjectCatalog is the fixed, ordered list of subjects seeded into the store
// and offered by the group leader menus.
var SubjectCatalog = []string{
	SubjectMath,
	SubjectPhysics,
	SubjectProgramming,
	SubjectEnglish,
	SubjectHistory,
}

// CatalogSubject returns the catalog subject at a zero-based index.
func CatalogSubject(index int) (string, bool) {
	if index < 0 || index >= len(SubjectCatalog) {
		return "", false
	}
	return SubjectCatalog[index], true
}
