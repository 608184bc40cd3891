package entities

// Author owns zero or more books. Authors that still own books are never
// removed physically; deleting one flips IsDeleted instead, which hides it
// from every catalog search.
type Author struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:256;not null" json:"name"`
	IsDeleted bool   `gorm:"not null;default:false" json:"is_deleted"`
	Books     []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

type Book struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:512;not null" json:"name"`
	IsAgeLimit bool    `gorm:"not null;default:false" json:"is_age_limit"`
	AuthorID   *uint   `gorm:"index" json:"author_id,omitempty"`
	Author     *Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
}

// Reader authenticates with HTTP Basic credentials. Password holds a bcrypt
// hash, never plaintext, and stays out of JSON. Age is a pointer so that a
// reader with age 0 is still "age known" and distinct from age absent.
type Reader struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:128;not null" json:"-"`
	Age      *int   `json:"age,omitempty"`
}
