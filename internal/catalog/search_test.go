package catalog

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/akarpov/bookcrud/internal/entities"
)

const testAgeLimit = 18

// Fixture: two live authors, one soft-deleted author, one author without
// books.
//
//	Tolkien:   "The Hobbit" (open), "The Silmarillion" (age-limited)
//	King:      "It" (age-limited)
//	Ghost:     soft-deleted, owns "Hidden Novel" (open)
//	Newcomer:  no books
func setupSearch(t *testing.T) (*Search, func()) {
	t.Helper()
	dbPath := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Author{}, &entities.Book{}, &entities.Reader{}))

	tolkien := entities.Author{Name: "J.R.R. Tolkien"}
	king := entities.Author{Name: "Stephen King"}
	ghost := entities.Author{Name: "Ghost Writer", IsDeleted: true}
	newcomer := entities.Author{Name: "Aspiring Newcomer"}
	for _, author := range []*entities.Author{&tolkien, &king, &ghost, &newcomer} {
		require.NoError(t, db.Create(author).Error)
	}

	books := []entities.Book{
		{Name: "The Hobbit", IsAgeLimit: false, AuthorID: &tolkien.ID},
		{Name: "The Silmarillion", IsAgeLimit: true, AuthorID: &tolkien.ID},
		{Name: "It", IsAgeLimit: true, AuthorID: &king.ID},
		{Name: "Hidden Novel", IsAgeLimit: false, AuthorID: &ghost.ID},
	}
	for i := range books {
		require.NoError(t, db.Create(&books[i]).Error)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewSearch(db, testAgeLimit), cleanup
}

func readerWithAge(age int) *entities.Reader {
	return &entities.Reader{ID: 1, Username: "reader", Age: &age}
}

func readerWithoutAge() *entities.Reader {
	return &entities.Reader{ID: 1, Username: "reader"}
}

func bookNames(books []entities.Book) []string {
	names := make([]string, 0, len(books))
	for _, book := range books {
		names = append(names, book.Name)
	}
	return names
}

func authorNames(authors []entities.Author) []string {
	names := make([]string, 0, len(authors))
	for _, author := range authors {
		names = append(names, author.Name)
	}
	return names
}

func TestSearch_Books_SoftDeletedAuthorExcluded(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByBookName}, readerWithAge(30))
	require.NoError(t, err)

	assert.NotContains(t, bookNames(books), "Hidden Novel")
}

func TestSearch_Books_UnderageReaderOnlySeesOpenBooks(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	// The caller's filter asks for age-limited books; the reader's age
	// must win.
	wantLimited := true
	books, err := search.Books(
		SearchParams{SortBy: SortByBookName, AgeLimit: &wantLimited},
		readerWithAge(15),
	)
	require.NoError(t, err)

	require.NotEmpty(t, books)
	for _, book := range books {
		assert.False(t, book.IsAgeLimit, "underage reader must never see %q", book.Name)
	}
}

func TestSearch_Books_AgeZeroIsKnownAndUnderage(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByBookName}, readerWithAge(0))
	require.NoError(t, err)

	for _, book := range books {
		assert.False(t, book.IsAgeLimit)
	}
}

func TestSearch_Books_AdultReaderSeesEverything(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByBookName}, readerWithAge(30))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"The Hobbit", "The Silmarillion", "It"}, bookNames(books))
}

func TestSearch_Books_UnknownAgeDefaultsToOpenBooks(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByBookName}, readerWithoutAge())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"The Hobbit"}, bookNames(books))
}

func TestSearch_Books_UnknownAgeHonoursCallerFilter(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	wantLimited := true
	books, err := search.Books(
		SearchParams{SortBy: SortByBookName, AgeLimit: &wantLimited},
		readerWithoutAge(),
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"The Silmarillion", "It"}, bookNames(books))
}

func TestSearch_Books_SortByBookName(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByBookName}, readerWithAge(30))
	require.NoError(t, err)

	assert.Equal(t, []string{"It", "The Hobbit", "The Silmarillion"}, bookNames(books))
}

func TestSearch_Books_SortByAuthor(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(SearchParams{SortBy: SortByAuthor}, readerWithAge(30))
	require.NoError(t, err)

	// Tolkien sorts before King by author name.
	require.Len(t, books, 3)
	assert.Equal(t, "The Hobbit", books[0].Name)
	assert.Equal(t, "The Silmarillion", books[1].Name)
	assert.Equal(t, "It", books[2].Name)
}

func TestSearch_Books_CaseInsensitiveNameFilters(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(
		SearchParams{SortBy: SortByBookName, BookName: "hObBiT"},
		readerWithAge(30),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit"}, bookNames(books))

	books, err = search.Books(
		SearchParams{SortBy: SortByBookName, AuthorName: "tolkien"},
		readerWithAge(30),
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"The Hobbit", "The Silmarillion"}, bookNames(books))
}

func TestSearch_Books_AuthorPreloaded(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	books, err := search.Books(
		SearchParams{SortBy: SortByBookName, BookName: "hobbit"},
		readerWithAge(30),
	)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "J.R.R. Tolkien", books[0].Author.Name)
}

func TestSearch_Authors_SoftDeletedExcluded(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	authors, err := search.Authors(SearchParams{SortBy: SortByAuthor}, readerWithAge(30))
	require.NoError(t, err)

	assert.NotContains(t, authorNames(authors), "Ghost Writer")
}

func TestSearch_Authors_BooklessAuthorVisible(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	authors, err := search.Authors(SearchParams{SortBy: SortByAuthor}, readerWithoutAge())
	require.NoError(t, err)

	assert.Contains(t, authorNames(authors), "Aspiring Newcomer")
}

func TestSearch_Authors_UnderageReaderGating(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	authors, err := search.Authors(SearchParams{SortBy: SortByAuthor}, readerWithAge(15))
	require.NoError(t, err)

	names := authorNames(authors)
	// King only has an age-limited book, so he disappears for minors;
	// Tolkien stays because "The Hobbit" is open; the bookless author
	// stays too.
	assert.Contains(t, names, "J.R.R. Tolkien")
	assert.Contains(t, names, "Aspiring Newcomer")
	assert.NotContains(t, names, "Stephen King")
}

func TestSearch_Authors_UnknownAgeHonoursCallerFilter(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	wantLimited := true
	authors, err := search.Authors(
		SearchParams{SortBy: SortByAuthor, AgeLimit: &wantLimited},
		readerWithoutAge(),
	)
	require.NoError(t, err)

	names := authorNames(authors)
	assert.Contains(t, names, "Stephen King")
	assert.Contains(t, names, "J.R.R. Tolkien")
}

func TestSearch_Authors_FilterByBookName(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	authors, err := search.Authors(
		SearchParams{SortBy: SortByAuthor, BookName: "silmarillion"},
		readerWithAge(30),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"J.R.R. Tolkien"}, authorNames(authors))
}

func TestSearch_Authors_SortByAuthorName(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	authors, err := search.Authors(SearchParams{SortBy: SortByAuthor}, readerWithAge(30))
	require.NoError(t, err)

	names := authorNames(authors)
	require.Len(t, names, 3)
	assert.Equal(t, []string{"Aspiring Newcomer", "J.R.R. Tolkien", "Stephen King"}, names)
}

func TestSearch_Authors_NoDuplicatesFromJoin(t *testing.T) {
	search, cleanup := setupSearch(t)
	defer cleanup()

	// Tolkien owns two visible books; he must still appear once.
	authors, err := search.Authors(SearchParams{SortBy: SortByAuthor}, readerWithAge(30))
	require.NoError(t, err)

	seen := map[string]int{}
	for _, author := range authors {
		seen[author.Name]++
	}
	assert.Equal(t, 1, seen["J.R.R. Tolkien"])
}

func TestValidSortBy(t *testing.T) {
	assert.True(t, ValidSortBy("author"))
	assert.True(t, ValidSortBy("book_name"))
	assert.False(t, ValidSortBy(""))
	assert.False(t, ValidSortBy("publication_year"))
}
