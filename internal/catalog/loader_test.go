package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"popcorn/internal/catalog"
)

const header = "Poster_Link,Series_Title,Released_Year,Certificate,Runtime,Genre,IMDB_Rating,Overview,Meta_score,Director,Star1,Star2,Star3,Star4,No_of_Votes,Gross\n"

func csvOf(rows ...string) string {
	return header + strings.Join(rows, "\n") + "\n"
}

func TestLoadParsesRows(t *testing.T) {
	input := csvOf(
		`https://img/inception.jpg,Inception,2010,UA,148 min,"Action, Adventure, Sci-Fi",8.8,A thief steals secrets through dreams.,74,Christopher Nolan,Leonardo DiCaprio,Joseph Gordon-Levitt,Elliot Page,Ken Watanabe,2067042,"292,576,195"`,
	)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if corpus.Len() != 1 || len(corpus.Dropped) != 0 {
		t.Fatalf("expected 1 movie and no drops, got %d/%d", corpus.Len(), len(corpus.Dropped))
	}

	movie := corpus.Movies[0]
	if movie.Title != "Inception" || movie.Year != 2010 || movie.Runtime != 148 || movie.Rating != 8.8 {
		t.Fatalf("unexpected movie: %+v", movie)
	}
	if movie.Stars != "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page, Ken Watanabe" {
		t.Fatalf("unexpected stars: %q", movie.Stars)
	}
	wantContent := "Inception A thief steals secrets through dreams. Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page, Ken Watanabe Christopher Nolan Action, Adventure, Sci-Fi"
	if movie.Content != wantContent {
		t.Fatalf("content = %q, want %q", movie.Content, wantContent)
	}
	if movie.Poster != "https://img/inception.jpg" || movie.Certificate != "UA" || movie.Votes != "2067042" {
		t.Fatalf("passthrough fields not carried: %+v", movie)
	}
	genres := movie.Genres()
	if len(genres) != 3 || genres[2] != "Sci-Fi" {
		t.Fatalf("unexpected genres: %v", genres)
	}
}

func TestLoadSkipsEmptyStars(t *testing.T) {
	input := csvOf(`p,Solo,1999,,100 min,Drama,7.0,Alone.,,Jane Doe,Ann Lee,,,Bo Chan,10,`)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := corpus.Movies[0].Stars; got != "Ann Lee, Bo Chan" {
		t.Fatalf("stars = %q", got)
	}
}

func TestLoadImputesMissingYearWithMedian(t *testing.T) {
	tests := []struct {
		name  string
		years []string
		want  int
	}{
		{"odd count", []string{"2000", "2010", "PG", "2004"}, 2004},
		{"even count", []string{"2000", "PG", "2010"}, 2005},
		{"no years at all", []string{"PG", ""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]string, 0, len(tt.years))
			missing := -1
			for i, year := range tt.years {
				if year == "PG" || year == "" {
					missing = i
				}
				rows = append(rows, "p,Movie "+string(rune('A'+i))+","+year+",,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,")
			}
			corpus, err := catalog.Load(strings.NewReader(csvOf(rows...)))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if got := corpus.Movies[missing].Year; got != tt.want {
				t.Fatalf("imputed year = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadStripsNonDigitsFromYear(t *testing.T) {
	corpus, err := catalog.Load(strings.NewReader(csvOf(`p,Odd,(1987),,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`)))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if corpus.Movies[0].Year != 1987 {
		t.Fatalf("year = %d, want 1987", corpus.Movies[0].Year)
	}
}

func TestLoadDropsBadRows(t *testing.T) {
	input := csvOf(
		`p,First,2001,,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`,
		`p,Bad Runtime,2002,,unknown,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`,
		`p,Bad Rating,2003,,100 min,Drama,,Plot.,,Dir,S1,S2,S3,S4,1,`,
		`p,,2004,,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`,
		`p,First,2005,,90 min,Comedy,6.0,Other.,,Dir,S1,S2,S3,S4,1,`,
		`p,Second,2006,,110 min,Drama,8.0,Plot.,,Dir,S1,S2,S3,S4,1,`,
	)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if corpus.Len() != 2 || corpus.Movies[0].Title != "First" || corpus.Movies[1].Title != "Second" {
		t.Fatalf("unexpected movies: %+v", corpus.Movies)
	}
	if corpus.Movies[0].Year != 2001 {
		t.Fatalf("duplicate should not replace first row, got year %d", corpus.Movies[0].Year)
	}

	wantErrs := []error{catalog.ErrMalformedRecord, catalog.ErrMalformedRecord, catalog.ErrMissingTitle, catalog.ErrDuplicateTitle}
	if len(corpus.Dropped) != len(wantErrs) {
		t.Fatalf("dropped = %d, want %d", len(corpus.Dropped), len(wantErrs))
	}
	for i, want := range wantErrs {
		if !errors.Is(corpus.Dropped[i], want) {
			t.Errorf("dropped[%d] = %v, want %v", i, corpus.Dropped[i], want)
		}
	}
	if corpus.Dropped[0].Field != catalog.ColumnRuntime || corpus.Dropped[0].Line != 3 {
		t.Errorf("unexpected record error: %+v", corpus.Dropped[0])
	}
	var recErr *catalog.RecordError
	if !errors.As(error(corpus.Dropped[3]), &recErr) || recErr.Title != "First" {
		t.Errorf("expected duplicate record error for First, got %v", corpus.Dropped[3])
	}
}

func TestLoadRejectsMissingColumns(t *testing.T) {
	_, err := catalog.Load(strings.NewReader("Series_Title,Runtime\nInception,148 min\n"))
	if err == nil || !strings.Contains(err.Error(), "IMDB_Rating") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoadDropsRaggedRow(t *testing.T) {
	input := csvOf(
		`p,First,2001,,100 min,Drama,7.0,Plot one.,,Dir,S1,S2,S3,S4,1,"1,000"`,
		`p,No Gross,2002,,110 min,Drama,7.5,Plot two.,,Dir,S1,S2,S3,S4,2`,
		`p,Short,2003`,
		`p,Last,2004,,120 min,Comedy,8.0,Plot three.,,Dir,S1,S2,S3,S4,3,"2,000"`,
	)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	var titles []string
	for _, m := range corpus.Movies {
		titles = append(titles, m.Title)
	}
	if got := strings.Join(titles, ","); got != "First,No Gross,Last" {
		t.Fatalf("loaded titles = %q, want First,No Gross,Last", got)
	}
	if corpus.Movies[1].Votes != "2" {
		t.Fatalf("votes = %q, want 2", corpus.Movies[1].Votes)
	}

	if len(corpus.Dropped) != 1 {
		t.Fatalf("expected 1 dropped row, got %d", len(corpus.Dropped))
	}
	drop := corpus.Dropped[0]
	if !errors.Is(drop, catalog.ErrMalformedRecord) || drop.Line != 4 || drop.Title != "Short" {
		t.Fatalf("unexpected drop: %+v", drop)
	}
}

func TestLoadFailsOnUnreadableCSV(t *testing.T) {
	input := csvOf(
		`p,First,2001,,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`,
		`p,"Broken,2001`,
	)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if corpus != nil {
		t.Fatal("expected no partial corpus on error")
	}
}

func TestLoadEmptySource(t *testing.T) {
	if _, err := catalog.Load(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(csvOf(`p,Only,2001,,100 min,Drama,7.0,Plot.,,Dir,S1,S2,S3,S4,1,`)), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	corpus, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if corpus.Len() != 1 {
		t.Fatalf("expected 1 movie, got %d", corpus.Len())
	}

	if _, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCorpusGenresAndDirectors(t *testing.T) {
	input := csvOf(
		`p,A,2001,,100 min,"Drama, Crime",7.0,Plot.,,Zed,S1,S2,S3,S4,1,`,
		`p,B,2001,,100 min,"Comedy, Drama",7.0,Plot.,,Amy,S1,S2,S3,S4,1,`,
		`p,C,2001,,100 min,Comedy,7.0,Plot.,,Zed,S1,S2,S3,S4,1,`,
	)
	corpus, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := strings.Join(corpus.Genres(), "|"); got != "Comedy|Crime|Drama" {
		t.Fatalf("genres = %q", got)
	}
	if got := strings.Join(corpus.Directors(), "|"); got != "Amy|Zed" {
		t.Fatalf("directors = %q", got)
	}
}
