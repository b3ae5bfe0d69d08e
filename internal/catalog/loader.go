package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Column headers of the IMDB top-1000 layout.
const (
	ColumnTitle       = "Series_Title"
	ColumnYear        = "Released_Year"
	ColumnRuntime     = "Runtime"
	ColumnGenre       = "Genre"
	ColumnDirector    = "Director"
	ColumnOverview    = "Overview"
	ColumnRating      = "IMDB_Rating"
	ColumnPoster      = "Poster_Link"
	ColumnCertificate = "Certificate"
	ColumnMetaScore   = "Meta_score"
	ColumnVotes       = "No_of_Votes"
)

var starColumns = []string{"Star1", "Star2", "Star3", "Star4"}

var requiredColumns = []string{
	ColumnTitle,
	ColumnYear,
	ColumnRuntime,
	ColumnGenre,
	ColumnDirector,
	ColumnOverview,
	ColumnRating,
	ColumnPoster,
}

// LoadFile opens path and loads the catalog from it.
func LoadFile(path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	corpus, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return corpus, nil
}

// Load reads a catalog CSV. Rows that cannot be normalized, including rows
// too short to hold every required column, are reported in Corpus.Dropped;
// a read or header failure returns an error and no corpus.
func Load(r io.Reader) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		movies  []Movie
		years   []*int
		dropped []*RecordError
		titles  = make(map[string]struct{})
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		line, _ := reader.FieldPos(0)

		movie, year, recErr := parseRow(columns, record, line)
		if recErr == nil {
			recErr = columns.checkWidth(record, line, movie.Title)
		}
		if recErr == nil {
			if _, dup := titles[movie.Title]; dup {
				recErr = &RecordError{Line: line, Title: movie.Title, Err: ErrDuplicateTitle}
			}
		}
		if recErr != nil {
			dropped = append(dropped, recErr)
			continue
		}
		titles[movie.Title] = struct{}{}
		movies = append(movies, movie)
		years = append(years, year)
	}

	imputed := medianYear(years)
	for i := range movies {
		if years[i] == nil {
			movies[i].Year = imputed
		}
		movies[i].Content = contentBlob(movies[i])
	}
	return &Corpus{Movies: movies, Dropped: dropped}, nil
}

type columnIndex map[string]int

func (c columnIndex) get(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// checkWidth rejects rows that end before a required column. Optional
// trailing columns may be absent.
func (c columnIndex) checkWidth(record []string, line int, title string) *RecordError {
	for _, name := range requiredColumns {
		if c[name] >= len(record) {
			return &RecordError{
				Line:  line,
				Title: title,
				Field: name,
				Err:   fmt.Errorf("%w: row has %d fields, missing %s", ErrMalformedRecord, len(record), name),
			}
		}
	}
	return nil
}

func indexColumns(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog header missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(columns columnIndex, record []string, line int) (Movie, *int, *RecordError) {
	title := columns.get(record, ColumnTitle)
	if title == "" {
		return Movie{}, nil, &RecordError{Line: line, Field: ColumnTitle, Err: ErrMissingTitle}
	}

	rawRuntime := columns.get(record, ColumnRuntime)
	runtime, err := parseRuntime(rawRuntime)
	if err != nil {
		return Movie{}, nil, &RecordError{
			Line:  line,
			Title: title,
			Field: ColumnRuntime,
			Err:   fmt.Errorf("%w: runtime %q", ErrMalformedRecord, rawRuntime),
		}
	}

	rawRating := columns.get(record, ColumnRating)
	rating, err := strconv.ParseFloat(rawRating, 64)
	if err != nil {
		return Movie{}, nil, &RecordError{
			Line:  line,
			Title: title,
			Field: ColumnRating,
			Err:   fmt.Errorf("%w: rating %q", ErrMalformedRecord, rawRating),
		}
	}

	stars := make([]string, 0, len(starColumns))
	for _, column := range starColumns {
		if star := columns.get(record, column); star != "" {
			stars = append(stars, star)
		}
	}

	movie := Movie{
		Title:       title,
		Runtime:     runtime,
		Genre:       columns.get(record, ColumnGenre),
		Director:    columns.get(record, ColumnDirector),
		Stars:       strings.Join(stars, ", "),
		Overview:    columns.get(record, ColumnOverview),
		Rating:      rating,
		Poster:      columns.get(record, ColumnPoster),
		Certificate: columns.get(record, ColumnCertificate),
		MetaScore:   columns.get(record, ColumnMetaScore),
		Votes:       columns.get(record, ColumnVotes),
	}
	year, ok := parseYear(columns.get(record, ColumnYear))
	if !ok {
		return movie, nil, nil
	}
	movie.Year = year
	return movie, &year, nil
}

// parseYear keeps only the digits of the raw value; values such as "PG"
// normalize to nothing and count as missing.
func parseYear(raw string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return year, true
}

func parseRuntime(raw string) (int, error) {
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "min"))
	return strconv.Atoi(value)
}

func medianYear(years []*int) int {
	values := make([]int, 0, len(years))
	for _, year := range years {
		if year != nil {
			values = append(values, *year)
		}
	}
	if len(values) == 0 {
		return 0
	}
	sort.Ints(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

func contentBlob(m Movie) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{m.Title, m.Overview, m.Stars, m.Director, m.Genre} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
