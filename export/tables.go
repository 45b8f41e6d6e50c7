package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tsawler/hueloc/model"
)

// Reference is one external bibliographic metadata record.
type Reference struct {
	PaperID string
	Title   string
	Authors string
	Venue   string
	Year    string
}

// SymbolLocation is one row of the symbol-locations table: a bounding box
// keyed by the symbol's position in the source.
type SymbolLocation struct {
	TexPath       string
	EquationIndex int
	SymbolIndex   int
	Box           model.BoundingBox
}

// Match is one MathML similarity-search result.
type Match struct {
	QueriedMathML  string
	MatchingMathML string
	Rank           int
}

// LoadResolutions reads the bibitem-resolution table mapping citation keys
// to externally resolved paper ids. Rows with an empty key are skipped.
func LoadResolutions(path string) (map[string]string, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	keyCol, err := columnIndex(header, "key")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	idCol, err := columnIndex(header, "paper_id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	resolutions := make(map[string]string, len(rows))
	for _, row := range rows {
		if row[keyCol] == "" {
			continue
		}
		resolutions[row[keyCol]] = row[idCol]
	}
	return resolutions, nil
}

// LoadReferences reads the external metadata table, keyed by paper id.
// Title and venue fields arrive with embedded HTML markup from some
// sources; tags are stripped on load.
func LoadReferences(path string) (map[string]Reference, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cols := map[string]int{}
	for _, name := range []string{"paper_id", "title", "authors", "venue", "year"} {
		idx, err := columnIndex(header, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cols[name] = idx
	}

	references := make(map[string]Reference, len(rows))
	for _, row := range rows {
		ref := Reference{
			PaperID: row[cols["paper_id"]],
			Title:   stripMarkup(row[cols["title"]]),
			Authors: row[cols["authors"]],
			Venue:   stripMarkup(row[cols["venue"]]),
			Year:    row[cols["year"]],
		}
		references[ref.PaperID] = ref
	}
	return references, nil
}

// LoadSymbolLocations reads the symbol-locations table.
func LoadSymbolLocations(path string) ([]SymbolLocation, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cols := map[string]int{}
	for _, name := range []string{"tex_path", "equation_index", "symbol_index", "page", "left", "top", "width", "height"} {
		idx, err := columnIndex(header, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cols[name] = idx
	}

	locations := make([]SymbolLocation, 0, len(rows))
	for i, row := range rows {
		loc := SymbolLocation{TexPath: row[cols["tex_path"]]}

		var err error
		if loc.EquationIndex, err = strconv.Atoi(row[cols["equation_index"]]); err == nil {
			loc.SymbolIndex, err = strconv.Atoi(row[cols["symbol_index"]])
		}
		if err == nil {
			loc.Box.Page, err = strconv.Atoi(row[cols["page"]])
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}

		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"left", &loc.Box.Left},
			{"top", &loc.Box.Top},
			{"width", &loc.Box.Width},
			{"height", &loc.Box.Height},
		} {
			v, err := strconv.ParseFloat(row[cols[field.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %s: %w", path, i+1, field.name, err)
			}
			*field.dst = v
		}

		locations = append(locations, loc)
	}
	return locations, nil
}

// LoadMatches reads the MathML match table, grouped by queried MathML.
func LoadMatches(path string) (map[string][]Match, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}

	queriedCol, err := columnIndex(header, "queried_mathml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	matchingCol, err := columnIndex(header, "matching_mathml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rankCol, err := columnIndex(header, "rank")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	matches := make(map[string][]Match)
	for i, row := range rows {
		rank, err := strconv.Atoi(row[rankCol])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: rank: %w", path, i+1, err)
		}
		m := Match{
			QueriedMathML:  row[queriedCol],
			MatchingMathML: row[matchingCol],
			Rank:           rank,
		}
		matches[m.QueriedMathML] = append(matches[m.QueriedMathML], m)
	}
	return matches, nil
}

// readTable reads a CSV file into rows plus its header row. Files that are
// not valid UTF-8 are re-decoded as Latin-1 rather than rejected, since
// external metadata sources are not consistent about encoding.
func readTable(path string) (rows [][]string, header []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading table: %w", err)
	}

	if !utf8.Valid(data) {
		data, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding table %s as Latin-1: %w", path, err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing table %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("table %s is empty", path)
	}

	return all[1:], all[0], nil
}

// columnIndex finds a named column in the header row.
func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", name)
}

// stripMarkup removes embedded HTML tags from a metadata field, keeping
// the text content.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return strings.TrimSpace(b.String())
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
		}
	}
}
