package export

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadResolutions(t *testing.T) {
	path := writeFile(t, "resolutions.csv", []byte(
		"key,paper_id\nsmith2019,abc123\n,orphan\njones2020,def456\n"))

	resolutions, err := LoadResolutions(path)
	if err != nil {
		t.Fatalf("LoadResolutions failed: %v", err)
	}
	if len(resolutions) != 2 {
		t.Fatalf("Expected 2 resolutions (empty key skipped), got %d", len(resolutions))
	}
	if resolutions["smith2019"] != "abc123" {
		t.Errorf("smith2019 resolved to %q", resolutions["smith2019"])
	}
}

func TestLoadResolutionsMissingColumn(t *testing.T) {
	path := writeFile(t, "resolutions.csv", []byte("key,s2id\na,b\n"))

	if _, err := LoadResolutions(path); err == nil {
		t.Error("Expected error for missing paper_id column")
	}
}

func TestLoadReferencesStripsMarkup(t *testing.T) {
	path := writeFile(t, "references.csv", []byte(
		"paper_id,title,authors,venue,year\n"+
			"abc123,\"Deep <i>Learning</i> Methods\",\"Smith, Jones\",<b>NeurIPS</b>,2019\n"))

	references, err := LoadReferences(path)
	if err != nil {
		t.Fatalf("LoadReferences failed: %v", err)
	}

	ref := references["abc123"]
	if ref.Title != "Deep Learning Methods" {
		t.Errorf("Markup not stripped from title: %q", ref.Title)
	}
	if ref.Venue != "NeurIPS" {
		t.Errorf("Markup not stripped from venue: %q", ref.Venue)
	}
	if ref.Authors != "Smith, Jones" {
		t.Errorf("Authors altered: %q", ref.Authors)
	}
}

func TestLoadReferencesLatin1Fallback(t *testing.T) {
	// "Müller" encoded as Latin-1: 0xFC is not valid UTF-8.
	row := append([]byte("paper_id,title,authors,venue,year\nabc,T,M"), 0xFC)
	row = append(row, []byte("ller,V,2020\n")...)
	path := writeFile(t, "references.csv", row)

	references, err := LoadReferences(path)
	if err != nil {
		t.Fatalf("LoadReferences failed on Latin-1 input: %v", err)
	}
	if references["abc"].Authors != "Müller" {
		t.Errorf("Latin-1 author not decoded: %q", references["abc"].Authors)
	}
}

func TestLoadSymbolLocations(t *testing.T) {
	path := writeFile(t, "symbol_locations.csv", []byte(
		"tex_path,equation_index,symbol_index,page,left,top,width,height\n"+
			"main.tex,0,2,1,0.25,0.5,0.02,0.01\n"))

	locations, err := LoadSymbolLocations(path)
	if err != nil {
		t.Fatalf("LoadSymbolLocations failed: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("Expected 1 location, got %d", len(locations))
	}

	loc := locations[0]
	if loc.TexPath != "main.tex" || loc.EquationIndex != 0 || loc.SymbolIndex != 2 {
		t.Errorf("Location keys mismatch: %+v", loc)
	}
	if loc.Box.Page != 1 || loc.Box.Left != 0.25 || loc.Box.Height != 0.01 {
		t.Errorf("Location box mismatch: %+v", loc.Box)
	}
}

func TestLoadSymbolLocationsBadRow(t *testing.T) {
	path := writeFile(t, "symbol_locations.csv", []byte(
		"tex_path,equation_index,symbol_index,page,left,top,width,height\n"+
			"main.tex,zero,2,1,0.25,0.5,0.02,0.01\n"))

	if _, err := LoadSymbolLocations(path); err == nil {
		t.Error("Expected error for non-numeric equation index")
	}
}

func TestLoadMatches(t *testing.T) {
	path := writeFile(t, "matches.csv", []byte(
		"queried_mathml,matching_mathml,rank\n"+
			"<mi>x</mi>,<mi>y</mi>,2\n"+
			"<mi>x</mi>,<mi>x</mi>,1\n"))

	matches, err := LoadMatches(path)
	if err != nil {
		t.Fatalf("LoadMatches failed: %v", err)
	}

	xs := matches["<mi>x</mi>"]
	if len(xs) != 2 {
		t.Fatalf("Expected 2 matches for <mi>x</mi>, got %d", len(xs))
	}
}

func TestReadTableMissingFile(t *testing.T) {
	if _, err := LoadResolutions(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing table file")
	}
}
