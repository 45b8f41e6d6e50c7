package export

import (
	"fmt"
	"sort"

	"github.com/tsawler/hueloc/model"
)

// Symbol is one symbol occurrence prepared for export. Every symbol gets
// an explicit integer key at load time; parent/child relationships refer
// to those keys, never to in-memory object identity, so they survive
// serialization and cross-process boundaries.
type Symbol struct {
	// Key is the stable per-document integer key for this symbol.
	Key int

	// MathML is the symbol's markup representation.
	MathML string

	// Children holds the keys of this symbol's child symbols.
	Children []int
}

// BuildSymbolInfos turns symbols and their located bounding boxes into
// export records. Symbols with no located boxes were never recovered from
// the rasters; they are excluded and returned in unlocated for the caller
// to log. MathML match rankings, when available for a symbol's markup, are
// attached to the record ordered by rank. Output is ordered by symbol key.
func BuildSymbolInfos(symbols []Symbol, boxes map[int][]model.BoundingBox, matches map[string][]Match) (infos []model.EntityUploadInfo, unlocated []int) {
	ordered := make([]Symbol, len(symbols))
	copy(ordered, symbols)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })

	for _, sym := range ordered {
		located, ok := boxes[sym.Key]
		if !ok || len(located) == 0 {
			unlocated = append(unlocated, sym.Key)
			continue
		}

		data := map[string]any{
			"mathml": sym.MathML,
		}

		if len(sym.Children) > 0 {
			children := make([]string, len(sym.Children))
			for i, childKey := range sym.Children {
				children[i] = symbolID(childKey)
			}
			data["children"] = children
		}

		if symMatches := matches[sym.MathML]; len(symMatches) > 0 {
			ranked := make([]Match, len(symMatches))
			copy(ranked, symMatches)
			sort.Slice(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })

			matching := make([]string, len(ranked))
			for i, m := range ranked {
				matching[i] = m.MatchingMathML
			}
			data["matches"] = matching
		}

		infos = append(infos, model.EntityUploadInfo{
			ID:            symbolID(sym.Key),
			Type:          model.EntitySymbol,
			BoundingBoxes: located,
			Data:          data,
		})
	}

	return infos, unlocated
}

// SymbolsFromLocations assigns explicit integer keys to symbol-location
// rows, in row order, and returns the per-key box lists. Rows sharing a
// (tex path, equation, symbol) triple share one key.
func SymbolsFromLocations(locations []SymbolLocation) (keys map[string]int, boxes map[int][]model.BoundingBox) {
	keys = make(map[string]int)
	boxes = make(map[int][]model.BoundingBox)

	for _, loc := range locations {
		id := fmt.Sprintf("%s-%d-%d", loc.TexPath, loc.EquationIndex, loc.SymbolIndex)
		key, ok := keys[id]
		if !ok {
			key = len(keys)
			keys[id] = key
		}
		boxes[key] = append(boxes[key], loc.Box)
	}

	return keys, boxes
}

// symbolID formats the export id for a symbol key.
func symbolID(key int) string {
	return fmt.Sprintf("symbol-%d", key)
}
