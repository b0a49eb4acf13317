package explain

import "hash/fnv"

// glossary maps fragrance vocabulary to plain-language definitions. The
// specialized beginner tier teaches exactly one of these per explanation
// instead of omitting technical vocabulary.
var glossary = map[string]string{
	"top notes": "the scents you smell in the first few minutes after spraying, before the fragrance settles",
	"longevity": "how many hours a fragrance stays detectable on your skin",
	"sillage":   "the scent trail a fragrance leaves in the air around you",
	"dry down":  "the way a fragrance smells hours later, once the lighter notes have faded",
	"accord":    "a blend of notes that together create one recognizable scent character",
}

// glossaryTerms is the stable iteration order for deterministic term selection.
var glossaryTerms = []string{"top notes", "longevity", "sillage", "dry down", "accord"}

// termFor deterministically picks one glossary term per item, so repeated
// requests for the same candidate teach the same concept.
func termFor(itemID string) (string, string) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(itemID))
	term := glossaryTerms[int(h.Sum32())%len(glossaryTerms)]
	return term, glossary[term]
}

// referenceByFamily maps a scent family to a widely known benchmark
// fragrance used as the comparison anchor in explanations.
var referenceByFamily = map[string]string{
	"fresh":    "Acqua di Gio",
	"citrus":   "Light Blue",
	"fruity":   "Be Delicious",
	"floral":   "J'adore",
	"woody":    "Terre d'Hermes",
	"amber":    "Hypnotic Poison",
	"spicy":    "Spicebomb",
	"gourmand": "La Vie Est Belle",
	"musky":    "Glossier You",
	"aquatic":  "Cool Water",
	"green":    "Chanel No 19",
	"powdery":  "Flowerbomb",
}

// referenceFor picks the comparison anchor from the candidate's leading
// accord, falling back to a fresh benchmark when the accord is unmapped.
func referenceFor(accords []string) string {
	for _, a := range accords {
		if ref, ok := referenceByFamily[a]; ok {
			return ref
		}
	}
	return referenceByFamily["fresh"]
}
