package ingredients

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// descriptive words that commonly precede an ingredient name.
var commonAdjectives = wordSet(
	"large", "small", "medium", "big", "little",
	"ripe", "overripe", "fresh", "frozen", "dried", "stale",
	"raw", "cooked", "leftover",
	"organic", "free-range", "wild", "farmed",
	"boneless", "skinless", "lean", "fatty",
	"unsalted", "salted", "unsweetened", "sweetened",
	"sweet", "sour", "hot", "spicy", "mild", "cold", "warm",
	"fine", "coarse", "thick", "thin",
	"extra", "virgin", "light", "dark",
	"red", "green", "yellow", "white", "black", "brown", "purple",
	"baby", "young", "mature",
	"canned", "tinned", "jarred", "smoked", "cured",
	"whole", "half", "quartered",
	"good", "quality", "favorite",
)

// participles that describe preparation rather than the food itself.
// inside a noun phrase they mark where the description starts again.
var preparationWords = wordSet(
	"chopped", "diced", "minced", "sliced", "grated", "shredded",
	"ground", "crushed", "mashed", "pureed", "juiced", "zested",
	"peeled", "pitted", "seeded", "trimmed", "halved", "cubed",
	"melted", "softened", "beaten", "whisked", "sifted",
	"drained", "rinsed", "washed", "dried", "thawed",
	"toasted", "roasted", "boiled", "steamed", "blanched",
)
