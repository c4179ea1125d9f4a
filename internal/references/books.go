package references

// bookNumbers maps the app's canonical Dutch book names to book numbers.
// Number 40 is a catch-all for references to the gospels in general.
var bookNumbers = map[string]int{
	"Genesis": 1, "Exodus": 2, "Leviticus": 3, "Numeri": 4, "Deuteronomium": 5,
	"Jozua": 6, "Richteren": 7, "Ruth": 8, "1 Samuël": 9, "2 Samuël": 10,
	"1 Koningen": 11, "2 Koningen": 12, "1 Kronieken": 13, "2 Kronieken": 14,
	"Ezra": 15, "Nehemia": 16, "Esther": 17, "Job": 18, "Psalmen": 19,
	"Spreuken": 20, "Prediker": 21, "Hooglied": 22, "Jesaja": 23, "Jeremia": 24,
	"Klaagliederen": 25, "Ezechiël": 26, "Daniël": 27, "Hosea": 28, "Joël": 29,
	"Amos": 30, "Obadja": 31, "Jona": 32, "Micha": 33, "Nahum": 34,
	"Habakuk": 35, "Sefanja": 36, "Haggai": 37, "Zacharia": 38, "Maleachi": 39,

	"Nieuwe testament": 40, "Mattheüs": 41, "Markus": 42, "Lukas": 43, "Johannes": 44,
	"Handelingen": 45, "Romeinen": 46, "1 Korintiërs": 47, "2 Korintiërs": 48, "Galaten": 49,
	"Efeziërs": 50, "Filippenzen": 51, "Kolossenzen": 52, "1 Tessalonicenzen": 53,
	"2 Tessalonicenzen": 54, "1 Timotheüs": 55, "2 Timotheüs": 56, "Titus": 57,
	"Filemon": 58, "Hebreeën": 59, "Jakobus": 60, "1 Petrus": 61, "2 Petrus": 62,
	"1 Johannes": 63, "2 Johannes": 64, "3 Johannes": 65, "Judas": 66, "Openbaring": 67,
}

// legacyNames maps spellings found in older questions to canonical names.
var legacyNames = map[string]string{
	"1 Samuel":   "1 Samuël",
	"2 Samuel":   "2 Samuël",
	"Ester":      "Esther",
	"Ezechiel":   "Ezechiël",
	"Daniel":     "Daniël",
	"Joel":       "Joël",
	"Zefanja":    "Sefanja",
	"Hoséa":      "Hosea",
	"Hábakuk":    "Habakuk",
	"Jeremía":    "Jeremia",
	"Hizkía":     "Hizkia",
	"Maleáchi":   "Maleachi",
	"Nehémia":    "Nehemia",
	"Zacharía":   "Zacharia",
	"Zefánja":    "Sefanja",
	"Éxodus":     "Exodus",
	"Matteus":    "Mattheüs",
	"Marcus":     "Markus",
	"1 Korinthe": "1 Korintiërs",
	"2 Korinthe": "2 Korintiërs",
	"Korinthe":   "Korintiërs",

	"1 Korintiers": "1 Korintiërs",
	"2 Korintiers": "2 Korintiërs",
	"Efeziers":     "Efeziërs",
	"Éfeze":        "Efeziërs",
	"1 Timótheüs":  "1 Timotheüs",
	"2 Timothéüs":  "2 Timotheüs",
	"2 Timótheüs":  "2 Timotheüs",
	"1 Timoteus":   "1 Timotheüs",
	"2 Timoteus":   "2 Timotheüs",
	"Hebreeen":     "Hebreeën",
	"Mattéüs":      "Mattheüs",
	"Matthéus":     "Mattheüs",
	"Matthéüs":     "Mattheüs",

	"In de Evangeliën": "Nieuwe testament",
	"Psalm":            "Psalmen",
}
