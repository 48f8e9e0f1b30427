package classify

import (
	"strings"

	"github.com/greenpromise/emissions-tracker/constants"
)

// KeywordRule binds one category to its trigger substrings.
type KeywordRule struct {
	Category constants.Category
	Keywords []string
}

// KeywordRules is evaluated in order; the first category with a
// matching keyword wins, so the slice order is load-bearing.
var KeywordRules = []KeywordRule{
	{
		Category: constants.Energy,
		Keywords: []string{
			"pge", "pg&e", "con edison", "conedison", "duke energy", "duke", "dominion",
			"entergy", "xcel", "southern company", "national grid", "eversource",
			"electric", "electricity", "utility", "utilities", "power bill", "power company",
			"kwh", "kilowatt", "solar", "solar panel", "renewable", "wind energy",
			"natural gas", "gas bill", "gas company", "gas utility", "sempra", "atmos",
			"piedmont natural gas", "nv energy", "we energies", "ameren", "dte energy",
			"pseg", "comed", "aep", "firstenergy", "ppg", "lighting", "hvac", "generator",
		},
	},
	{
		Category: constants.Transport,
		Keywords: []string{
			"shell", "bp", "chevron", "exxon", "exxonmobil", "mobil", "valero", "marathon",
			"citgo", "sunoco", "arco", "texaco", "76", "circle k", "speedway", "wawa",
			"gasoline", "diesel", "petrol", "fuel", "gas station", "jet fuel", "aviation fuel",
			"uber", "lyft", "taxi", "fleet", "vehicle", "car rental", "hertz", "enterprise",
			"avis", "budget rental", "rideshare", "mileage", "tolls", "parking",
			"ups", "fedex", "dhl", "usps", "maersk", "freight", "logistics", "courier",
			"shipping", "shipment", "delivery", "trucking", "amazon logistics",
			"xpo logistics", "ch robinson", "j.b. hunt", "werner", "swift transport",
			"air freight", "ocean freight", "cargo", "3pl", "last mile",
			"airline", "delta", "united", "american airlines", "southwest", "flight",
			"amtrak", "train", "rail", "transit",
		},
	},
	{
		Category: constants.Supply,
		Keywords: []string{
			"amazon", "amazon business", "staples", "office depot", "uline", "grainger",
			"fastenal", "w.w. grainger", "mcmaster-carr", "home depot", "lowes", "lowe's",
			"packaging", "raw material", "raw materials", "office supplies",
			"lumber", "timber", "steel", "aluminum", "copper", "plastic", "resin",
			"fabric", "textile", "cardboard",
			"wholesale", "distributor",
			"food supplier", "wholesale food", "sysco", "us foods", "gordon food",
			"printing", "print shop", "manufacturing",
		},
	},
	{
		Category: constants.Waste,
		Keywords: []string{
			"waste management", "republic services", "clean harbors", "stericycle",
			"covanta", "casella waste", "recology", "advanced disposal", "rumpke",
			"waste connections", "clean earth", "us ecology",
			"recycling", "disposal", "landfill", "dumpster", "trash", "garbage",
			"compost", "composting", "hazardous waste", "e-waste", "scrap",
			"sewage", "wastewater", "sanitation", "janitorial", "cleaning service",
			"rubbish", "refuse", "incineration",
		},
	},
}

// MatchRule classifies by substring against the lowercased vendor and
// description. The second return is false when no keyword matches.
func MatchRule(vendor, description string) (constants.Category, bool) {
	haystack := strings.ToLower(vendor + " " + description)
	for _, rule := range KeywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
