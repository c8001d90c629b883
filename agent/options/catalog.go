// Package options scores a vehicle's option labels against a persona's
// weighted preferences.
package options

import contractx "github.com/carpickhq/carpick-agent/agent/contract"

// Category groups catalog entries.
type Category string

const (
	CategorySafety      Category = "safety"
	CategoryComfort     Category = "comfort"
	CategoryConvenience Category = "convenience"
	CategoryPerformance Category = "performance"
	CategoryLuxury      Category = "luxury"
)

// CatalogEntry is one option of the static market catalog. Loaded once,
// never mutated; safe for concurrent reads.
type CatalogEntry struct {
	Name             string
	MarketPopularity float64 // 0-100
	Category         Category
	PersonaRelevance map[contractx.PersonaID]float64 // 0-100
}

var catalog = []CatalogEntry{
	{
		Name: "썬루프", MarketPopularity: 72, Category: CategoryComfort,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      70,
			contractx.PersonaFamilyFocused:     45,
			contractx.PersonaYoungProfessional: 80,
			contractx.PersonaEcoPractical:      25,
			contractx.PersonaLeisureOutdoor:    55,
		},
	},
	{
		Name: "통풍시트", MarketPopularity: 78, Category: CategoryComfort,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      90,
			contractx.PersonaFamilyFocused:     60,
			contractx.PersonaYoungProfessional: 65,
			contractx.PersonaEcoPractical:      30,
			contractx.PersonaLeisureOutdoor:    50,
		},
	},
	{
		Name: "열선시트", MarketPopularity: 88, Category: CategoryComfort,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      60,
			contractx.PersonaFamilyFocused:     70,
			contractx.PersonaYoungProfessional: 60,
			contractx.PersonaEcoPractical:      55,
			contractx.PersonaLeisureOutdoor:    65,
		},
	},
	{
		Name: "어라운드뷰", MarketPopularity: 64, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      85,
			contractx.PersonaFamilyFocused:     88,
			contractx.PersonaYoungProfessional: 70,
			contractx.PersonaEcoPractical:      40,
			contractx.PersonaLeisureOutdoor:    75,
		},
	},
	{
		Name: "후방카메라", MarketPopularity: 93, Category: CategorySafety,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      75,
			contractx.PersonaFamilyFocused:     92,
			contractx.PersonaYoungProfessional: 85,
			contractx.PersonaEcoPractical:      70,
			contractx.PersonaLeisureOutdoor:    80,
		},
	},
	{
		Name: "스마트크루즈컨트롤", MarketPopularity: 58, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      92,
			contractx.PersonaFamilyFocused:     75,
			contractx.PersonaYoungProfessional: 72,
			contractx.PersonaEcoPractical:      35,
			contractx.PersonaLeisureOutdoor:    78,
		},
	},
	{
		Name: "차선이탈경보", MarketPopularity: 70, Category: CategorySafety,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      68,
			contractx.PersonaFamilyFocused:     90,
			contractx.PersonaYoungProfessional: 66,
			contractx.PersonaEcoPractical:      50,
			contractx.PersonaLeisureOutdoor:    72,
		},
	},
	{
		Name: "긴급제동보조", MarketPopularity: 66, Category: CategorySafety,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      70,
			contractx.PersonaFamilyFocused:     95,
			contractx.PersonaYoungProfessional: 68,
			contractx.PersonaEcoPractical:      55,
			contractx.PersonaLeisureOutdoor:    70,
		},
	},
	{
		Name: "헤드업디스플레이", MarketPopularity: 42, Category: CategoryLuxury,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      80,
			contractx.PersonaFamilyFocused:     40,
			contractx.PersonaYoungProfessional: 75,
			contractx.PersonaEcoPractical:      20,
			contractx.PersonaLeisureOutdoor:    45,
		},
	},
	{
		Name: "전동트렁크", MarketPopularity: 55, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      88,
			contractx.PersonaFamilyFocused:     78,
			contractx.PersonaYoungProfessional: 55,
			contractx.PersonaEcoPractical:      25,
			contractx.PersonaLeisureOutdoor:    82,
		},
	},
	{
		Name: "순정내비게이션", MarketPopularity: 84, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      72,
			contractx.PersonaFamilyFocused:     76,
			contractx.PersonaYoungProfessional: 78,
			contractx.PersonaEcoPractical:      60,
			contractx.PersonaLeisureOutdoor:    74,
		},
	},
	{
		Name: "하이패스", MarketPopularity: 80, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      78,
			contractx.PersonaFamilyFocused:     66,
			contractx.PersonaYoungProfessional: 62,
			contractx.PersonaEcoPractical:      58,
			contractx.PersonaLeisureOutdoor:    64,
		},
	},
	{
		Name: "4륜구동", MarketPopularity: 38, Category: CategoryPerformance,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      50,
			contractx.PersonaFamilyFocused:     55,
			contractx.PersonaYoungProfessional: 45,
			contractx.PersonaEcoPractical:      15,
			contractx.PersonaLeisureOutdoor:    93,
		},
	},
	{
		Name: "2열리클라이닝", MarketPopularity: 34, Category: CategoryComfort,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      82,
			contractx.PersonaFamilyFocused:     85,
			contractx.PersonaYoungProfessional: 30,
			contractx.PersonaEcoPractical:      20,
			contractx.PersonaLeisureOutdoor:    60,
		},
	},
	{
		Name: "루프랙", MarketPopularity: 29, Category: CategoryConvenience,
		PersonaRelevance: map[contractx.PersonaID]float64{
			contractx.PersonaCEOExecutive:      20,
			contractx.PersonaFamilyFocused:     45,
			contractx.PersonaYoungProfessional: 35,
			contractx.PersonaEcoPractical:      18,
			contractx.PersonaLeisureOutdoor:    90,
		},
	},
}

// Catalog returns the static option catalog. Treat as read-only.
func Catalog() []CatalogEntry {
	return catalog
}
