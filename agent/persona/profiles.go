package persona

import contractx "github.com/carpickhq/carpick-agent/agent/contract"

// BiasKind says how a brand bias value must be interpreted when scoring.
type BiasKind int

const (
	// BiasCount is an absolute observed purchase count; log-scaled at score time.
	BiasCount BiasKind = iota
	// BiasWeight is an already-normalized share in [0,1]; used directly.
	BiasWeight
)

// BrandBias is one entry of a persona's brand preference table.
type BrandBias struct {
	Value float64
	Kind  BiasKind
}

// Profile is the static definition of one customer archetype. Loaded once,
// never mutated; safe for concurrent reads.
type Profile struct {
	ID           contractx.PersonaID
	Keywords     map[string]float64 // term -> static weight
	ContextTerms []string           // verbatim-hit bonus terms
	BrandBias    map[string]BrandBias
	Priorities   []string
	AgentOrder   []string // expected collaboration order
	// ExpectedInventory is the candidate count below which the pattern
	// detector flags insufficient_inventory for this persona.
	ExpectedInventory int
}

var profiles = []Profile{
	{
		ID: contractx.PersonaCEOExecutive,
		Keywords: map[string]float64{
			"골프":   3.0,
			"법인":   2.5,
			"의전":   2.5,
			"임원":   2.5,
			"접대":   2.0,
			"비즈니스": 2.0,
			"대표":   2.0,
			"리스":   1.5,
		},
		ContextTerms: []string{"골프백", "법인차", "출장", "거래처"},
		BrandBias: map[string]BrandBias{
			"벤츠":   {Value: 152, Kind: BiasCount},
			"bmw":  {Value: 127, Kind: BiasCount},
			"제네시스": {Value: 96, Kind: BiasCount},
			"아우디":  {Value: 0.12, Kind: BiasWeight},
		},
		Priorities:        []string{"브랜드", "승차감", "트렁크공간"},
		AgentOrder:        []string{contractx.AgentCoordinator, contractx.AgentNeedsAnalyst, contractx.AgentDataAnalyst},
		ExpectedInventory: 50,
	},
	{
		ID: contractx.PersonaFamilyFocused,
		Keywords: map[string]float64{
			"가족":  3.0,
			"아이":  3.0,
			"카시트": 2.5,
			"유모차": 2.5,
			"안전":  2.0,
			"통학":  2.0,
			"넓은":  1.5,
		},
		ContextTerms: []string{"어린이집", "주말여행", "둘째", "부모님"},
		BrandBias: map[string]BrandBias{
			"기아":  {Value: 143, Kind: BiasCount},
			"현대":  {Value: 131, Kind: BiasCount},
			"쉐보레": {Value: 0.09, Kind: BiasWeight},
		},
		Priorities:        []string{"안전", "공간", "유지비"},
		AgentOrder:        []string{contractx.AgentCoordinator, contractx.AgentNeedsAnalyst, contractx.AgentDataAnalyst},
		ExpectedInventory: 40,
	},
	{
		ID: contractx.PersonaYoungProfessional,
		Keywords: map[string]float64{
			"첫차":    3.0,
			"사회초년생": 3.0,
			"출퇴근":   2.5,
			"디자인":   2.5,
			"드라이브":  2.0,
			"옵션":    1.5,
		},
		ContextTerms: []string{"신입", "자취", "데이트"},
		BrandBias: map[string]BrandBias{
			"현대":  {Value: 104, Kind: BiasCount},
			"기아":  {Value: 98, Kind: BiasCount},
			"bmw": {Value: 0.08, Kind: BiasWeight},
			"미니":  {Value: 0.07, Kind: BiasWeight},
		},
		Priorities:        []string{"디자인", "가격", "연비"},
		AgentOrder:        []string{contractx.AgentCoordinator, contractx.AgentNeedsAnalyst, contractx.AgentDataAnalyst},
		ExpectedInventory: 30,
	},
	{
		ID: contractx.PersonaEcoPractical,
		Keywords: map[string]float64{
			"연비":  3.0,
			"경제적": 2.5,
			"유지비": 2.5,
			"경차":  2.5,
			"저렴":  2.0,
			"실용":  2.0,
		},
		ContextTerms: []string{"기름값", "보험료", "중고"},
		BrandBias: map[string]BrandBias{
			"기아":  {Value: 118, Kind: BiasCount},
			"쉐보레": {Value: 87, Kind: BiasCount},
			"현대":  {Value: 0.22, Kind: BiasWeight},
			"르노":  {Value: 0.06, Kind: BiasWeight},
		},
		Priorities:        []string{"연비", "가격", "유지비"},
		AgentOrder:        []string{contractx.AgentCoordinator, contractx.AgentNeedsAnalyst, contractx.AgentDataAnalyst},
		ExpectedInventory: 30,
	},
	{
		ID: contractx.PersonaLeisureOutdoor,
		Keywords: map[string]float64{
			"캠핑":  3.0,
			"차박":  3.0,
			"레저":  2.5,
			"낚시":  2.0,
			"적재":  2.0,
			"suv": 2.0,
		},
		ContextTerms: []string{"루프박스", "텐트", "사륜구동"},
		BrandBias: map[string]BrandBias{
			"현대":  {Value: 112, Kind: BiasCount},
			"기아":  {Value: 105, Kind: BiasCount},
			"kgm": {Value: 0.11, Kind: BiasWeight},
			"지프":  {Value: 0.05, Kind: BiasWeight},
		},
		Priorities:        []string{"적재공간", "주행성능", "내구성"},
		AgentOrder:        []string{contractx.AgentCoordinator, contractx.AgentNeedsAnalyst, contractx.AgentDataAnalyst},
		ExpectedInventory: 35,
	},
}

// Profiles returns the static persona table. The slice and its contents must
// be treated as read-only.
func Profiles() []Profile {
	return profiles
}

// ProfileByID looks a persona up by id.
func ProfileByID(id contractx.PersonaID) (*Profile, bool) {
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], true
		}
	}
	return nil, false
}
