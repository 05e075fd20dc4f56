package domain

type RiskLevel string

const (
	RiskLow            RiskLevel = "Low"
	RiskLowToModerate  RiskLevel = "Low to Moderate"
	RiskModerate       RiskLevel = "Moderate"
	RiskModeratelyHigh RiskLevel = "Moderately High"
	RiskHigh           RiskLevel = "High"
	RiskVeryHigh       RiskLevel = "Very High"
)

type AnalyticMetric struct {
	ID          string `json:"id" msgpack:"id"`
	Label       string `json:"label" msgpack:"label"`
	Value       string `json:"value" msgpack:"value"`
	Description string `json:"description" msgpack:"description"`
}

type AllocationItem struct {
	Category   string  `json:"category" msgpack:"category"`
	Percentage float64 `json:"percentage" msgpack:"percentage"`
	Color      string  `json:"color,omitempty" msgpack:"color,omitempty"`
}

type Holding struct {
	Name       string   `json:"name" msgpack:"name"`
	Percentage float64  `json:"percentage" msgpack:"percentage"`
	ValueMn    *float64 `json:"value_mn,omitempty" msgpack:"value_mn,omitempty"`
	Sector     string   `json:"sector,omitempty" msgpack:"sector,omitempty"`
}

type FundManager struct {
	ID         string `json:"id" msgpack:"id"`
	Name       string `json:"name" msgpack:"name"`
	Experience string `json:"experience" msgpack:"experience"`
	Since      string `json:"since" msgpack:"since"`
	Education  string `json:"education,omitempty" msgpack:"education,omitempty"`
}

type SchemeDetails struct {
	Code                   string           `json:"code" msgpack:"code"`
	Name                   string           `json:"name" msgpack:"name"`
	AMC                    string           `json:"amc" msgpack:"amc"`
	Category               string           `json:"category" msgpack:"category"`
	CategoryTags           []string         `json:"category_tags,omitempty" msgpack:"category_tags,omitempty"`
	Nav                    float64          `json:"nav" msgpack:"nav"`
	NavDate                string           `json:"nav_date" msgpack:"nav_date"`
	NavChange              float64          `json:"nav_change" msgpack:"nav_change"`
	NavChangePercent       float64          `json:"nav_change_percent" msgpack:"nav_change_percent"`
	OneYearReturn          *float64         `json:"one_year_return,omitempty" msgpack:"one_year_return,omitempty"`
	OneYearBenchmarkReturn *float64         `json:"one_year_benchmark_return,omitempty" msgpack:"one_year_benchmark_return,omitempty"`
	Rating                 int              `json:"rating,omitempty" msgpack:"rating,omitempty"`
	LogoText               string           `json:"logo_text,omitempty" msgpack:"logo_text,omitempty"`
	RiskLevel              RiskLevel        `json:"risk_level" msgpack:"risk_level"`
	AUM                    string           `json:"aum" msgpack:"aum"`
	ExpenseRatio           string           `json:"expense_ratio" msgpack:"expense_ratio"`
	ExitLoad               string           `json:"exit_load" msgpack:"exit_load"`
	FundManager            string           `json:"fund_manager" msgpack:"fund_manager"`
	FundManagers           []FundManager    `json:"fund_managers,omitempty" msgpack:"fund_managers,omitempty"`
	Benchmark              string           `json:"benchmark" msgpack:"benchmark"`
	InceptionDate          string           `json:"inception_date" msgpack:"inception_date"`
	Description            string           `json:"description,omitempty" msgpack:"description,omitempty"`
	Analytics              []AnalyticMetric `json:"analytics,omitempty" msgpack:"analytics,omitempty"`
	Allocation             []AllocationItem `json:"allocation,omitempty" msgpack:"allocation,omitempty"`
	SectorAllocation       []AllocationItem `json:"sector_allocation,omitempty" msgpack:"sector_allocation,omitempty"`
	Holdings               []Holding        `json:"holdings,omitempty" msgpack:"holdings,omitempty"`
}

type ReturnBar struct {
	Label string  `json:"label" msgpack:"label"`
	Value float64 `json:"value" msgpack:"value"`
}

// ReturnAnalysis holds the point-to-point (lump sum) and SIP return bars.
type ReturnAnalysis struct {
	SIP     []ReturnBar `json:"sip" msgpack:"sip"`
	LumpSum []ReturnBar `json:"lumpsum" msgpack:"lumpsum"`
}

type SimilarFund struct {
	Name            string   `json:"name" msgpack:"name"`
	Category        string   `json:"category" msgpack:"category"`
	OneYearReturn   *float64 `json:"one_year_return,omitempty" msgpack:"one_year_return,omitempty"`
	ThreeYearReturn *float64 `json:"three_year_return,omitempty" msgpack:"three_year_return,omitempty"`
	FiveYearReturn  *float64 `json:"five_year_return,omitempty" msgpack:"five_year_return,omitempty"`
	Rating          int      `json:"rating,omitempty" msgpack:"rating,omitempty"`
}

type RiskSegment struct {
	Level  RiskLevel `json:"level"`
	Active bool      `json:"active"`
}

type Riskometer struct {
	Level    RiskLevel     `json:"level"`
	Index    int           `json:"index"`
	Segments []RiskSegment `json:"segments"`
}

type SchemeOverview struct {
	Details        SchemeDetails  `json:"details" msgpack:"details"`
	ReturnAnalysis ReturnAnalysis `json:"return_analysis" msgpack:"return_analysis"`
	SimilarFunds   []SimilarFund  `json:"similar_funds" msgpack:"similar_funds"`
	Riskometer     Riskometer     `json:"riskometer" msgpack:"-"`
}

// Bundle is the on-disk format for one scheme's static data.
type Bundle struct {
	Scheme         SchemeDetails  `json:"scheme"`
	Nav            []NavSample    `json:"nav"`
	ReturnAnalysis ReturnAnalysis `json:"return_analysis"`
	SimilarFunds   []SimilarFund  `json:"similar_funds"`
}
