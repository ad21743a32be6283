package testing

import "github.com/aristath/allocator/internal/domain"

// NewAssetFixtures returns the five-asset reference universe.
// With capital 150 the optimal selection is B+D (cost 140, return 60, risk 55).
func NewAssetFixtures() []domain.Asset {
	return []domain.Asset{
		{Ticker: "A", ExpectedReturn: 10, RiskScore: 20, Price: 50},
		{Ticker: "B", ExpectedReturn: 20, RiskScore: 30, Price: 60},
		{Ticker: "C", ExpectedReturn: 15, RiskScore: 10, Price: 70},
		{Ticker: "D", ExpectedReturn: 40, RiskScore: 25, Price: 80},
		{Ticker: "E", ExpectedReturn: 30, RiskScore: 40, Price: 90},
	}
}

// AssetFixturesCSV is NewAssetFixtures in the CSV input format.
const AssetFixturesCSV = `Ticker,ExpectedReturn(%),RiskScore(0-100),Price
A,10,20,50
B,20,30,60
C,15,10,70
D,40,25,80
E,30,40,90
`

// AssetFixturesYAML is NewAssetFixtures in the YAML input format.
const AssetFixturesYAML = `- ticker: A
  expected_return: 10
  risk_score: 20
  price: 50
- ticker: B
  expected_return: 20
  risk_score: 30
  price: 60
- ticker: C
  expected_return: 15
  risk_score: 10
  price: 70
- ticker: D
  expected_return: 40
  risk_score: 25
  price: 80
- ticker: E
  expected_return: 30
  risk_score: 40
  price: 90
`
