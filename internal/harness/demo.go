package harness

import (
	_ "embed"
)

//go:embed scenarios/demo.yaml
var demoScenario []byte

// DemoScenario returns the built-in sample data set: two daily, two weekly
// and one monthly habit with a month of history and a few breaks. Its
// expectations hold when run at the scenario's own now.
func DemoScenario() (*Scenario, error) {
	return ParseScenario(demoScenario)
}
