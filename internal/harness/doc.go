// Package harness runs habit history scenarios against the analysis core.
//
// A scenario declares a frozen "now", the habits that exist and when each was
// completed, then states the streaks it expects. Run seeds a fresh in-memory
// store, runs the analyses and checks the expectations. RunWithGolden also
// compares the full analysis output with a golden file.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: daily-streak
//	description: "Five consecutive days"
//	now: "2025-02-12 14:30:00"
//	habits:
//	  - name: Eat healthy
//	    period: day
//	    description: "Vegetables with every meal"
//	  - name: Paint
//	    period: month
//	    active: false
//	completions:
//	  - habit: Eat healthy
//	    ago: [0d, 1d, 2d]      # or a single value: 1d, 2w, 5h
//	  - habit: Paint
//	    at: "2025-02-01 10:00:00"
//	expect:
//	  current_streak: { Eat healthy: 3 }
//	  longest_streak: { Eat healthy: 3 }
//	  completed: { Eat healthy: true }
//	  active: { day: [Eat healthy] }
//
// Unknown fields are rejected. Every file is checked against an embedded CUE
// schema before its habit references are resolved.
//
// # Deterministic Testing
//
// All scenarios run with:
//   - A fixed clock at the scenario's now (testutil.FixedClock)
//   - UTC timestamps
//   - An in-memory SQLite database, isolated per run
//
// so the golden output of a scenario never changes between runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/daily-streak.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
