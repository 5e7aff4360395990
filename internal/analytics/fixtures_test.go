package analytics

import (
	"fmt"
	"time"
)

// testNow is a Sunday morning in UTC.
var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestPipeline() *Pipeline {
	return New(DefaultSettings(), NewRand(42))
}

// daysAgo renders testNow shifted back by n days as RFC3339.
func daysAgo(n int) string {
	return testNow.AddDate(0, 0, -n).Format(time.RFC3339)
}

func usage(name string, qty any, kind, ts string) map[string]any {
	return map[string]any{
		"itemName":  name,
		"quantity":  qty,
		"type":      kind,
		"timestamp": ts,
	}
}

func department(usageHistory map[string]any, meds, supplies map[string]any) map[string]any {
	dept := map[string]any{}
	if usageHistory != nil {
		dept["usageHistory"] = usageHistory
	}
	if meds != nil {
		dept["localMeds"] = meds
	}
	if supplies != nil {
		dept["localSupplies"] = supplies
	}
	return dept
}

func patient(id string, age any, gender, dept, dateTime string) map[string]any {
	return map[string]any{
		"patientId":  id,
		"age":        age,
		"gender":     gender,
		"department": dept,
		"dateTime":   dateTime,
	}
}

func keyed(records ...map[string]any) map[string]any {
	out := make(map[string]any, len(records))
	for i, r := range records {
		out[fmt.Sprintf("k%02d", i)] = r
	}
	return out
}
