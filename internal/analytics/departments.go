package analytics

import (
	"strings"
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

const unassignedDepartment = "Unassigned"

// ProcessDepartmentData ranks departments by logged usage and by admitted patients since lowerBound.
func (p *Pipeline) ProcessDepartmentData(departments, patients map[string]any, lowerBound time.Time) models.DepartmentData {
	usage := FilterUsage(NormalizeUsage(departments), lowerBound)
	admitted := FilterPatients(NormalizePatients(patients), lowerBound)

	return models.DepartmentData{
		DepartmentCount:    len(departments),
		DepartmentActivity: Ranked(Aggregate(usage, byUsageDepartment, usageQuantity), 0, p.settings.CategoryPalette),
		DepartmentLoad:     Ranked(Aggregate(admitted, byPatientDepartment, CountOf[models.PatientRecord]), 0, p.settings.CategoryPalette),
	}
}

// ScopeSnapshot narrows a snapshot to one department. Patients and bills are kept when their
// department matches; bills without a department are kept when they belong to a kept patient.
func ScopeSnapshot(src models.SourceSnapshot, department string) (models.SourceSnapshot, bool) {
	key, ok := findKey(src.Departments, department)
	if !ok {
		return models.SourceSnapshot{}, false
	}

	scoped := models.SourceSnapshot{
		Departments: map[string]any{key: src.Departments[key]},
		Patients:    make(map[string]any),
		Billing:     make(map[string]any),
	}

	patientIDs := make(map[string]struct{})
	for id, value := range src.Patients {
		raw := asRecord(value)
		if raw == nil || !strings.EqualFold(stringField(raw, "department", "roomType"), key) {
			continue
		}
		scoped.Patients[id] = value
		patientIDs[defaultString(stringField(raw, "patientId"), id)] = struct{}{}
	}

	for id, value := range src.Billing {
		raw := asRecord(value)
		if raw == nil {
			continue
		}
		dept := stringField(raw, "department")
		if dept != "" {
			if strings.EqualFold(dept, key) {
				scoped.Billing[id] = value
			}
			continue
		}
		if _, ok := patientIDs[stringField(raw, "patientId")]; ok {
			scoped.Billing[id] = value
		}
	}

	return scoped, true
}

// DepartmentNames lists the department keys of a snapshot in order.
func DepartmentNames(src models.SourceSnapshot) []string {
	return sortedKeys(src.Departments)
}

func findKey(m map[string]any, name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}
	for _, key := range sortedKeys(m) {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return key, true
		}
	}
	return "", false
}

func byUsageDepartment(e models.UsageEntry) (string, bool) {
	return defaultString(e.Department, unassignedDepartment), true
}

func byPatientDepartment(r models.PatientRecord) (string, bool) {
	return defaultString(r.Department, unassignedDepartment), true
}
