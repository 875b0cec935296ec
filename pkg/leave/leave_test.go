package leave

import (
	"testing"

	"github.com/nobet/nobet/pkg/model"
	"github.com/nobet/nobet/pkg/names"
)

func testResolver() *names.Resolver {
	return names.NewResolver([]*model.StaffMember{
		{ID: "s1", Name: "Ayşe Yılmaz", NameCanonical: "ayse yilmaz"},
		{ID: "s2", Name: "Mehmet Demir", NameCanonical: "mehmet demir"},
	})
}

func member(id, canonical string) *model.StaffMember {
	return &model.StaffMember{ID: id, NameCanonical: canonical}
}

func TestBuildEventListStringDates(t *testing.T) {
	sources := []interface{}{
		[]interface{}{
			map[string]interface{}{"personId": "s1", "date": "2024-05-10"},
			map[string]interface{}{"personId": "s1", "date": "2024-05-11"},
			map[string]interface{}{"name": "Mehmet Demir", "date": "2024-05-03"},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)

	if !ix.OnLeave(member("s1", "ayse yilmaz"), "2024-05", 10) {
		t.Error("s1 should be on leave on day 10")
	}
	if !ix.OnLeave(member("s1", "ayse yilmaz"), "2024-05", 11) {
		t.Error("s1 should be on leave on day 11")
	}
	if ix.OnLeave(member("s1", "ayse yilmaz"), "2024-05", 12) {
		t.Error("s1 should not be on leave on day 12")
	}
	// Name reference resolved to s2's id.
	if !ix.IDOnLeave("s2", "2024-05", 3) {
		t.Error("name reference should resolve to s2")
	}
}

func TestBuildEventListObjectDates(t *testing.T) {
	sources := []interface{}{
		[]interface{}{
			map[string]interface{}{
				"personId": "s1",
				"date":     map[string]interface{}{"year": float64(2024), "month": float64(5), "day": float64(7)},
			},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)
	if !ix.IDOnLeave("s1", "2024-05", 7) {
		t.Error("object date not parsed")
	}
}

func TestBuildGridRows(t *testing.T) {
	sources := []interface{}{
		[]interface{}{
			map[string]interface{}{
				"personId": "s1",
				"7":        "izin",
				"08":       true,
				"d9":       float64(1),
				"day10":    "X",
				"11":       "hayır", // negative sentinel
				"12":       "",      // negative sentinel
				"13":       "no",
				"14":       "0",
				"15":       float64(0),
			},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)

	for _, day := range []int{7, 8, 9, 10} {
		if !ix.IDOnLeave("s1", "2024-05", day) {
			t.Errorf("day %d should be leave", day)
		}
	}
	for _, day := range []int{11, 12, 13, 14, 15} {
		if ix.IDOnLeave("s1", "2024-05", day) {
			t.Errorf("day %d is a negative sentinel, should not be leave", day)
		}
	}
}

func TestBuildNestedMapMonthFirst(t *testing.T) {
	sources := []interface{}{
		map[string]interface{}{
			"2024-05": map[string]interface{}{
				"s1": map[string]interface{}{"4": "izin", "5": "izin"},
			},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)
	if !ix.IDOnLeave("s1", "2024-05", 4) || !ix.IDOnLeave("s1", "2024-05", 5) {
		t.Error("month-first nesting not parsed")
	}
}

func TestBuildNestedMapPersonFirstMonthKey(t *testing.T) {
	sources := []interface{}{
		map[string]interface{}{
			"s2": map[string]interface{}{
				"2024-05": map[string]interface{}{"20": true},
			},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)
	if !ix.IDOnLeave("s2", "2024-05", 20) {
		t.Error("person-first month-key nesting not parsed")
	}
}

func TestBuildNestedMapPersonFirstYearBuckets(t *testing.T) {
	sources := []interface{}{
		map[string]interface{}{
			"s1": map[string]interface{}{
				"2024": map[string]interface{}{
					"5": map[string]interface{}{"25": "izin"},
				},
			},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)
	if !ix.IDOnLeave("s1", "2024-05", 25) {
		t.Error("person-first year-bucket nesting not parsed")
	}
}

func TestBuildUnresolvableNameKeptByName(t *testing.T) {
	sources := []interface{}{
		[]interface{}{
			map[string]interface{}{"name": "Zeynep Arslan", "date": "2024-05-09"},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)

	// Not under any known id, but visible for a member carrying the
	// same canonical name.
	if ix.IDOnLeave("s1", "2024-05", 9) || ix.IDOnLeave("s2", "2024-05", 9) {
		t.Error("unresolvable name leaked into id lookup")
	}
	ghost := member("ghost", "zeynep arslan")
	if !ix.OnLeave(ghost, "2024-05", 9) {
		t.Error("name-only entry not matched by canonical name")
	}
}

func TestSuppressionWinsRegardlessOfOrder(t *testing.T) {
	sources := []interface{}{
		[]interface{}{
			map[string]interface{}{"personId": "s1", "date": "2024-05-10"},
			map[string]interface{}{"personId": "s1", "date": "2024-05-11"},
		},
	}
	sups := []Suppression{
		{Person: "Ayşe Yılmaz", Year: 2024, Month: 5, Day: 10},
	}

	ix := Build(sources, sups, testResolver(), 2024, 5)

	if ix.OnLeave(member("s1", "ayse yilmaz"), "2024-05", 10) {
		t.Error("suppressed day still reported as leave")
	}
	if !ix.OnLeave(member("s1", "ayse yilmaz"), "2024-05", 11) {
		t.Error("non-suppressed day lost")
	}
}

func TestEitherLookupIsAuthoritative(t *testing.T) {
	ix := NewIndex()
	ix.AddByID("s1", "2024-05", 3)
	ix.AddByName("ayse yilmaz", "2024-05", 4)

	m := member("s1", "ayse yilmaz")
	if !ix.OnLeave(m, "2024-05", 3) {
		t.Error("id lookup missed")
	}
	if !ix.OnLeave(m, "2024-05", 4) {
		t.Error("name lookup missed")
	}
	if ix.OnLeave(m, "2024-05", 5) {
		t.Error("false positive")
	}
}

func TestBuildIgnoresGarbage(t *testing.T) {
	sources := []interface{}{
		"not a source",
		[]interface{}{"scalar", float64(3)},
		[]interface{}{
			map[string]interface{}{"date": "garbage"},
			map[string]interface{}{"personId": "s1", "date": "2024-13-99"},
		},
	}

	ix := Build(sources, nil, testResolver(), 2024, 5)
	if ix.IDOnLeave("s1", "2024-05", 1) {
		t.Error("garbage produced leave entries")
	}
}
