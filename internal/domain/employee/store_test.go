package employee

import (
	"reflect"
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateSetOnlySuppliedFields(t *testing.T) {
	p := UpdatePayload{
		Salary:      Some(90000.0),
		JoiningDate: Some(Date{2022, time.June, 1}),
		Skills:      Some(Skills{" Go ", ""}),
	}

	set := updateSet(p)
	want := bson.D{
		{Key: "salary", Value: 90000.0},
		{Key: "joining_date", Value: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{Key: "skills", Value: []string{"Go"}},
	}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("unexpected $set: got %#v want %#v", set, want)
	}

	if got := updateSet(UpdatePayload{}); len(got) != 0 {
		t.Fatalf("expected empty $set, got %#v", got)
	}
}

func TestListQuery(t *testing.T) {
	query, opts := listQuery(ListFilter{Department: "Engineering", Limit: 5, Skip: 10})
	if query["department"] != "Engineering" {
		t.Fatalf("expected department filter, got %#v", query)
	}
	if opts.Limit == nil || *opts.Limit != 5 {
		t.Fatalf("unexpected limit %v", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 10 {
		t.Fatalf("unexpected skip %v", opts.Skip)
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 2 || sort[0].Key != "joining_date" || sort[0].Value != -1 || sort[1].Key != "employee_id" {
		t.Fatalf("unexpected sort %#v", opts.Sort)
	}

	all, _ := listQuery(ListFilter{Limit: 10})
	if len(all) != 0 {
		t.Fatalf("expected unfiltered query, got %#v", all)
	}
}

func TestSkillFilterMatchesWholeElement(t *testing.T) {
	filter := skillFilter("c++")
	cond := filter["skills"].(bson.M)
	if cond["$options"] != "i" {
		t.Fatalf("expected case-insensitive match, got %#v", cond)
	}

	re := regexp.MustCompile("(?i)" + cond["$regex"].(string))
	for _, s := range []string{"C++", "c++"} {
		if !re.MatchString(s) {
			t.Fatalf("expected %q to match", s)
		}
	}
	for _, s := range []string{"C+++", "Objective-C++", "c"} {
		if re.MatchString(s) {
			t.Fatalf("expected %q not to match", s)
		}
	}
}

func TestAverageSalaryPipeline(t *testing.T) {
	pipeline := averageSalaryPipeline()
	if len(pipeline) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(pipeline))
	}
	stages := []string{"$group", "$project", "$sort"}
	for i, stage := range pipeline {
		if stage[0].Key != stages[i] {
			t.Fatalf("stage %d: got %s want %s", i, stage[0].Key, stages[i])
		}
	}
}

func TestRawDocumentConvertsDriverTypes(t *testing.T) {
	id := primitive.NewObjectID()
	joined := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	doc := bson.M{
		"_id":          id,
		"employee_id":  "E1",
		"joining_date": primitive.NewDateTimeFromTime(joined),
		"skills":       bson.A{"Go", "SQL"},
		"address":      bson.D{{Key: "city", Value: "Oslo"}},
	}

	raw := rawDocument(doc)
	if raw["_id"] != id.Hex() {
		t.Fatalf("expected hex id, got %#v", raw["_id"])
	}
	if got, ok := raw["joining_date"].(time.Time); !ok || !got.Equal(joined) {
		t.Fatalf("unexpected joining_date %#v", raw["joining_date"])
	}
	if !reflect.DeepEqual(raw["skills"], []any{"Go", "SQL"}) {
		t.Fatalf("unexpected skills %#v", raw["skills"])
	}
	if addr, ok := raw["address"].(RawDocument); !ok || addr["city"] != "Oslo" {
		t.Fatalf("unexpected nested document %#v", raw["address"])
	}
}

func TestDocumentProjection(t *testing.T) {
	salary := 1200.5
	date := Date{2021, time.May, 9}
	doc := newDocument(CreatePayload{
		EmployeeID:  "E9",
		Name:        "Kai",
		Department:  "Ops",
		Salary:      &salary,
		JoiningDate: &date,
		Skills:      Skills{"Bash "},
	})
	if !doc.JoiningDate.Equal(date.Midnight()) {
		t.Fatalf("expected midnight storage, got %v", doc.JoiningDate)
	}

	emp := doc.projection()
	if emp.EmployeeID != "E9" || emp.Salary != salary || emp.JoiningDate != date {
		t.Fatalf("unexpected projection %+v", emp)
	}
	if !reflect.DeepEqual(emp.Skills, []string{"Bash"}) {
		t.Fatalf("unexpected skills %#v", emp.Skills)
	}

	if got := (document{}).projection().Skills; got == nil {
		t.Fatal("projection must never return nil skills")
	}
}
