package employee

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps employee documents in a MongoDB collection.
type Store struct {
	Coll *mongo.Collection
}

func NewStore(db *mongo.Database, collection string) *Store {
	return &Store{Coll: db.Collection(collection)}
}

type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID  string             `bson:"employee_id"`
	Name        string             `bson:"name"`
	Department  string             `bson:"department"`
	Salary      float64            `bson:"salary"`
	JoiningDate time.Time          `bson:"joining_date"`
	Skills      []string           `bson:"skills"`
}

func newDocument(p CreatePayload) document {
	doc := document{
		EmployeeID: p.EmployeeID,
		Name:       p.Name,
		Department: p.Department,
		Skills:     NormalizeSkills(p.Skills),
	}
	if p.Salary != nil {
		doc.Salary = *p.Salary
	}
	if p.JoiningDate != nil {
		doc.JoiningDate = p.JoiningDate.Midnight()
	}
	return doc
}

func (d document) projection() Employee {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		Department:  d.Department,
		Salary:      d.Salary,
		JoiningDate: DateOf(d.JoiningDate.UTC()),
		Skills:      skills,
	}
}

func (s *Store) Create(ctx context.Context, payload CreatePayload) (Employee, error) {
	res, err := s.Coll.InsertOne(ctx, newDocument(payload))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Employee{}, ErrDuplicateEmployeeID
		}
		return Employee{}, fmt.Errorf("insert employee: %w", err)
	}

	var stored document
	if err := s.Coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&stored); err != nil {
		return Employee{}, fmt.Errorf("reload employee: %w", err)
	}
	return stored.projection(), nil
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	var doc document
	err := s.Coll.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("find employee: %w", err)
	}
	return doc.projection(), nil
}

func (s *Store) Update(ctx context.Context, employeeID string, payload UpdatePayload) (Employee, error) {
	set := updateSet(payload)
	if len(set) == 0 {
		return s.Get(ctx, employeeID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc document
	err := s.Coll.FindOneAndUpdate(ctx, bson.M{"employee_id": employeeID}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return doc.projection(), nil
}

func (s *Store) Delete(ctx context.Context, employeeID string) error {
	res, err := s.Coll.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query, opts := listQuery(filter)
	cur, err := s.Coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read employees: %w", err)
	}

	out := make([]Employee, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.projection())
	}
	return out, nil
}

func (s *Store) AverageSalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error) {
	cur, err := s.Coll.Aggregate(ctx, averageSalaryPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate salaries: %w", err)
	}
	var rows []DepartmentSalary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("read salary aggregate: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoEmployees
	}
	return rows, nil
}

func (s *Store) SearchBySkill(ctx context.Context, skill string, limit int) ([]RawDocument, error) {
	cur, err := s.Coll.Find(ctx, skillFilter(skill), options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read search results: %w", err)
	}

	out := make([]RawDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, rawDocument(doc))
	}
	return out, nil
}

func updateSet(p UpdatePayload) bson.D {
	set := bson.D{}
	if p.Name.Present() {
		set = append(set, bson.E{Key: "name", Value: p.Name.Value})
	}
	if p.Email.Present() {
		set = append(set, bson.E{Key: "email", Value: p.Email.Value})
	}
	if p.Department.Present() {
		set = append(set, bson.E{Key: "department", Value: p.Department.Value})
	}
	if p.Salary.Present() {
		set = append(set, bson.E{Key: "salary", Value: p.Salary.Value})
	}
	if p.JoiningDate.Present() {
		set = append(set, bson.E{Key: "joining_date", Value: p.JoiningDate.Value.Midnight()})
	}
	if p.Skills.Present() {
		set = append(set, bson.E{Key: "skills", Value: []string(NormalizeSkills(p.Skills.Value))})
	}
	return set
}

// listQuery sorts newest joiners first; employee_id breaks ties so pages never overlap.
func listQuery(f ListFilter) (bson.M, *options.FindOptions) {
	query := bson.M{}
	if f.Department != "" {
		query["department"] = f.Department
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "joining_date", Value: -1}, {Key: "employee_id", Value: 1}}).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))
	return query, opts
}

func averageSalaryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "avg_salary", Value: bson.D{{Key: "$avg", Value: "$salary"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "department", Value: "$_id"},
			{Key: "avg_salary", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "department", Value: 1}}}},
	}
}

// skillFilter matches a whole skills element, ignoring case.
func skillFilter(skill string) bson.M {
	return bson.M{"skills": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(skill) + "$",
		"$options": "i",
	}}
}

func rawDocument(doc bson.M) RawDocument {
	out := make(RawDocument, len(doc))
	for key, value := range doc {
		out[key] = plainValue(value)
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.M:
		return rawDocument(v)
	case primitive.D:
		return rawDocument(v.Map())
	case primitive.A:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
