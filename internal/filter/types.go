package filter

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jerry-enebeli/runboard/model"
)

const (
	TablePipelines = "pipelines"
	TableProjects  = "projects"
)

// Accessor reads one field of a record as the string the evaluator compares against.
type Accessor[T any] func(T) string

// Schema is the typed field table of one record domain.
// A field with no accessor resolves to the empty string.
type Schema[T any] struct {
	Table     string
	Fields    []model.Field
	accessors map[model.Field]Accessor[T]
}

func NewSchema[T any](table string, fields []model.Field, accessors map[model.Field]Accessor[T]) Schema[T] {
	return Schema[T]{Table: table, Fields: fields, accessors: accessors}
}

// Value returns the row's value for field and whether the schema knows the field.
func (s Schema[T]) Value(row T, field model.Field) (string, bool) {
	get, ok := s.accessors[ResolveField(string(field))]
	if !ok {
		return "", false
	}
	return get(row), true
}

// Has reports whether field resolves to a column of this schema.
func (s Schema[T]) Has(field model.Field) bool {
	_, ok := s.accessors[ResolveField(string(field))]
	return ok
}

// Known lists every field the schema resolves: the picker fields first, then the rest by tag.
func (s Schema[T]) Known() []model.Field {
	var rest []model.Field
	for f := range s.accessors {
		if !slices.Contains(s.Fields, f) {
			rest = append(rest, f)
		}
	}
	slices.Sort(rest)
	return append(slices.Clone(s.Fields), rest...)
}

var PipelineSchema = NewSchema(TablePipelines, model.PipelineFields, map[model.Field]Accessor[model.Pipeline]{
	model.FieldID:          func(p model.Pipeline) string { return p.ID },
	model.FieldName:        func(p model.Pipeline) string { return p.Name },
	model.FieldPipelineID:  func(p model.Pipeline) string { return p.PipelineID },
	model.FieldProjectType: func(p model.Pipeline) string { return p.ProjectType },
	model.FieldStatus:      func(p model.Pipeline) string { return p.Status },
	model.FieldExecutor:    func(p model.Pipeline) string { return p.Executor },
	model.FieldCreatedAt:   func(p model.Pipeline) string { return formatTime(p.CreatedAt) },
	model.FieldDuration:    func(p model.Pipeline) string { return strconv.FormatFloat(p.Duration, 'f', -1, 64) },
})

var ProjectSchema = NewSchema(TableProjects, model.ProjectFields, map[model.Field]Accessor[model.Project]{
	model.FieldID:          func(p model.Project) string { return p.ID },
	model.FieldName:        func(p model.Project) string { return p.Name },
	model.FieldProjectID:   func(p model.Project) string { return p.ProjectID },
	model.FieldProjectType: func(p model.Project) string { return p.ProjectType },
	model.FieldStatus:      func(p model.Project) string { return p.Status },
	model.FieldLanguage:    func(p model.Project) string { return p.Language },
	model.FieldRepository:  func(p model.Project) string { return p.Repository },
	model.FieldCreatedAt:   func(p model.Project) string { return formatTime(p.CreatedAt) },
})

// ResolveField normalizes a user supplied field name ("project type", "project_type") to its tag.
func ResolveField(s string) model.Field {
	return model.Field(strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_")))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// BuildResult is a parameterized WHERE fragment for Postgres.
type BuildResult struct {
	Conditions []string
	Args       []interface{}
	NextArgPos int
	OrderBy    string // The ORDER BY clause (without "ORDER BY" prefix)
}

// Where joins the built conditions with AND, or returns "" when there are none.
func (r *BuildResult) Where() string {
	if r == nil || len(r.Conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(r.Conditions, " AND ")
}

type ParseOptions struct {
	MaxFilters  int // default 20
	MaxInValues int // default 100
	MaxCharLen  int // default 1000
}

type ParseError struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

type ParseResult struct {
	Conditions []model.FilterCondition
	Errors     []ParseError
}
