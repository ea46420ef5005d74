package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidate_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"name":"Alice","age":10,"grade":"A"}`)
	err := Validate(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"name":"Bob","age":8}`)
	err := Validate(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"name":"Charlie"}`)
	err := Validate(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidate_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"name":"Dave","age":"ten"}`)
	err := Validate(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidate_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"name":"Eve","age":9,"grade":"D"}`)
	err := Validate(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := Validate(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidate_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := Validate(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidate_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := Validate(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidate_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"student": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"scores": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"student", "scores"},
		},
	}

	valid := json.RawMessage(`{"student":{"name":"Alice"},"scores":[90,85,92]}`)
	if err := Validate(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"student":{"name":"Alice"},"scores":["not","ints"]}`)
	if err := Validate(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestValidateValue_DecodedInput(t *testing.T) {
	value := map[string]any{"name": "Zoe", "age": float64(7)}
	if err := ValidateValue(testSchema(), value, nil); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	bad := map[string]any{"name": "Zoe", "age": float64(-1)}
	var invErr *ErrInvalidResponse
	if err := ValidateValue(testSchema(), bad, nil); !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidate_NameWithSpaces(t *testing.T) {
	s := testSchema()
	s.Name = "capability-EduChain Server-generate_mcqs"

	if err := Validate(s, json.RawMessage(`{"name":"Alice","age":10}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := Validate(s, json.RawMessage(`{"name":"Alice"}`)); err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestValidate_SameNameDifferentDefinitions(t *testing.T) {
	strict := &Schema{
		Name: "shared-name",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"topic"},
		},
	}
	loose := &Schema{
		Name:       "shared-name",
		Definition: map[string]any{"type": "object"},
	}

	raw := json.RawMessage(`{}`)
	if err := Validate(strict, raw); err == nil {
		t.Fatal("strict schema: expected error for missing topic")
	}
	if err := Validate(loose, raw); err != nil {
		t.Fatalf("loose schema: expected no error, got: %v", err)
	}
}

func TestSchemaResourceURL(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"quiz", "schema://quiz.json"},
		{"lesson-plan", "schema://lesson-plan.json"},
		{"capability-EduChain Server-generate_mcqs", "schema://capability-educhain-server-generate_mcqs.json"},
		{"a/b?c", "schema://a-b-c.json"},
		{"", "schema://schema.json"},
	}
	for _, tt := range tests {
		if got := schemaResourceURL(tt.name); got != tt.want {
			t.Errorf("schemaResourceURL(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
