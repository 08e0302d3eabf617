package parser

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
)

const petstore = `openapi: 3.0.0
info: { title: Pets, version: "1.0.0" }
paths:
  /pets:
    post:
      operationId: createPet
      summary: Add a pet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "201": { description: created }
  /pets/{id}:
    parameters:
      - { name: id, in: path, required: true, schema: { type: string } }
    delete:
      responses:
        "204": { description: gone }
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
          maxLength: 40
          x-order: 1
        kind:
          type: string
          enum: [cat, dog]
        age:
          type: integer
          minimum: 0
`

func TestParser_Operations(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("pets.yaml"), []byte(petstore))

	ops, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	var ids []string
	for id := range ops {
		ids = append(ids, id)
	}
	if diff := cmp.Diff([]string{"createPet", "delete:/pets/{id}"}, ids, sortStrings); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	create := ops["createPet"]
	if create.Method != "POST" || create.Path != "/pets" || create.Summary != "Add a pet" {
		t.Fatalf("unexpected operation %+v", create)
	}
	body := create.RequestBody
	if body.Type != "object" || !body.IsRequired("name") {
		t.Fatalf("unexpected body %s", body.DebugString())
	}
	name := body.Properties["name"]
	if name.MaxLength == nil || *name.MaxLength != 40 {
		t.Fatalf("expected maxLength 40, got %v", name.MaxLength)
	}
	if name.Extensions[pkgopenapi.OrderExtension] == nil {
		t.Fatalf("x-order extension dropped")
	}
	if diff := cmp.Diff([]any{"cat", "dog"}, body.Properties["kind"].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if min := body.Properties["age"].Minimum; min == nil || *min != 0 {
		t.Fatalf("expected minimum 0, got %v", min)
	}
}

func TestParser_RejectsEmptyDocuments(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.yaml"),
		[]byte("openapi: 3.0.0\ninfo: { title: x, version: \"1\" }\npaths: {}\n"))
	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for a document without paths")
	}
	partial := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	if _, err := partial.Operations(context.Background(), doc); err != nil {
		t.Fatalf("partial documents should be accepted: %v", err)
	}
}

func TestConvertSchema_RecursiveReference(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Node": {
        "type": "object",
        "properties": {
          "label": { "type": "string" },
          "parent": { "$ref": "#/components/schemas/Node" }
        }
      }
    }
  }
}`
	spec, err := openapi3.NewLoader().LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := convertSchema(spec.Components.Schemas["Node"])
	parent := got.Properties["parent"]
	if parent.Ref == "" || parent.Type != "" {
		t.Fatalf("expected the cycle to stop at a ref, got %s", parent.DebugString())
	}
}

func TestConvertSchema_MergesAllOf(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "AllOf", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Base": {
        "type": "object",
        "required": ["id"],
        "properties": { "id": { "type": "string" } }
      },
      "Pet": {
        "allOf": [
          { "$ref": "#/components/schemas/Base" },
          { "type": "object", "properties": { "name": { "type": "string" } }, "x-formprinter-type": "fieldset" }
        ]
      }
    }
  }
}`
	spec, err := openapi3.NewLoader().LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := convertSchema(spec.Components.Schemas["Pet"])
	if got.Type != "object" {
		t.Fatalf("expected merged type object, got %q", got.Type)
	}
	var names []string
	for name := range got.Properties {
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"id", "name"}, names, sortStrings); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if !got.IsRequired("id") {
		t.Fatalf("required names not merged")
	}
	if got.Extensions[pkgopenapi.TypeExtension] != "fieldset" {
		t.Fatalf("extensions not merged: %v", got.Extensions)
	}
}
