package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("doc:").
		Tag("category").
		Numeric("price").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "price" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want price NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_Sortable(t *testing.T) {
	idx := NewIndex("sort-idx").
		Prefix("doc:").
		NumericSortable("price").
		Numeric("views").
		MustBuild()

	if !idx.Fields[0].Sortable {
		t.Error("expected price to be SORTABLE")
	}
	if idx.Fields[1].Sortable {
		t.Error("views must not be SORTABLE")
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("tags", "|", true).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "|" {
		t.Errorf("separator = %q, want |", f.TagSeparator)
	}
	if !f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=true")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		Tag("cat").
		NumericSortable("price").
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE ") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	if !strings.Contains(s, "my-idx") {
		t.Error("missing index name in string output")
	}
	if !strings.Contains(s, "price NUMERIC SORTABLE") {
		t.Errorf("missing sortable numeric field in %q", s)
	}
}

func TestIndexBuilder_Alias(t *testing.T) {
	idx := &IndexDefinition{
		Name:     "alias-idx",
		Prefixes: []string{"a:"},
		Fields: []IndexField{
			{Name: "body_text", Alias: "body", Type: IndexFieldTag},
		},
	}

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Fields[0].Alias != "body" {
		t.Errorf("alias = %q, want body", idx.Fields[0].Alias)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}
