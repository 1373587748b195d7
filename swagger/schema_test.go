package swagger

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func TestGetOrRegisterPrimitives(t *testing.T) {
	g := NewSchemaGenerator()

	tests := []struct {
		name   string
		typ    reflect.Type
		want   string
		format string
	}{
		{"bool", typeOf[bool](), "boolean", ""},
		{"int", typeOf[int](), "integer", "int64"},
		{"int32", typeOf[int32](), "integer", "int32"},
		{"int64", typeOf[int64](), "integer", "int64"},
		{"uint16", typeOf[uint16](), "integer", "int32"},
		{"float32", typeOf[float32](), "number", "float"},
		{"float64", typeOf[float64](), "number", "double"},
		{"string", typeOf[string](), "string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := g.GetOrRegister(tt.typ)
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Type)
			assert.Equal(t, tt.format, s.Format)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, g.GetOrRegister(nil))
	})

	t.Run("func has no schema", func(t *testing.T) {
		assert.Nil(t, g.GetOrRegister(typeOf[func()]()))
	})
}

func TestGetOrRegisterSpecialTypes(t *testing.T) {
	g := NewSchemaGenerator()

	t.Run("time.Time", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[time.Time]())
		assert.Equal(t, "string", s.Type)
		assert.Equal(t, "date-time", s.Format)
		assert.Empty(t, g.Definitions())
	})

	t.Run("uuid.UUID", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[uuid.UUID]())
		assert.Equal(t, "string", s.Type)
		assert.Equal(t, "uuid", s.Format)
	})

	t.Run("[]byte", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[[]byte]())
		assert.Equal(t, "string", s.Type)
		assert.Equal(t, "byte", s.Format)
	})

	t.Run("pointer unwraps to element", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[*int32]())
		assert.Equal(t, "integer", s.Type)
		assert.Equal(t, "int32", s.Format)
	})

	t.Run("interface is empty schema", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[any]())
		require.NotNil(t, s)
		assert.Equal(t, Schema{}, *s)
	})
}

func TestGetOrRegisterCollections(t *testing.T) {
	g := NewSchemaGenerator()

	t.Run("[]string", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[[]string]())
		assert.Equal(t, "array", s.Type)
		require.NotNil(t, s.Items)
		assert.Equal(t, "string", s.Items.Type)
	})

	t.Run("[3]int", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[[3]int]())
		assert.Equal(t, "array", s.Type)
		require.NotNil(t, s.Items)
		assert.Equal(t, "integer", s.Items.Type)
	})

	t.Run("map[string]int", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[map[string]int]())
		assert.Equal(t, "object", s.Type)
		require.NotNil(t, s.AdditionalProperties)
		assert.Equal(t, "integer", s.AdditionalProperties.Type)
	})

	t.Run("map[int]string", func(t *testing.T) {
		s := g.GetOrRegister(typeOf[map[int]string]())
		assert.Equal(t, "object", s.Type)
		assert.Nil(t, s.AdditionalProperties)
	})
}

type SimpleStruct struct {
	Name  string `json:"name"`
	Age   int    `json:"age,omitempty"`
	Email string `json:"-"`
	note  string
}

func TestGetOrRegisterStruct(t *testing.T) {
	t.Run("named struct is referenced", func(t *testing.T) {
		g := NewSchemaGenerator()
		s := g.GetOrRegister(typeOf[SimpleStruct]())
		assert.Equal(t, "#/definitions/SimpleStruct", s.Ref)

		def := g.Definitions()["SimpleStruct"]
		require.NotNil(t, def)
		assert.Equal(t, "object", def.Type)
		assert.Contains(t, def.Properties, "name")
		assert.Contains(t, def.Properties, "age")
		assert.NotContains(t, def.Properties, "Email")
		assert.NotContains(t, def.Properties, "note")
		assert.Equal(t, []string{"name"}, def.Required)
	})

	t.Run("same type registered once", func(t *testing.T) {
		g := NewSchemaGenerator()
		s1 := g.GetOrRegister(typeOf[SimpleStruct]())
		s2 := g.GetOrRegister(typeOf[*SimpleStruct]())
		assert.Equal(t, s1.Ref, s2.Ref)
		assert.Len(t, g.Definitions(), 1)
	})

	t.Run("slice of named structs uses ref", func(t *testing.T) {
		g := NewSchemaGenerator()
		s := g.GetOrRegister(typeOf[[]SimpleStruct]())
		assert.Equal(t, "array", s.Type)
		assert.Equal(t, "#/definitions/SimpleStruct", s.Items.Ref)
	})

	t.Run("field without json tag uses field name", func(t *testing.T) {
		type Plain struct {
			Title string
		}
		g := NewSchemaGenerator()
		g.GetOrRegister(typeOf[Plain]())
		assert.Contains(t, g.Definitions()["Plain"].Properties, "Title")
	})

	t.Run("anonymous struct is inlined", func(t *testing.T) {
		g := NewSchemaGenerator()
		s := g.GetOrRegister(typeOf[struct {
			ID int `json:"id"`
		}]())
		assert.Empty(t, s.Ref)
		assert.Equal(t, "object", s.Type)
		assert.Contains(t, s.Properties, "id")
		assert.Empty(t, g.Definitions())
	})
}

type Audit struct {
	CreatedBy string `json:"created_by"`
}

type Labels struct {
	Team string `json:"team"`
}

type Project struct {
	Audit
	*Labels
	Name string `json:"name"`
}

func TestGetOrRegisterEmbeddedStruct(t *testing.T) {
	g := NewSchemaGenerator()
	g.GetOrRegister(typeOf[Project]())

	def := g.Definitions()["Project"]
	require.NotNil(t, def)
	assert.Contains(t, def.Properties, "created_by")
	assert.Contains(t, def.Properties, "team")
	assert.ElementsMatch(t, []string{"created_by", "name"}, def.Required)
	assert.NotContains(t, g.Definitions(), "Audit")
}

type TaggedStruct struct {
	Name     string   `json:"name" swagger:"description=Display name,minLength=1,maxLength=64,pattern=^[a-z]+$"`
	Role     string   `json:"role" swagger:"enum=admin|user,default=user"`
	Count    int      `json:"count" swagger:"minimum=1,maximum=10,exclusiveMaximum,example=3"`
	Ratio    float64  `json:"ratio" swagger:"multipleOf=0.5,example=1.5"`
	Active   bool     `json:"active" swagger:"example=true,readOnly"`
	Tags     []string `json:"tags" swagger:"minItems=1,maxItems=5,uniqueItems"`
	Version  int64    `json:"version,string"`
	Metadata Labels   `json:"metadata" swagger:"description=ignored on refs"`
}

func TestGetOrRegisterSwaggerTags(t *testing.T) {
	g := NewSchemaGenerator()
	g.GetOrRegister(typeOf[TaggedStruct]())
	props := g.Definitions()["TaggedStruct"].Properties

	name := props["name"]
	assert.Equal(t, "Display name", name.Description)
	assert.Equal(t, 1, *name.MinLength)
	assert.Equal(t, 64, *name.MaxLength)
	assert.Equal(t, "^[a-z]+$", name.Pattern)

	role := props["role"]
	assert.Equal(t, []any{"admin", "user"}, role.Enum)
	assert.Equal(t, "user", role.Default)

	count := props["count"]
	assert.Equal(t, 1.0, *count.Minimum)
	assert.Equal(t, 10.0, *count.Maximum)
	assert.True(t, count.ExclusiveMaximum)
	assert.Equal(t, int64(3), count.Example)

	ratio := props["ratio"]
	assert.Equal(t, 0.5, *ratio.MultipleOf)
	assert.Equal(t, 1.5, ratio.Example)

	active := props["active"]
	assert.Equal(t, true, active.Example)
	assert.True(t, active.ReadOnly)

	tags := props["tags"]
	assert.Equal(t, 1, *tags.MinItems)
	assert.Equal(t, 5, *tags.MaxItems)
	assert.True(t, tags.UniqueItems)

	version := props["version"]
	assert.Equal(t, "string", version.Type)
	assert.Empty(t, version.Format)

	metadata := props["metadata"]
	assert.Equal(t, "#/definitions/Labels", metadata.Ref)
	assert.Empty(t, metadata.Description)
}

type ExampleUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (ExampleUser) SwaggerExample() any {
	return ExampleUser{ID: "u-1", Name: "Alice"}
}

func TestSwaggerExampler(t *testing.T) {
	g := NewSchemaGenerator()
	g.GetOrRegister(typeOf[ExampleUser]())

	def := g.Definitions()["ExampleUser"]
	require.NotNil(t, def)
	assert.Equal(t, ExampleUser{ID: "u-1", Name: "Alice"}, def.Example)

	data, err := json.Marshal(def)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"example":{"id":"u-1","name":"Alice"}`)
}

func TestRegisterName(t *testing.T) {
	anon := reflect.StructOf([]reflect.StructField{
		{Name: "ID", Type: typeOf[string](), Tag: `json:"id"`},
	})

	t.Run("anonymous struct becomes a definition", func(t *testing.T) {
		g := NewSchemaGenerator()
		require.True(t, g.RegisterName(anon, "Widget"))

		s := g.GetOrRegister(anon)
		assert.Equal(t, "#/definitions/Widget", s.Ref)
		assert.Contains(t, g.Definitions()["Widget"].Properties, "id")
	})

	t.Run("registering the same pair twice is accepted", func(t *testing.T) {
		g := NewSchemaGenerator()
		require.True(t, g.RegisterName(anon, "Widget"))
		assert.True(t, g.RegisterName(anon, "Widget"))
	})

	t.Run("name taken by another type is rejected", func(t *testing.T) {
		g := NewSchemaGenerator()
		require.True(t, g.RegisterName(anon, "Widget"))
		assert.False(t, g.RegisterName(typeOf[SimpleStruct](), "Widget"))
	})

	t.Run("type already named is rejected", func(t *testing.T) {
		g := NewSchemaGenerator()
		require.True(t, g.RegisterName(anon, "Widget"))
		assert.False(t, g.RegisterName(anon, "Gadget"))
	})
}

func TestSchemaNameCollision(t *testing.T) {
	t.Run("different packages same type name get unique names", func(t *testing.T) {
		type Client struct {
			ID string `json:"id"`
		}

		g := NewSchemaGenerator()

		s1 := g.GetOrRegister(typeOf[Client]())
		assert.Equal(t, "#/definitions/Client", s1.Ref)

		s2 := g.GetOrRegister(typeOf[http.Client]())
		assert.Equal(t, "#/definitions/HttpClient", s2.Ref)

		assert.Len(t, g.Definitions(), 2)
	})

	t.Run("prefixed collision appends numeric suffix", func(t *testing.T) {
		type Client struct {
			ID string `json:"id"`
		}

		g := NewSchemaGenerator()
		g.GetOrRegister(typeOf[Client]())

		fakeType := typeOf[http.Response]()
		g.nameTypes["HttpClient"] = fakeType
		g.typeNames[fakeType] = "HttpClient"

		s := g.GetOrRegister(typeOf[http.Client]())
		assert.Equal(t, "#/definitions/HttpClient2", s.Ref)
	})
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func TestGetOrRegisterGenericStruct(t *testing.T) {
	g := NewSchemaGenerator()

	s1 := g.GetOrRegister(typeOf[Page[SimpleStruct]]())
	assert.Equal(t, "#/definitions/PageSimpleStruct", s1.Ref)

	s2 := g.GetOrRegister(typeOf[Page[[]SimpleStruct]]())
	assert.Equal(t, "#/definitions/PageSimpleStructList", s2.Ref)
}

func TestSanitizeSchemaName(t *testing.T) {
	assert.Equal(t, "User", sanitizeSchemaName("User"))
	assert.Equal(t, "PageUser", sanitizeSchemaName("Page[User]"))
	assert.Equal(t, "PageUser", sanitizeSchemaName("Page[github.com/acme/api.User]"))
	assert.Equal(t, "PageUserList", sanitizeSchemaName("Page[[]User]"))
	assert.Equal(t, "PairStringInt", sanitizeSchemaName("Pair[string,int]"))
	assert.Equal(t, "GridCellListList", sanitizeSchemaName("Grid[[][]geo.Cell]"))
}

func TestPkgPrefix(t *testing.T) {
	assert.Equal(t, "Http", pkgPrefix("net/http"))
	assert.Equal(t, "Api", pkgPrefix("github.com/acme/api"))
	assert.Equal(t, "MyPkg", pkgPrefix("github.com/acme/my-pkg"))
	assert.Equal(t, "YamlV3", pkgPrefix("gopkg.in/yaml.v3"))
	assert.Equal(t, "", pkgPrefix(""))
}
