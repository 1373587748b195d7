package manifest

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swagger/swagger"
)

const usersManifest = `
versions:
  v1:
    title: Users
    version: "1.0"
    contact:
      name: API Team
  v2:
    title: Users
    version: "2.0"
endpoints:
  - method: get
    path: users
    group: Users
    action: List
    summary: List users
    response: "[]User"
    versions: [v1, v2]
    parameters:
      - name: limit
        optional: true
        type: int32
        default: 20
  - method: GET
    path: users/{id}
    group: Users
    action: Get
    response: User
    parameters:
      - name: id
        in: path
        type: uuid
  - method: POST
    path: users
    group: Users
    action: Create
    response: User
    versions: [v2]
    parameters:
      - name: user
        in: body
        type: NewUser
  - method: DELETE
    path: users/{id}
    group: Users
    action: Delete
    obsolete: true
    parameters:
      - name: id
        in: path
        type: uuid
models:
  - name: User
    description: A registered user
    properties:
      - name: id
        type: uuid
        required: true
      - name: name
        type: string
        required: true
        description: Display name
        maxLength: 64
      - name: address
        type: Address
      - name: created
        type: date-time
  - name: NewUser
    properties:
      - name: name
        type: string
        required: true
  - name: Address
    properties:
      - name: city
        type: string
        enum: [Kyiv, Lviv]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(usersManifest))
	require.NoError(t, err)

	endpoints := m.Endpoints()
	require.Len(t, endpoints, 4)

	list := endpoints[0]
	assert.Equal(t, "GET", list.Method)
	assert.Equal(t, "users", list.RelativePath)
	assert.Equal(t, "Users", list.Group)
	assert.Equal(t, "List", list.Action)
	assert.Equal(t, "List users", list.Summary)
	require.NotNil(t, list.ResponseType)
	assert.Equal(t, reflect.Slice, list.ResponseType.Kind())
	require.Len(t, list.Parameters, 1)
	assert.Equal(t, swagger.SourceQuery, list.Parameters[0].Source)
	assert.Equal(t, reflect.TypeFor[int32](), list.Parameters[0].Type)
	assert.True(t, list.Parameters[0].Optional)
	assert.Equal(t, 20, list.Parameters[0].Default)

	get := endpoints[1]
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, swagger.SourcePath, get.Parameters[0].Source)
	assert.Equal(t, reflect.TypeFor[uuid.UUID](), get.Parameters[0].Type)

	assert.Equal(t, swagger.SourceBody, endpoints[2].Parameters[0].Source)

	del := endpoints[3]
	assert.True(t, del.Obsolete)
	assert.Nil(t, del.ResponseType)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"unknown key", "endpoints: []\nextra: 1\n", ErrInvalidManifest},
		{"malformed yaml", "endpoints: [", ErrInvalidManifest},
		{"missing method", "endpoints:\n  - path: x\n", ErrInvalidManifest},
		{"unknown response type", "endpoints:\n  - method: GET\n    path: x\n    response: Missing\n", ErrUnknownType},
		{"bad location", "endpoints:\n  - method: GET\n    path: x\n    parameters:\n      - name: a\n        in: header\n", ErrInvalidManifest},
		{"unnamed parameter", "endpoints:\n  - method: GET\n    path: x\n    parameters:\n      - type: string\n", ErrInvalidManifest},
		{"empty slice element", "endpoints:\n  - method: GET\n    path: x\n    response: \"[]\"\n", ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Endpoints())
}

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(usersManifest))
	require.NoError(t, err)
	assert.Len(t, m.Endpoints(), 4)

	_, err = LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestVersions(t *testing.T) {
	m, err := Parse([]byte(usersManifest))
	require.NoError(t, err)

	versions := m.Versions()
	require.Len(t, versions, 2)
	assert.Equal(t, "1.0", versions["v1"].Version)
	require.NotNil(t, versions["v1"].Contact)
	assert.Equal(t, "API Team", versions["v1"].Contact.Name)

	delete(versions, "v1")
	assert.Len(t, m.Versions(), 2)
}

func TestSupportsVersion(t *testing.T) {
	m, err := Parse([]byte(usersManifest))
	require.NoError(t, err)
	endpoints := m.Endpoints()

	assert.True(t, m.SupportsVersion(endpoints[0], "v1"))
	assert.True(t, m.SupportsVersion(endpoints[0], "v2"))
	assert.True(t, m.SupportsVersion(endpoints[1], "v1"))
	assert.False(t, m.SupportsVersion(endpoints[2], "v1"))
	assert.True(t, m.SupportsVersion(endpoints[2], "v2"))
}

const perVersionManifest = `
versions:
  v1:
    title: Users
    version: "1"
  v2:
    title: Users
    version: "2"
endpoints:
  - method: GET
    path: users
    group: Users
    action: List
    response: "[]UserV1"
    versions: [v1]
  - method: GET
    path: users
    group: Users
    action: List
    response: "[]UserV2"
    versions: [v2]
models:
  - name: UserV1
    properties:
      - name: name
        type: string
  - name: UserV2
    properties:
      - name: name
        type: string
      - name: email
        type: string
`

func TestSupportsVersionPerDeclaration(t *testing.T) {
	m, err := Parse([]byte(perVersionManifest))
	require.NoError(t, err)

	endpoints := m.Endpoints()
	require.Len(t, endpoints, 2)
	assert.True(t, m.SupportsVersion(endpoints[0], "v1"))
	assert.False(t, m.SupportsVersion(endpoints[0], "v2"))
	assert.False(t, m.SupportsVersion(endpoints[1], "v1"))
	assert.True(t, m.SupportsVersion(endpoints[1], "v2"))

	gen := swagger.NewGenerator(m, swagger.Config{
		Versions:               m.Versions(),
		VersionSupportResolver: m.SupportsVersion,
		NewSchemaRegistry:      m.NewSchemaRegistry,
	})

	for version, model := range map[string]string{"v1": "UserV1", "v2": "UserV2"} {
		t.Run(version, func(t *testing.T) {
			doc, err := gen.Generate("http://localhost", version)
			require.NoError(t, err)
			require.Contains(t, doc.Paths, "/users")
			assert.Equal(t, "#/definitions/"+model, doc.Paths["/users"].Get.Responses["200"].Schema.Items.Ref)
			assert.Len(t, doc.Definitions, 1)
		})
	}
}

func TestParseDuplicateVersionedEndpoint(t *testing.T) {
	data := `
endpoints:
  - method: GET
    path: users
    action: List
    versions: [v1]
  - method: get
    path: users
    action: List
    versions: [v2]
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidManifest)

	unversioned := "endpoints:\n  - method: GET\n    path: users\n  - method: GET\n    path: users\n"
	m, err := Parse([]byte(unversioned))
	require.NoError(t, err)
	assert.Len(t, m.Endpoints(), 2)
}

func TestEndpointsReturnsCopy(t *testing.T) {
	m, err := Parse([]byte(usersManifest))
	require.NoError(t, err)

	endpoints := m.Endpoints()
	endpoints[0].Action = "changed"
	assert.Equal(t, "List", m.Endpoints()[0].Action)
}

func TestGenerateFromManifest(t *testing.T) {
	m, err := Parse([]byte(usersManifest))
	require.NoError(t, err)

	cfg := swagger.Config{
		Versions:               m.Versions(),
		IgnoreObsoleteActions:  true,
		VersionSupportResolver: m.SupportsVersion,
		NewSchemaRegistry:      m.NewSchemaRegistry,
	}
	gen := swagger.NewGenerator(m, cfg)

	t.Run("v1", func(t *testing.T) {
		doc, err := gen.Generate("http://localhost:8080/api", "v1")
		require.NoError(t, err)

		assert.Equal(t, "localhost:8080", doc.Host)
		assert.Equal(t, "/api", doc.BasePath)
		require.Contains(t, doc.Paths, "/users")
		assert.NotNil(t, doc.Paths["/users"].Get)
		assert.Nil(t, doc.Paths["/users"].Post)
		require.Contains(t, doc.Paths, "/users/{id}")
		assert.Nil(t, doc.Paths["/users/{id}"].Delete)

		list := doc.Paths["/users"].Get
		resp := list.Responses["200"]
		require.NotNil(t, resp)
		require.NotNil(t, resp.Schema)
		assert.Equal(t, "array", resp.Schema.Type)
		assert.Equal(t, "#/definitions/User", resp.Schema.Items.Ref)

		user := doc.Definitions["User"]
		require.NotNil(t, user)
		assert.Equal(t, "A registered user", user.Description)
		assert.ElementsMatch(t, []string{"id", "name"}, user.Required)
		assert.Equal(t, "uuid", user.Properties["id"].Format)
		assert.Equal(t, "Display name", user.Properties["name"].Description)
		require.NotNil(t, user.Properties["name"].MaxLength)
		assert.Equal(t, 64, *user.Properties["name"].MaxLength)
		assert.Equal(t, "#/definitions/Address", user.Properties["address"].Ref)
		assert.Equal(t, "date-time", user.Properties["created"].Format)
		assert.NotContains(t, user.Properties, "M")

		address := doc.Definitions["Address"]
		require.NotNil(t, address)
		assert.Equal(t, []any{"Kyiv", "Lviv"}, address.Properties["city"].Enum)

		assert.NotContains(t, doc.Definitions, "NewUser")
	})

	t.Run("v2", func(t *testing.T) {
		doc, err := gen.Generate("http://localhost:8080/api", "v2")
		require.NoError(t, err)

		post := doc.Paths["/users"].Post
		require.NotNil(t, post)
		require.Len(t, post.Parameters, 1)
		assert.Equal(t, swagger.InBody, post.Parameters[0].In)
		assert.Equal(t, "#/definitions/NewUser", post.Parameters[0].Schema.Ref)
		assert.Contains(t, doc.Definitions, "NewUser")
	})
}

func TestModels(t *testing.T) {
	t.Run("identical layouts stay distinct", func(t *testing.T) {
		set, err := buildModels([]Model{
			{Name: "A", Properties: []Property{{Name: "x", Type: "string"}}},
			{Name: "B", Properties: []Property{{Name: "x", Type: "string"}}},
		})
		require.NoError(t, err)
		assert.NotEqual(t, set.byName["A"].typ, set.byName["B"].typ)

		reg := newRegistry(set)
		assert.Equal(t, "#/definitions/A", reg.GetOrRegister(set.byName["A"].typ).Ref)
		assert.Equal(t, "#/definitions/B", reg.GetOrRegister(set.byName["B"].typ).Ref)
	})

	t.Run("dependency order", func(t *testing.T) {
		set, err := buildModels([]Model{
			{Name: "Outer", Properties: []Property{{Name: "inner", Type: "map[string][]Inner"}}},
			{Name: "Inner", Properties: []Property{{Name: "v", Type: "int64"}}},
		})
		require.NoError(t, err)
		require.Len(t, set.order, 2)
		assert.Equal(t, "Inner", set.order[0].decl.Name)
		assert.Equal(t, "Outer", set.order[1].decl.Name)
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := buildModels([]Model{
			{Name: "A", Properties: []Property{{Name: "b", Type: "B"}}},
			{Name: "B", Properties: []Property{{Name: "a", Type: "[]A"}}},
		})
		require.ErrorIs(t, err, ErrModelCycle)
		assert.Contains(t, err.Error(), "A -> B -> A")
	})

	t.Run("invalid declarations", func(t *testing.T) {
		invalid := [][]Model{
			{{Name: ""}},
			{{Name: "string"}},
			{{Name: "A"}, {Name: "A"}},
			{{Name: "A", Properties: []Property{{Name: "x", Type: "string"}, {Name: "x", Type: "string"}}}},
			{{Name: "A", Properties: []Property{{Name: "a,b", Type: "string"}}}},
			{{Name: "A", Properties: []Property{{Name: "x"}}}},
		}
		for _, decls := range invalid {
			_, err := buildModels(decls)
			assert.ErrorIs(t, err, ErrInvalidManifest)
		}
	})
}

func TestResolve(t *testing.T) {
	set, err := buildModels([]Model{{Name: "Pet", Properties: []Property{{Name: "name", Type: "string"}}}})
	require.NoError(t, err)

	tests := []struct {
		name string
		want reflect.Type
	}{
		{"", nil},
		{"string", reflect.TypeFor[string]()},
		{"date-time", reflect.TypeFor[time.Time]()},
		{"[]int64", reflect.TypeFor[[]int64]()},
		{"map[string]boolean", reflect.TypeFor[map[string]bool]()},
		{"[][]string", reflect.TypeFor[[][]string]()},
		{"Pet", set.byName["Pet"].typ},
		{"[]Pet", reflect.SliceOf(set.byName["Pet"].typ)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = set.resolve("Cat")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBaseTypeName(t *testing.T) {
	assert.Equal(t, "User", baseTypeName("[]map[string][]User"))
	assert.Equal(t, "string", baseTypeName(" string "))
}
