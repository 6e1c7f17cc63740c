package permissions_test

import (
	"testing"

	"floorplan/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/v1/auth/login", "POST")
	assert.True(t, login.Skip)

	create := data.FindPermissions("/v1/tables/", "POST")
	assert.Equal(t, []string{"admin"}, create.Permissions)

	block := data.FindPermissions("/v1/blocks/{call_id}", "DELETE")
	assert.True(t, block.APIKey)

	reserve := data.FindPermissions("/v1/tables/{code}/reserve", "POST")
	assert.False(t, reserve.APIKey)
	assert.Contains(t, reserve.Permissions, "staff")
}

func TestFindPermissions_Unknown(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/layout/","method":"GET","permissions":["admin"]}]}`))
	require.NoError(t, err)

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/layout/", "DELETE"))
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/layout/", "GET").Permissions)
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))

	assert.Error(t, err)
}

func TestParse_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown role", data: `{"endpoints":[{"path":"/v1/layout/","method":"GET","permissions":["owner"]}]}`},
		{name: "duplicate route", data: `{"endpoints":[{"path":"/v1/layout/","method":"GET"},{"path":"/v1/layout/","method":"get"}]}`},
		{name: "missing method", data: `{"endpoints":[{"path":"/v1/layout/"}]}`},
		{name: "unsupported method", data: `{"endpoints":[{"path":"/v1/layout/","method":"TRACE"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := permissions.Parse([]byte(tt.data))

			assert.Error(t, err)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	open := permissions.Permission{}
	adminOnly := permissions.Permission{Permissions: []string{"admin"}}

	assert.True(t, open.Allows("staff"))
	assert.True(t, adminOnly.Allows("admin"))
	assert.False(t, adminOnly.Allows("staff"))
	assert.False(t, adminOnly.Allows(""))
}
