package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolcrib/toolcrib/pkg/scopes"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    scopes.Scope
		wantErr bool
	}{
		{
			name:  "bare action",
			input: "read",
			want:  scopes.Scope{Action: "read"},
		},
		{
			name:  "action and entity",
			input: "write:tool_items",
			want:  scopes.Scope{Action: "write", Entity: "tool_items"},
		},
		{
			name:  "action wildcard",
			input: "write:*",
			want:  scopes.Scope{Action: "write", Wildcard: true},
		},
		{
			name:  "admin wildcard",
			input: "admin:*",
			want:  scopes.Scope{Action: "admin", Wildcard: true},
		},
		{
			name:  "surrounding whitespace",
			input: "  read  ",
			want:  scopes.Scope{Action: "read"},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing action",
			input:   ":tool_items",
			wantErr: true,
		},
		{
			name:    "trailing delimiter",
			input:   "write:",
			wantErr: true,
		},
		{
			name:    "double delimiter",
			input:   "write:tool:items",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := scopes.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, scopes.ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	got, err := scopes.ParseList([]string{"read", "write:tool_items"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, scopes.Scope{Action: "read"}, got[0])

	_, err = scopes.ParseList([]string{"read", ""})
	assert.ErrorIs(t, err, scopes.ErrInvalidScope)

	got, err = scopes.ParseList(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScopeString(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"read", "write:tool_items", "admin:*"} {
		s, err := scopes.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}
}

func TestScopeGrants(t *testing.T) {
	t.Parallel()

	admin := scopes.Scope{Action: "admin", Wildcard: true}
	writeAll := scopes.Scope{Action: "write", Wildcard: true}
	writeItems := scopes.Scope{Action: "write", Entity: "tool_items"}
	read := scopes.Scope{Action: "read"}

	assert.True(t, admin.Grants(read))
	assert.True(t, admin.Grants(writeItems))
	assert.True(t, writeAll.Grants(writeItems))
	assert.False(t, writeAll.Grants(scopes.Scope{Action: "delete", Entity: "tool_items"}))
	assert.False(t, writeAll.Grants(scopes.Scope{Action: "write"})) // bare action needs a literal grant
	assert.True(t, writeItems.Grants(writeItems))
	assert.False(t, read.Grants(writeItems))
}
