package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

var testProfiles = []pkgtypes.SSOProfile{
	{Name: "prod", AccountID: "111111111111", RoleName: "Admin", Region: "us-east-1"},
	{Name: "staging", AccountID: "222222222222", RoleName: "Developer", Region: "eu-west-1"},
	{Name: "dev-tools", AccountID: "333333333333", RoleName: "Developer", Region: "eu-west-1"},
}

func TestFilterProfiles(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps all", "", []string{"prod", "staging", "dev-tools"}},
		{"by name", "prod", []string{"prod"}},
		{"case insensitive", "PROD", []string{"prod"}},
		{"by account id", "2222", []string{"staging"}},
		{"by role", "developer", []string{"staging", "dev-tools"}},
		{"by region", "eu-west", []string{"staging", "dev-tools"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterProfiles(testProfiles, tt.query)

			var names []string
			for _, p := range filtered {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterProfilesPreservesOrder(t *testing.T) {
	filtered := FilterProfiles(testProfiles, "e")
	require.Len(t, filtered, 3)
	assert.Equal(t, "prod", filtered[0].Name)
	assert.Equal(t, "staging", filtered[1].Name)
	assert.Equal(t, "dev-tools", filtered[2].Name)
}

func TestSelectProfileEmptyList(t *testing.T) {
	_, err := SelectProfile(nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.NoProfiles())
	assert.Equal(t, 3, errors.ExitCode(err))
}

func TestFilterMenuItems(t *testing.T) {
	items := []MenuItem{
		{Label: "ECS", Value: "ecs", Detail: "Clusters and services"},
		{Label: "EC2", Value: "ec2", Detail: "Instances"},
		{Label: "Cost summary", Value: "cost", Detail: "Spend by service"},
	}

	assert.Len(t, FilterMenuItems(items, ""), 3)

	filtered := FilterMenuItems(items, "ec")
	require.Len(t, filtered, 2)
	assert.Equal(t, "ecs", filtered[0].Value)
	assert.Equal(t, "ec2", filtered[1].Value)

	// Detail text is searchable too
	filtered = FilterMenuItems(items, "spend")
	require.Len(t, filtered, 1)
	assert.Equal(t, "cost", filtered[0].Value)

	assert.Empty(t, FilterMenuItems(items, "nope"))
}
