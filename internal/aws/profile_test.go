package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuscli/nimbus/internal/errors"
)

// writeConfig writes an AWS shared config file into a temp dir and points
// AWS_CONFIG_FILE at it for the duration of the test.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("AWS_CONFIG_FILE", path)
	return path
}

const completeProfile = `
[profile dev]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Developer
region = eu-west-1
`

func TestListSSOProfilesComplete(t *testing.T) {
	writeConfig(t, completeProfile)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, "dev", p.Name)
	assert.Equal(t, "https://example.awsapps.com/start", p.StartURL)
	assert.Equal(t, "us-east-1", p.SSORegion)
	assert.Equal(t, "111111111111", p.AccountID)
	assert.Equal(t, "Developer", p.RoleName)
	assert.Equal(t, "eu-west-1", p.Region)
}

func TestListSSOProfilesSkipsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		missing string
		config  string
	}{
		{
			name:    "missing start url",
			missing: "sso_start_url",
			config: `[profile p]
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Developer
`,
		},
		{
			name:    "missing sso region",
			missing: "sso_region",
			config: `[profile p]
sso_start_url = https://example.awsapps.com/start
sso_account_id = 111111111111
sso_role_name = Developer
`,
		},
		{
			name:    "missing account id",
			missing: "sso_account_id",
			config: `[profile p]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_role_name = Developer
`,
		},
		{
			name:    "missing role name",
			missing: "sso_role_name",
			config: `[profile p]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
`,
		},
		{
			name:    "empty value",
			missing: "sso_role_name",
			config: `[profile p]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name =
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.config)

			profiles, err := ListSSOProfiles()
			require.NoError(t, err)
			assert.Empty(t, profiles, "profile without %s should be skipped", tt.missing)
		})
	}
}

func TestListSSOProfilesMixedUsability(t *testing.T) {
	writeConfig(t, `
[profile dev]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Developer

[profile broken]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 222222222222
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "dev", profiles[0].Name)
}

func TestListSSOProfilesPreservesFileOrder(t *testing.T) {
	writeConfig(t, `
[profile zeta]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Admin

[profile alpha]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 222222222222
sso_role_name = Admin

[profile mid]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 333333333333
sso_role_name = Admin
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	names := []string{profiles[0].Name, profiles[1].Name, profiles[2].Name}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestListSSOProfilesMissingFile(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist"))

	profiles, err := ListSSOProfiles()
	assert.Nil(t, profiles)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ConfigNotFound(""))
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestListSSOProfilesEmptyFile(t *testing.T) {
	writeConfig(t, "")

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestListSSOProfilesNoSSOEntries(t *testing.T) {
	writeConfig(t, `
[profile plain]
region = us-west-2
output = json
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestListSSOProfilesSSOSessionInheritance(t *testing.T) {
	writeConfig(t, `
[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
sso_region = us-east-1

[profile dev]
sso_session = corp
sso_account_id = 111111111111
sso_role_name = Developer
region = eu-central-1

[profile orphan]
sso_session = missing
sso_account_id = 222222222222
sso_role_name = Developer
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, "dev", p.Name)
	assert.Equal(t, "https://corp.awsapps.com/start", p.StartURL)
	assert.Equal(t, "us-east-1", p.SSORegion)
}

func TestListSSOProfilesDefaultSection(t *testing.T) {
	writeConfig(t, `
[default]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Admin
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "default", profiles[0].Name)
}

func TestListSSOProfilesIgnoresCommentsAndUnknownSections(t *testing.T) {
	writeConfig(t, `
# shared corporate config
; alternate comment style

[services my-endpoints]
s3 =
  endpoint_url = http://localhost:9000

[profile dev]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 111111111111
sso_role_name = Developer
`)

	profiles, err := ListSSOProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "dev", profiles[0].Name)
}

func TestFindProfile(t *testing.T) {
	writeConfig(t, completeProfile)

	p, err := FindProfile("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", p.Name)

	_, err = FindProfile("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.Validationf(""))
}

func TestConfigFilePathOverride(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/tmp/custom-config")
	assert.Equal(t, "/tmp/custom-config", ConfigFilePath())
}
