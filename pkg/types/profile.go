package types

// SSOProfile represents one SSO-enabled profile from the AWS shared config file.
//
// A profile is only usable when all four SSO fields are populated; the
// resolver filters out anything partially configured.
type SSOProfile struct {
	Name      string
	StartURL  string // sso_start_url
	SSORegion string // sso_region
	AccountID string // sso_account_id
	RoleName  string // sso_role_name
	Region    string // default execution region, optional
	Source    string // path of the config file the profile came from
}

// Complete reports whether the profile carries every field required for
// SSO-based authentication.
func (p SSOProfile) Complete() bool {
	return p.StartURL != "" && p.SSORegion != "" && p.AccountID != "" && p.RoleName != ""
}
