package aws

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// Section header and key=value patterns of the AWS shared config file
var (
	profileSectionRe = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	defaultSectionRe = regexp.MustCompile(`^\[default\]$`)
	ssoSessionRe     = regexp.MustCompile(`^\[sso-session\s+([^\]]+)\]$`)
	keyValueRe       = regexp.MustCompile(`^([A-Za-z0-9_.-]+)\s*=\s*(.*)$`)
)

// section is one named block of the config file, parsed permissively as a
// key-value map. Schema validation happens after parsing.
type section struct {
	name string
	kind string // "profile" or "sso-session"
	keys map[string]string
}

// ConfigFilePath returns the AWS shared config file location, honoring the
// AWS_CONFIG_FILE override.
func ConfigFilePath() string {
	if path := os.Getenv("AWS_CONFIG_FILE"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aws", "config")
	}
	return filepath.Join(home, ".aws", "config")
}

// ListSSOProfiles reads the AWS shared config file and returns the profiles
// with a complete SSO configuration, in file order.
//
// A profile qualifies when sso_start_url, sso_region, sso_account_id and
// sso_role_name are all present and non-empty, either directly or inherited
// from a referenced [sso-session] section. Partially configured profiles
// are skipped. A present file with zero usable profiles yields an empty
// slice, not an error.
func ListSSOProfiles() ([]pkgtypes.SSOProfile, error) {
	path := ConfigFilePath()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, err
	}
	defer file.Close()

	sections, err := parseSections(file)
	if err != nil {
		return nil, err
	}

	// Index sso-session sections so profiles can inherit from them
	sessions := make(map[string]map[string]string)
	for _, s := range sections {
		if s.kind == "sso-session" {
			sessions[s.name] = s.keys
		}
	}

	var profiles []pkgtypes.SSOProfile
	for _, s := range sections {
		if s.kind != "profile" {
			continue
		}

		p := pkgtypes.SSOProfile{
			Name:      s.name,
			StartURL:  s.keys["sso_start_url"],
			SSORegion: s.keys["sso_region"],
			AccountID: s.keys["sso_account_id"],
			RoleName:  s.keys["sso_role_name"],
			Region:    s.keys["region"],
			Source:    path,
		}

		// Modern config puts the start URL and SSO region in a shared
		// [sso-session] block referenced by name.
		if sess, ok := sessions[s.keys["sso_session"]]; ok {
			if p.StartURL == "" {
				p.StartURL = sess["sso_start_url"]
			}
			if p.SSORegion == "" {
				p.SSORegion = sess["sso_region"]
			}
		}

		if p.Complete() {
			profiles = append(profiles, p)
		}
	}

	return profiles, nil
}

// parseSections scans an AWS INI-style config file into ordered sections.
// Keys the schema does not know are kept; validation is the caller's job.
func parseSections(file *os.File) ([]section, error) {
	var sections []section
	var current *section

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if matches := profileSectionRe.FindStringSubmatch(line); len(matches) == 2 {
			sections = append(sections, section{
				name: strings.TrimSpace(matches[1]),
				kind: "profile",
				keys: make(map[string]string),
			})
			current = &sections[len(sections)-1]
			continue
		}

		if defaultSectionRe.MatchString(line) {
			sections = append(sections, section{
				name: "default",
				kind: "profile",
				keys: make(map[string]string),
			})
			current = &sections[len(sections)-1]
			continue
		}

		if matches := ssoSessionRe.FindStringSubmatch(line); len(matches) == 2 {
			sections = append(sections, section{
				name: strings.TrimSpace(matches[1]),
				kind: "sso-session",
				keys: make(map[string]string),
			})
			current = &sections[len(sections)-1]
			continue
		}

		// Unknown section headers ([services x], [plugins]) end the
		// current section without starting a tracked one.
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = nil
			continue
		}

		if current == nil {
			continue
		}

		if matches := keyValueRe.FindStringSubmatch(line); len(matches) == 3 {
			current.keys[matches[1]] = strings.TrimSpace(matches[2])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

// FindProfile returns the named profile from the usable set
func FindProfile(name string) (*pkgtypes.SSOProfile, error) {
	profiles, err := ListSSOProfiles()
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}
	return nil, errors.Validationf("profile %q not found or not SSO-complete", name)
}
