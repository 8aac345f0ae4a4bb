package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Credentials authenticate a session against the GraphQL API.
type Credentials struct {
	ID    string
	Token string
}

// ProfilesPath returns the shared credential store location
// (~/.mcd/profiles.ini), or "" when the home directory cannot be resolved.
func ProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mcd", "profiles.ini")
}

// LoadCredentials resolves API credentials. An explicit id/token pair wins;
// otherwise the named profile is read from the INI store at path; with no
// profile name the "default" profile is used. The returned string describes
// the credential source for logging.
func LoadCredentials(path, profile, id, token string) (Credentials, string, error) {
	if id != "" && token != "" {
		return Credentials{ID: id, Token: token}, "direct credentials", nil
	}

	section := profile
	source := fmt.Sprintf("profile %q", profile)
	if section == "" {
		section = "default"
		source = "default profile"
	}

	if path == "" {
		return Credentials{}, "", fmt.Errorf("no profiles configuration file found")
	}
	file, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, "", fmt.Errorf("no profiles configuration file found at %s", path)
		}
		return Credentials{}, "", fmt.Errorf("read profiles: %w", err)
	}

	sec, err := file.GetSection(section)
	if err != nil {
		return Credentials{}, "", fmt.Errorf("profile %q not found in %s", section, path)
	}
	creds := Credentials{
		ID:    sec.Key("mcd_id").String(),
		Token: sec.Key("mcd_token").String(),
	}
	if creds.ID == "" || creds.Token == "" {
		return Credentials{}, "", fmt.Errorf("profile %q does not contain valid credentials", section)
	}
	return creds, source, nil
}
