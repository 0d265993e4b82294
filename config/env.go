package config

import (
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Env holds the secrets and settings read from the environment.
type Env struct {
	NotificationToken string
	NotificationUser  string
	NotificationTitle string
	GithubToken       string
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment. Variables that are already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "Load env file %s", path)
	}
	envy.Reload()
	return nil
}

// ReadEnv collects the environment. Unset values stay empty.
func ReadEnv() Env {
	return Env{
		NotificationToken: envy.Get("NOTIFICATION_TOKEN", ""),
		NotificationUser:  envy.Get("NOTIFICATION_USER", ""),
		NotificationTitle: envy.Get("NOTIFICATION_TITLE", ""),
		GithubToken:       envy.Get("GITHUB_TOKEN", ""),
	}
}
