package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

const (
	keyAPIv3 = "TMDB_API_KEY_V3"
	keyAPIv4 = "TMDB_API_KEY_V4"
)

// Credentials holds the catalog API keys. The backing properties file is read
// once, on the first lookup.
type Credentials struct {
	path string

	once sync.Once
	v3   string
	v4   string
	err  error
}

func NewCredentials(path string) *Credentials {
	return &Credentials{path: path}
}

func (c *Credentials) load() {
	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("properties")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.err = fmt.Errorf("read credentials %s: %w", c.path, err)
		return
	}

	c.v3 = v.GetString(keyAPIv3)
	c.v4 = v.GetString(keyAPIv4)
}

// V3Key returns the key sent as the api_key query parameter.
func (c *Credentials) V3Key() (string, error) {
	c.once.Do(c.load)
	return c.v3, c.err
}

// V4Key returns the read-access token sent as a bearer token.
func (c *Credentials) V4Key() (string, error) {
	c.once.Do(c.load)
	return c.v4, c.err
}
