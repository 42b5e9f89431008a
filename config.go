package main

import (
	"io/ioutil"
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/kaiakz/filediff/storage"
)

type MinioConfig struct {
	Endpoint  string
	KeyAccess string
	KeySecret string
	Bucket    string
	Prefix    string
	Secure    bool
}

type Config struct {
	CacheEnabled bool
	CachePath    string
	CacheBucket  string
	Strict       bool   // a truncated signature is an error
	Backend      string // local, minio or null
	OutputDir    string
	Minio        MinioConfig
}

const confSample = `title = "configuration of filediff"

# signatures of baseline files, reused while the file is unchanged
[cache]
  enabled = true
  path = "signatures.db"
  bucket = "signatures"

[signature]
  strict = false

# where -outfile goes: local, minio or null
[output]
  backend = "local"
  dir = "."

[minio]
  endpoint = "127.0.0.1:9000"
  keyAccess = "minioadmin"
  keySecret = "minioadmin"
  bucket = "filediff"
  prefix = ""
  secure = false
`

// Reads path, or config.toml in the working directory when path is empty.
// Only a missing config.toml falls back to defaults, a missing explicit path is an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "signatures.db")
	v.SetDefault("cache.bucket", "signatures")
	v.SetDefault("signature.strict", false)
	v.SetDefault("output.backend", "local")
	v.SetDefault("output.dir", ".")
	v.SetDefault("minio.bucket", "filediff")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // name of config file (without extension)
		v.SetConfigType("toml")   // REQUIRED if the config file does not have the extension in the name
		v.AddConfigPath(".")      // optionally look for config in the working directory
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
		log.Println("Config does not exist, using defaults")
	}

	return &Config{
		CacheEnabled: v.GetBool("cache.enabled"),
		CachePath:    v.GetString("cache.path"),
		CacheBucket:  v.GetString("cache.bucket"),
		Strict:       v.GetBool("signature.strict"),
		Backend:      v.GetString("output.backend"),
		OutputDir:    v.GetString("output.dir"),
		Minio: MinioConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			KeyAccess: v.GetString("minio.keyAccess"),
			KeySecret: v.GetString("minio.keySecret"),
			Bucket:    v.GetString("minio.bucket"),
			Prefix:    v.GetString("minio.prefix"),
			Secure:    v.GetBool("minio.secure"),
		},
	}, nil
}

func createSampleConfig(path string) error {
	if path == "" {
		path = "config.toml"
	}
	if err := ioutil.WriteFile(path, []byte(confSample), 0666); err != nil {
		return errors.Wrap(err, "Can't create a sample of config")
	}
	return nil
}

func openStorage(conf *Config) (storage.FS, error) {
	switch conf.Backend {
	case "local", "":
		return storage.NewLocal(conf.OutputDir)
	case "minio":
		m := conf.Minio
		return storage.NewMinio(m.Bucket, m.Prefix, m.Endpoint, m.KeyAccess, m.KeySecret, m.Secure)
	case "null":
		return &storage.NULL{}, nil
	}
	return nil, errors.Errorf("unknown output backend %q", conf.Backend)
}
