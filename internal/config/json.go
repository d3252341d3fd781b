package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	Vault struct {
		DatabaseURL string `json:"database_url"`
		Keyfile     string `json:"keyfile"`
		Password    string `json:"password"`
	} `json:"vault"`

	Storage struct {
		S3 struct {
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Region    string `json:"region"`
		} `json:"s3"`

		HTTP struct {
			Username string   `json:"username"`
			Password string   `json:"password"`
			Timeout  Duration `json:"timeout"`
		} `json:"http"`

		CacheDir string `json:"cache_dir"`
	} `json:"storage"`

	Server struct {
		Address        string   `json:"address"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		ReloadInterval Duration `json:"reload_interval"`
	} `json:"server"`

	LogLevel string `json:"log"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Vault: Vault{
			DatabaseURL: jsonCfg.Vault.DatabaseURL,
			Keyfile:     jsonCfg.Vault.Keyfile,
			Password:    jsonCfg.Vault.Password,
		},
		Storage: Storage{
			S3: S3{
				AccessKey: jsonCfg.Storage.S3.AccessKey,
				SecretKey: jsonCfg.Storage.S3.SecretKey,
				Region:    jsonCfg.Storage.S3.Region,
			},
			HTTP: HTTP{
				Username: jsonCfg.Storage.HTTP.Username,
				Password: jsonCfg.Storage.HTTP.Password,
				Timeout:  time.Duration(jsonCfg.Storage.HTTP.Timeout),
			},
			CacheDir: jsonCfg.Storage.CacheDir,
		},
		Server: Server{
			Address:        jsonCfg.Server.Address,
			TokenSignKey:   jsonCfg.Server.TokenSignKey,
			TokenIssuer:    jsonCfg.Server.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.Server.TokenDuration),
			ReloadInterval: time.Duration(jsonCfg.Server.ReloadInterval),
		},
		LogLevel: jsonCfg.LogLevel,
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from strings like "1h" or
// "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
