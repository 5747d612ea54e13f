package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON decoding.
// Secrets such as keys and passwords can be set here as well, but the
// environment is the recommended source for them.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		PasswordHashCost int      `json:"password_hash_cost"`
		SessionTTL       Duration `json:"session_ttl"`
		SecureCookies    bool     `json:"secure_cookies"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN               string   `json:"dsn"`
			ConnectRetryDelay Duration `json:"connect_retry_delay"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		Blob struct {
			Backend     string   `json:"backend"`
			Container   string   `json:"container"`
			AccountName string   `json:"account_name"`
			AccountKey  string   `json:"account_key"`
			ServiceURL  string   `json:"service_url"`
			Dir         string   `json:"dir"`
			SignKey     string   `json:"sign_key"`
			URLTTL      Duration `json:"url_ttl"`
		} `json:"blob,omitempty"`

		Local struct {
			DSN string `json:"dsn"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		PublicURL      string   `json:"public_url"`
		ClientURL      string   `json:"client_url"`
		AllowedOrigins []string `json:"allowed_origins"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	OAuth struct {
		Google struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			RedirectURL  string `json:"redirect_url"`
		} `json:"google,omitempty"`
	} `json:"oauth,omitempty"`

	Events struct {
		URL      string `json:"amqp_url"`
		Exchange string `json:"exchange"`
	} `json:"events,omitempty"`

	Adapter struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		CallbackAddress string   `json:"callback_address"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:     j.App.TokenSignKey,
			TokenIssuer:      j.App.TokenIssuer,
			TokenDuration:    time.Duration(j.App.TokenDuration),
			PasswordHashCost: j.App.PasswordHashCost,
			SessionTTL:       time.Duration(j.App.SessionTTL),
			SecureCookies:    j.App.SecureCookies,
		},
		Storage: Storage{
			DB: DB{
				DSN:               j.Storage.DB.DSN,
				ConnectRetryDelay: time.Duration(j.Storage.DB.ConnectRetryDelay),
			},
			Redis: Redis{
				Address:  j.Storage.Redis.Address,
				Password: j.Storage.Redis.Password,
				DB:       j.Storage.Redis.DB,
			},
			Blob: Blob{
				Backend:     j.Storage.Blob.Backend,
				Container:   j.Storage.Blob.Container,
				AccountName: j.Storage.Blob.AccountName,
				AccountKey:  j.Storage.Blob.AccountKey,
				ServiceURL:  j.Storage.Blob.ServiceURL,
				Dir:         j.Storage.Blob.Dir,
				SignKey:     j.Storage.Blob.SignKey,
				URLTTL:      time.Duration(j.Storage.Blob.URLTTL),
			},
			Local: Local{DSN: j.Storage.Local.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			PublicURL:      j.Server.PublicURL,
			ClientURL:      j.Server.ClientURL,
			AllowedOrigins: j.Server.AllowedOrigins,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		OAuth: OAuth{
			Google: Google{
				ClientID:     j.OAuth.Google.ClientID,
				ClientSecret: j.OAuth.Google.ClientSecret,
				RedirectURL:  j.OAuth.Google.RedirectURL,
			},
		},
		Events: Events{
			URL:      j.Events.URL,
			Exchange: j.Events.Exchange,
		},
		Adapter: Adapter{
			HTTPAddress:     j.Adapter.HTTPAddress,
			RequestTimeout:  time.Duration(j.Adapter.RequestTimeout),
			CallbackAddress: j.Adapter.CallbackAddress,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
