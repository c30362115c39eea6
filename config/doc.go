// Package config loads client configuration with viper and godotenv.
//
// Sources in increasing precedence: the service YAML file, its .env file,
// and the process environment. Environment keys map onto nested fields by
// splitting at underscores, so ABIQUO_HTTP_TIMEOUT=5s sets http.timeout
// when loaded WithEnvPrefix("ABIQUO").
//
//	cfg, err := config.Load[rest.Config]("abiquo", config.WithEnvPrefix("ABIQUO"))
package config
