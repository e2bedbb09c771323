package models

// ServerConfig holds settings for the configuration inspection server
type ServerConfig struct {
	ConfigPath     string `json:"config_path,omitzero" yaml:"config_path"`
	Port           string `json:"port,omitzero" yaml:"port"`
	AllowedOrigins string `json:"allowed_origins,omitzero" yaml:"allowed_origins"`
	Environment    string `json:"environment,omitzero" yaml:"environment"`
	LogLevel       string `json:"log_level,omitzero" yaml:"log_level"`
}

// IsProduction returns true if the server runs in the production environment
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
