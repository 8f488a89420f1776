// Package conf defines the bootstrap configuration scanned from the server's
// YAML config file.
package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Auth   *Auth
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
	Redis    *Redis
}

type Database struct {
	Driver string
	Source string
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int32  `json:"db"`
}

type Auth struct {
	AdminKey          string `json:"admin_key"`
	PrimaryAdminEmail string `json:"primary_admin_email"`
}

// Radar configures the intelligence engine behind the dashboard.
type Radar struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Mailchimp   *Mailchimp   `json:"mailchimp"`
	Regions     []string     `json:"regions"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Search struct {
	Tavily *Tavily `json:"tavily"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type Mailchimp struct {
	ActionUrl string `json:"action_url"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
