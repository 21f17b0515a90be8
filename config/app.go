package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	Name  string `json:"name" yaml:"name"`
	// CardSalt 用于生成实体卡卡号的散列盐
	CardSalt string `json:"card_salt" yaml:"card_salt"`
}

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
}
