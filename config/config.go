package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	Api struct {
		Host      string `default:"http://localhost:5000/api" env:"API_HOST"`
		TimeoutEx int    `default:"30" env:"API_TIMEOUT_IN_SEC"`
	}
	Session struct {
		FilePath string `default:"session.json" env:"SESSION_FILE_PATH"`
		// политика восстановления: false - доверять сохраненной записи,
		// true - сверять токен запросом /auth/me при старте
		VerifyOnRestore bool `default:"false" env:"SESSION_VERIFY_ON_RESTORE"`
	}
	Export struct {
		Dir      string `default:"." env:"EXPORT_DIR"`
		FontDir  string `default:"static/font/" env:"EXPORT_FONT_DIR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
