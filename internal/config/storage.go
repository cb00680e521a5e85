package config

type Storage struct {
	TaskStore TaskStore `envPrefix:"TASKSTORE_"`
}

type TaskStore struct {
	URI string `env:"URI,expand" envDefault:"sqlite://data.sqlite"`
}
