package model

// Quarter учебная четверть, доступная для выбора
type Quarter struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}
