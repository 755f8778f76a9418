package models

// Summary holds the computed counts over one pipeline run.
type Summary struct {
	RunID       string         `yaml:"run_id"`
	RawRows     int            `yaml:"raw_rows"`
	Vehicles    int            `yaml:"vehicles"`
	Integrated  int            `yaml:"integrated"`
	ByCarType   map[string]int `yaml:"car_type"`
	ByColor     map[string]int `yaml:"color"`
	ByCondition map[string]int `yaml:"condition"`
	ByZip       map[string]int `yaml:"zip"`
	ByMake      map[string]int `yaml:"make"`
}
