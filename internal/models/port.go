package models

// Port is a named harbour location from the built-in catalogue
type Port struct {
	Key       string  `json:"key"`  // lookup key, e.g. "mumbai"
	Code      string  `json:"code"` // UN/LOCODE, e.g. "INMUN"
	Name      string  `json:"name"`
	Country   string  `json:"country"` // ISO 3166 alpha-2
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
