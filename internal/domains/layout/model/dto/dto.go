package dto

type BackupResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}
